// Package clip holds the timeline and frame-geometry math behind the frame,
// split, cut, crop and autocrop commands. It performs no I/O apart from
// decoding sampled BMP frames.
package clip
