// Package ffmpeg wraps the ffmpeg invocations behind every media command.
//
// Tool builds argument lists for transcoding, audio-to-video synthesis,
// stream extraction, frame grabs, rotation, cutting and cropping, and runs
// them through an injectable command runner so tests can assert on the exact
// command line without the binary installed. Every video output is H.264 with
// AAC audio in yuv420p, with dimensions rounded down to even values.
package ffmpeg
