// Package subtitles reads, translates and writes SubRip (.srt) files.
//
// Parse and Serialize keep cue indexes and timing lines verbatim, and
// TranslateBlocks drives a Translator one cue at a time so the output order
// always matches the input.
package subtitles
