package subtitles

import (
	"strings"
	"testing"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:02,500
Hello there.

2
00:00:03,000 --> 00:00:05,000
Two lines
of dialogue.

x
not a cue
skipped

3
00:00:06,000 --> 00:00:07,000
Bye.
`

func TestParseSkipsMalformedBlocks(t *testing.T) {
	blocks := Parse(sampleSRT)
	if len(blocks) != 3 {
		t.Fatalf("expected 3 cues, got %d: %#v", len(blocks), blocks)
	}
	if blocks[1].Text != "Two lines\nof dialogue." {
		t.Fatalf("unexpected multi-line text %q", blocks[1].Text)
	}
	if blocks[2].Index != "3" || blocks[2].Timing != "00:00:06,000 --> 00:00:07,000" {
		t.Fatalf("unexpected last cue %#v", blocks[2])
	}
}

func TestParseSerializePreservesIndexAndTiming(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\nA\n\n2\n00:00:02,500 --> 00:00:04,000\nB\nC\n\n"
	out := Serialize(Parse(input))
	if out != input {
		t.Fatalf("round trip mismatch:\n got %q\nwant %q", out, input)
	}
}

func TestParseToleratesCRLFAndBOM(t *testing.T) {
	input := "\ufeff1\r\n00:00:01,000 --> 00:00:02,000\r\nHi\r\n\r\n2\r\n00:00:03,000 --> 00:00:04,000\r\nYo\r\n"
	blocks := Parse(input)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(blocks))
	}
	if blocks[0].Index != "1" || strings.Contains(blocks[0].Timing, "\r") {
		t.Fatalf("unexpected first cue %#v", blocks[0])
	}
}

func TestParseEmpty(t *testing.T) {
	if blocks := Parse("  \n\n "); len(blocks) != 0 {
		t.Fatalf("expected no cues, got %d", len(blocks))
	}
	if blocks := Parse("1\n00:00:01,000 --> 00:00:02,000\n"); len(blocks) != 0 {
		t.Fatalf("expected cue without text to be skipped, got %d", len(blocks))
	}
}
