package subtitles

import (
	"strings"
)

// Block is one SubRip cue. Index and Timing are kept exactly as read so a
// parse/serialize round trip reproduces them byte-for-byte.
type Block struct {
	Index  string
	Timing string
	Text   string
}

// Parse splits SRT content into cues. Blocks are separated by a blank line and
// must have a numeric index line, a timing line containing "-->", and at least
// one text line. Malformed blocks are skipped.
func Parse(content string) []Block {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	var blocks []Block
	for _, raw := range strings.Split(content, "\n\n") {
		lines := strings.Split(strings.Trim(raw, "\n"), "\n")
		if len(lines) < 3 {
			continue
		}
		if !isIndexLine(lines[0]) || !strings.Contains(lines[1], "-->") {
			continue
		}
		blocks = append(blocks, Block{
			Index:  lines[0],
			Timing: lines[1],
			Text:   strings.Join(lines[2:], "\n"),
		})
	}
	return blocks
}

// Serialize renders cues as "index\ntiming\ntext\n\n" per block.
func Serialize(blocks []Block) string {
	var b strings.Builder
	for _, block := range blocks {
		b.WriteString(block.Index)
		b.WriteByte('\n')
		b.WriteString(block.Timing)
		b.WriteByte('\n')
		b.WriteString(block.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

func isIndexLine(line string) bool {
	if line == "" {
		return false
	}
	for _, r := range line {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
