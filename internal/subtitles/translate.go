package subtitles

import (
	"context"
	"log/slog"
	"strings"

	"mediakit/internal/logging"
)

// PlaceholderText replaces a cue whose translation failed or came back empty.
const PlaceholderText = "[Translation failed]"

// Translator translates one piece of text into the target language.
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// TranslateBlocks translates every cue in order, one request at a time. A
// failed or empty translation is replaced with PlaceholderText and does not
// stop the remaining cues. It returns the translated cues and the number of
// placeholders used; the only error is context cancellation.
func TranslateBlocks(ctx context.Context, tr Translator, blocks []Block, target string, logger *slog.Logger) ([]Block, int, error) {
	logger = logging.NewComponentLogger(logger, "subtitles")
	out := make([]Block, len(blocks))
	failed := 0
	for i, block := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, failed, err
		}
		translated, err := tr.Translate(ctx, block.Text, target)
		if err == nil {
			translated = strings.TrimSpace(translated)
		}
		if err != nil || translated == "" {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, failed, ctxErr
			}
			failed++
			attrs := []logging.Attr{
				logging.String("cue_index", block.Index),
				logging.String("target_language", target),
			}
			if err != nil {
				attrs = append(attrs, logging.Error(err))
			}
			logging.WarnWithContext(logger, "cue translation failed", "cue_translation_failed",
				append(attrs,
					logging.String(logging.FieldErrorHint, "check translate.base_url connectivity"),
					logging.String(logging.FieldImpact, "cue replaced with placeholder"),
				)...,
			)
			translated = PlaceholderText
		}
		out[i] = Block{Index: block.Index, Timing: block.Timing, Text: translated}
	}
	return out, failed, nil
}
