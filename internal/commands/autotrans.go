package commands

import (
	"context"
	"fmt"
	"os"

	"mediakit/internal/job"
	"mediakit/internal/language"
	"mediakit/internal/logging"
	"mediakit/internal/services"
	"mediakit/internal/subtitles"
)

const autotransHelp = `Command: <code>/autotrans [language_code]</code> [reply to .srt file]
Desc: Translate an SRT subtitle file into the given language (default: en).
Example: <code>/autotrans id</code> for Indonesian, <code>/autotrans en</code> for English.
Supported languages: any Google Translate language code (id, en, es, fr, pt-BR, ...).`

// Autotrans translates an .srt document cue by cue.
func Autotrans(deps Deps) job.Command {
	return job.Command{
		Name:       "autotrans",
		Usage:      "autotrans [language_code]",
		Help:       autotransHelp,
		Accepts:    []job.Kind{job.KindDocument},
		Extensions: []string{".srt"},
		Reject:     "Please reply to an .srt subtitle file to translate.",
		Labels: job.Labels{
			Progress: "Processing subtitle translation...",
			Failure:  "Error translating subtitles",
		},
		Parse: func(args []string, _ job.Attachment) (job.Transform, error) {
			requested := deps.DefaultLanguage
			if requested == "" {
				requested = "en"
			}
			if len(args) > 0 {
				requested = args[0]
			}
			target, err := language.Target(requested)
			if err != nil {
				return nil, argumentError(fmt.Sprintf("Invalid language code: %s. Use a code such as id, en or pt-BR.", requested))
			}
			return &autotrans{deps: deps, target: target}, nil
		},
	}
}

type autotrans struct {
	deps   Deps
	target string
}

func (a *autotrans) Run(ctx context.Context, env job.Env) ([]job.Output, error) {
	logger := a.deps.logger(env, "autotrans")
	if a.deps.Translator == nil {
		return nil, services.Wrap(services.ErrConfiguration, "autotrans", "translate", "Translation backend is not configured", nil)
	}
	content, err := os.ReadFile(env.Input)
	if err != nil {
		return nil, services.Wrap(services.ErrTransform, "autotrans", "read subtitles", "Could not read the subtitle file", err)
	}
	blocks := subtitles.Parse(string(content))
	if len(blocks) == 0 {
		return nil, services.Wrap(services.ErrTransform, "autotrans", "parse subtitles", "Invalid or empty SRT file.", nil)
	}

	logger.Info("translating subtitles",
		logging.Int("cue_count", len(blocks)),
		logging.String("target_language", a.target),
		logging.String("language_name", language.DisplayName(a.target)),
	)
	translated, failed, err := subtitles.TranslateBlocks(ctx, a.deps.Translator, blocks, a.target, logger)
	if err != nil {
		return nil, services.Wrap(services.ErrTransform, "autotrans", "translate", "Translation was interrupted", err)
	}
	if failed > 0 {
		logger.Info("subtitle translation finished with placeholders",
			logging.Int("failed_cues", failed),
			logging.Int("cue_count", len(blocks)),
			logging.String(logging.FieldEventType, "translation_partial"),
		)
	}

	dest := env.Workspace.Path("translated.srt")
	if err := os.WriteFile(dest, []byte(subtitles.Serialize(translated)), 0o644); err != nil {
		return nil, services.Wrap(services.ErrTransform, "autotrans", "write subtitles", "Could not write the translated file", err)
	}
	return []job.Output{{
		Path:    dest,
		Kind:    job.KindDocument,
		Caption: fmt.Sprintf("%s (Language: %s)", byLine("Translated Subtitles", env.Agent), a.target),
	}}, nil
}
