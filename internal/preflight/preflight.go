package preflight

import (
	"context"

	"mediakit/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Options selects the optional check groups.
type Options struct {
	// Network adds the Telegram and translation endpoint checks.
	Network bool
}

// RunAll executes the preflight checks that apply to cfg.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Workspace root (always checked)
	results = append(results, CheckDirectoryAccess("Work directory", cfg.Paths.WorkDir))

	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	if !opts.Network {
		return results
	}

	if cfg.Telegram.Token != "" {
		results = append(results, CheckTelegram(ctx, cfg.Telegram.APIEndpoint, cfg.Telegram.Token))
	}
	results = append(results, CheckTranslate(ctx, cfg.Translate))
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
