// Package daemon coordinates the long-running bot process.
//
// It wires configuration, preflight checks and the Telegram polling loop into
// a single lifecycle with flock-based locking to prevent multiple instances
// from sharing a work directory. On start it sweeps job workspaces left behind
// by a crashed process.
//
// Keep orchestration logic here: command behavior lives in internal/commands
// and the per-job lifecycle in internal/job.
package daemon
