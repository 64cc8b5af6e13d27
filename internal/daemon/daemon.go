package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"mediakit/internal/config"
	"mediakit/internal/deps"
	"mediakit/internal/job"
	"mediakit/internal/logging"
	"mediakit/internal/preflight"
)

const (
	lockFileName      = "mediakit.lock"
	defaultStaleAfter = time.Hour
)

// Poller is the chat loop the daemon keeps alive. Run blocks until ctx is
// cancelled or the transport fails.
type Poller interface {
	Run(ctx context.Context) error
}

// Daemon owns the bot process lifecycle and enforces single-instance execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	poller Poller

	lockPath string
	lock     *flock.Flock

	staleAfter time.Duration
	now        func() time.Time
	preflight  func(context.Context) error

	running atomic.Bool
	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	runErr  error
	swept   int
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	WorkDir      string
	LockFilePath string
	Swept        int
}

// Option customizes a Daemon.
type Option func(*Daemon)

// WithStaleAfter sets how old a leftover workspace must be before the startup
// sweep removes it.
func WithStaleAfter(d time.Duration) Option {
	return func(dm *Daemon) {
		if d > 0 {
			dm.staleAfter = d
		}
	}
}

// WithPreflight replaces the startup readiness check.
func WithPreflight(fn func(context.Context) error) Option {
	return func(dm *Daemon) {
		if fn != nil {
			dm.preflight = fn
		}
	}
}

// New constructs a daemon around poller.
func New(cfg *config.Config, poller Poller, logger *slog.Logger, opts ...Option) (*Daemon, error) {
	if cfg == nil || poller == nil {
		return nil, errors.New("daemon requires config and poller")
	}
	lockPath := LockPath(cfg)
	d := &Daemon{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "daemon"),
		poller:     poller,
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
		staleAfter: defaultStaleAfter,
		now:        time.Now,
	}
	d.preflight = d.checkReady
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// LockPath returns the instance lock file for cfg's work directory.
func LockPath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.WorkDir, lockFileName)
}

// InstanceRunning reports whether another process holds the lock for cfg.
func InstanceRunning(cfg *config.Config) (bool, error) {
	lock := flock.New(LockPath(cfg))
	ok, err := lock.TryLock()
	if err != nil {
		return false, fmt.Errorf("probe lock: %w", err)
	}
	if ok {
		_ = lock.Unlock()
		return false, nil
	}
	return true, nil
}

// Start acquires the lock, runs preflight, sweeps stale workspaces, and
// launches the poller in the background.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}
	if err := d.cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another mediakit bot is already using this work directory")
	}

	if err := d.preflight(ctx); err != nil {
		_ = d.lock.Unlock()
		return err
	}
	d.sweep()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	d.mu.Lock()
	d.cancel = cancel
	d.done = done
	d.runErr = nil
	d.mu.Unlock()
	d.running.Store(true)

	go func() {
		defer close(done)
		err := d.poller.Run(runCtx)
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.ErrorWithContext(d.logger, "bot loop stopped", "bot_loop_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the bot token and network connectivity"),
			)
			d.mu.Lock()
			d.runErr = err
			d.mu.Unlock()
		}
	}()

	d.logger.Info("mediakit daemon started",
		logging.String("lock", d.lockPath),
		logging.String("work_dir", d.cfg.Paths.WorkDir),
		logging.String(logging.FieldEventType, "daemon_start"),
	)
	return nil
}

// Done is closed when the poller returns.
func (d *Daemon) Done() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done
}

// Err returns the error the poller stopped with, if any.
func (d *Daemon) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.runErr
}

// Stop cancels the poller, waits for in-flight jobs, and releases the lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel = nil
	d.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("mediakit daemon stopped", logging.String(logging.FieldEventType, "daemon_stop"))
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	d.mu.Lock()
	swept := d.swept
	d.mu.Unlock()
	return Status{
		Running:      d.running.Load(),
		WorkDir:      d.cfg.Paths.WorkDir,
		LockFilePath: d.lockPath,
		Swept:        swept,
	}
}

func (d *Daemon) sweep() {
	removed, err := job.SweepStale(d.cfg.Paths.WorkDir, d.now().Add(-d.staleAfter))
	d.mu.Lock()
	d.swept = len(removed)
	d.mu.Unlock()
	if len(removed) > 0 {
		d.logger.Info("removed stale job workspaces",
			logging.Int("count", len(removed)),
			logging.String(logging.FieldEventType, "workspace_sweep"),
		)
	}
	if err != nil {
		logging.WarnWithContext(d.logger, "stale workspace sweep incomplete", "workspace_sweep_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on the work directory"),
		)
	}
}

// checkReady fails startup when a local preflight check fails or a required
// binary is missing.
func (d *Daemon) checkReady(ctx context.Context) error {
	var problems []string
	for _, result := range preflight.Failed(preflight.RunAll(ctx, d.cfg, preflight.Options{})) {
		problems = append(problems, result.Name+": "+result.Detail)
	}
	for _, status := range deps.Missing(preflight.CheckSystemDeps(ctx, d.cfg)) {
		problems = append(problems, status.Name+": "+status.Detail)
	}
	if len(problems) > 0 {
		return fmt.Errorf("preflight failed: %s", strings.Join(problems, "; "))
	}
	return nil
}
