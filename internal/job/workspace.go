package job

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// WorkspacePrefix names every job directory under the work root.
const WorkspacePrefix = "job-"

// Workspace is the private directory a job writes into, plus any extra paths
// the job registered. Release removes all of them.
type Workspace struct {
	mu       sync.Mutex
	dir      string
	tracked  []string
	released bool
}

// NewWorkspace creates <root>/job-<id>. The directory must not already exist.
func NewWorkspace(root, id string) (*Workspace, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("workspace root is empty")
	}
	if strings.TrimSpace(id) == "" || strings.ContainsAny(id, `/\`) {
		return nil, fmt.Errorf("invalid workspace id %q", id)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("ensure work root: %w", err)
	}
	dir := filepath.Join(root, WorkspacePrefix+id)
	if err := os.Mkdir(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path returns a tracked path for name inside the workspace. Only the base
// name of name is used.
func (w *Workspace) Path(name string) string {
	path := filepath.Join(w.dir, filepath.Base(name))
	w.Track(path)
	return path
}

// Track registers an additional path for removal on Release.
func (w *Workspace) Track(path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, existing := range w.tracked {
		if existing == path {
			return
		}
	}
	w.tracked = append(w.tracked, path)
}

// Tracked returns a copy of the registered paths.
func (w *Workspace) Tracked() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.tracked...)
}

// Release removes every tracked path and the workspace directory. Paths that
// are already gone are not errors. Calling Release again is a no-op.
func (w *Workspace) Release() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.released {
		return nil
	}
	w.released = true

	var errs []error
	for _, path := range w.tracked {
		if err := os.RemoveAll(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s: %w", path, err))
		}
	}
	if err := os.RemoveAll(w.dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		errs = append(errs, fmt.Errorf("remove workspace %s: %w", w.dir, err))
	}
	return errors.Join(errs...)
}
