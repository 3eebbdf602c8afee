package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aidanlsb/project-cli/internal/config"
	"github.com/aidanlsb/project-cli/internal/engine"
	"github.com/aidanlsb/project-cli/internal/filelock"
	"github.com/aidanlsb/project-cli/internal/shortcut"
	"github.com/aidanlsb/project-cli/internal/store"
	"github.com/aidanlsb/project-cli/internal/ui"
)

// mutation applies one command to the loaded store. It must validate before
// it mutates: on error the store is discarded unsaved.
type mutation func(s *store.Store) (engine.Result, error)

// loadStore reads the store without taking the lock.
func (a *app) loadStore() (*store.Store, error) {
	s, err := store.Load(a.resolvedDataPath)
	if err != nil {
		a.log.Debug("store load failed", zap.String("path", a.resolvedDataPath), zap.Error(err))
		return nil, err
	}
	a.log.Debug("store loaded",
		zap.String("path", a.resolvedDataPath),
		zap.Int("projects", len(s.Projects)),
		zap.String("active", s.Active),
	)
	return s, nil
}

// updateStore runs fn inside one locked load/mutate/save cycle and saves
// only when the result reports a change.
func (a *app) updateStore(ctx context.Context, fn mutation) (engine.Result, *store.Store, error) {
	if !a.mutates {
		return engine.Result{}, nil, fmt.Errorf("command %q is not registered as mutating the store", a.commandID)
	}
	lock, err := a.lockStore(ctx)
	if err != nil {
		return engine.Result{}, nil, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			a.log.Warn("failed to release store lock", zap.String("path", lock.Path()), zap.Error(err))
		}
	}()

	s, err := a.loadStore()
	if err != nil {
		return engine.Result{}, nil, err
	}

	res, err := fn(s)
	if err != nil {
		return engine.Result{}, nil, err
	}
	if !res.Changed {
		a.log.Debug("store unchanged, skipping save")
		return res, s, nil
	}
	if err := store.Save(a.resolvedDataPath, s); err != nil {
		if errors.Is(err, store.ErrInvalidName) {
			return engine.Result{}, nil, err
		}
		return engine.Result{}, nil, writeError{err}
	}
	a.log.Debug("store saved", zap.String("path", a.resolvedDataPath))
	return res, s, nil
}

func (a *app) lockStore(ctx context.Context) (*filelock.Lock, error) {
	timeout, err := a.cfg.GetLockTimeout()
	if err != nil {
		return nil, configError{err}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	lock, err := filelock.Acquire(ctx, config.LockPath(a.resolvedDataPath))
	if err != nil {
		return nil, err
	}
	a.log.Debug("store lock acquired",
		zap.String("path", lock.Path()),
		zap.Duration("waited", time.Since(start)),
	)
	return lock, nil
}

func (a *app) engineEnv() engine.Env {
	return engine.Env{Expander: a.expander, Cwd: a.cwd()}
}

func (a *app) resolver() *shortcut.Resolver {
	opener := a.opener
	if opener == nil {
		opener = shortcut.CommandOpener{Command: a.cfg.GetOpener()}
	}
	return &shortcut.Resolver{Expander: a.expander, Opener: opener}
}

// mutationData is the JSON payload of commands that change the store.
type mutationData struct {
	Message string `json:"message"`
	Active  string `json:"active,omitempty"`
	Changed bool   `json:"changed"`
}

// reportMutation prints the outcome of a successful mutation.
func (a *app) reportMutation(res engine.Result, s *store.Store) {
	if a.jsonOutput {
		a.outputSuccess(mutationData{Message: res.Message, Active: s.Active, Changed: res.Changed}, nil)
		return
	}
	a.println(res.Message)
}

// runMutation is updateStore followed by reportMutation.
func (a *app) runMutation(ctx context.Context, fn mutation) error {
	res, s, err := a.updateStore(ctx, fn)
	if err != nil {
		return err
	}
	a.reportMutation(res, s)
	return nil
}

func pluralShortcuts(n int) string {
	return ui.Count(n, "shortcut", "shortcuts")
}
