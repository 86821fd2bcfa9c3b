package devices

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mobile-next/facepointer/utils"
)

// ShutdownHook collects cleanup functions to run when the process is asked
// to stop (SIGINT/SIGTERM). Hooks run in reverse registration order, so a
// session registered after its injector is closed before it.
type ShutdownHook struct {
	mu    sync.Mutex
	hooks []namedHook
}

type namedHook struct {
	name string
	fn   func() error
}

// NewShutdownHook creates an empty hook list.
func NewShutdownHook() *ShutdownHook {
	return &ShutdownHook{}
}

// Register adds a named cleanup function.
func (s *ShutdownHook) Register(name string, cleanupFn func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, namedHook{name: name, fn: cleanupFn})
	utils.Verbose("Registered shutdown hook: %s", name)
}

// Shutdown runs every hook once, continuing past failures, and clears the list.
func (s *ShutdownHook) Shutdown() error {
	s.mu.Lock()
	hooks := s.hooks
	s.hooks = nil
	s.mu.Unlock()

	if len(hooks) == 0 {
		return nil
	}

	utils.Verbose("Executing %d shutdown hook(s)", len(hooks))
	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		hook := hooks[i]
		if err := hook.fn(); err != nil {
			utils.Warn("shutdown hook %s failed: %v", hook.name, err)
			errs = append(errs, fmt.Errorf("%s: %w", hook.name, err))
		}
	}
	return errors.Join(errs...)
}

// Count returns the number of registered hooks.
func (s *ShutdownHook) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hooks)
}
