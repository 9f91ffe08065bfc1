package config

import (
	"context"
	"fmt"
	"time"
)

// maxShutdownTimeout caps the drain window so a typo like "10m" for "10s" is caught at load.
const maxShutdownTimeout = 5 * time.Minute

// ShutdownConfig bounds how long each server, the tracer and the store may take to drain.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

func (c *ShutdownConfig) String() string {
	return fmt.Sprintf("\n--- Shutdown ---\n  timeout: %s\n", c.Timeout)
}

func (c *ShutdownConfig) Validate() error {
	switch {
	case c.Timeout <= 0:
		return fmt.Errorf("shutdown timeout is not configured")
	case c.Timeout > maxShutdownTimeout:
		return fmt.Errorf("shutdown timeout %s exceeds %s", c.Timeout, maxShutdownTimeout)
	}
	return nil
}

// Context returns a fresh context that expires after the drain window.
// It is detached from the parent because shutdown starts once the parent is done.
func (c *ShutdownConfig) Context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.Timeout)
}

// Await blocks until done is closed or the drain window elapses.
// It reports whether done closed in time.
func (c *ShutdownConfig) Await(done <-chan struct{}) bool {
	timer := time.NewTimer(c.Timeout)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}
