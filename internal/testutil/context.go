// Package testutil holds small helpers shared by package tests.
package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds a test body when no timeout is given.
const DefaultTimeout = 5 * time.Second

// Context returns a context that ends at timeout or shortly before the
// test deadline, whichever comes first.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if dt, ok := t.(interface{ Deadline() (time.Time, bool) }); ok {
		if deadline, ok := dt.Deadline(); ok {
			if remaining := time.Until(deadline) - time.Second; remaining > 0 && remaining < timeout {
				timeout = remaining
			}
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// RunWithTimeout runs fn and fails the test if it does not return in time.
func RunWithTimeout(t testing.TB, timeout time.Duration, fn func()) {
	t.Helper()
	ctx := Context(t, timeout)
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatalf("test timed out after %s", timeout)
	}
}
