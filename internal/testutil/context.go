package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds a single unit test's calls against fakes.
const DefaultTimeout = 5 * time.Second

// Context returns a context that is cancelled when the test ends or the
// timeout passes, whichever comes first. The timeout shrinks to fit the
// test binary deadline when one is set.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if d, ok := t.(interface{ Deadline() (time.Time, bool) }); ok {
		if deadline, ok := d.Deadline(); ok {
			if remaining := time.Until(deadline) - time.Second; remaining > 0 && remaining < timeout {
				timeout = remaining
			}
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
