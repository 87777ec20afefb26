// Package contextutil provides helpers for context cancellation checks in
// polling loops.
package contextutil

import (
	"context"
)

// IsCancelled reports whether or not ctx has been cancelled, without
// blocking. Loops that wait in the kernel with a timeout rather than on
// ctx.Done() check it between waits.
func IsCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
