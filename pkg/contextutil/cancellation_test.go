package contextutil

import (
	"context"
	"testing"
)

// TestIsCancelled tests cancellation detection before and after cancellation.
func TestIsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	if IsCancelled(ctx) {
		t.Error("live context reported as cancelled")
	}
	cancel()
	if !IsCancelled(ctx) {
		t.Error("cancelled context not reported as cancelled")
	}
	if IsCancelled(context.Background()) {
		t.Error("background context reported as cancelled")
	}
}
