package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner(context.Background(), "working")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() == false {
		// Stop cancels the internal context, so Cancelled reports true
		// afterwards regardless of how the spinner ended.
		t.Error("stopped spinner should report cancelled context")
	}
}

func TestSpinnerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, "working")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner should stop when its context is cancelled")
	}
	if !s.Cancelled() {
		t.Error("Cancelled should report true after context cancellation")
	}
}

func TestSpinnerDoubleStop(t *testing.T) {
	s := newSpinner(context.Background(), "working")
	s.Start()
	s.Stop()
	s.Stop() // must not panic or block
}
