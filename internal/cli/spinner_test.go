package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("working")
	s.Start()
	s.Stop()
	s.Stop() // second stop must not panic or block
}

func TestSpinnerStopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "Connecting to MongoDB...")
	s.Start()

	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after context cancellation")
	}

	if !s.Cancelled() {
		t.Error("Cancelled() = false after the surrounding context ended")
	}
}

func TestSpinnerExplicitStopIsNotCancelled(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "working")
	s.Start()
	s.Stop()

	if s.Cancelled() {
		t.Error("Cancelled() = true after an explicit Stop")
	}
}

func TestSpinnerStopResultMessages(t *testing.T) {
	s := newSpinner("saving")
	s.Start()
	s.StopWithSuccess("saved")

	s = newSpinner("saving")
	s.Start()
	s.StopWithError("save failed")
}
