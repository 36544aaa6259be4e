package syncer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(50*time.Millisecond, func() { calls.Add(1) })

	for i := 0; i < 10; i++ {
		d.Call()
	}
	time.Sleep(150 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestDebouncerSpacedCalls(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(50*time.Millisecond, func() { calls.Add(1) })

	d.Call()
	time.Sleep(100 * time.Millisecond)
	d.Call()
	time.Sleep(100 * time.Millisecond)
	d.Call()
	time.Sleep(100 * time.Millisecond)

	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestDebouncerCancel(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(50*time.Millisecond, func() { calls.Add(1) })

	d.Call()
	d.Cancel()
	time.Sleep(100 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("calls = %d, want 0 after Cancel", got)
	}
}

func TestDebouncerFlush(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(100*time.Millisecond, func() { calls.Add(1) })

	d.Call()
	d.Flush()
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls after Flush = %d, want 1", got)
	}

	// The scheduled invocation must have been dropped.
	time.Sleep(150 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("calls after wait = %d, want 1", got)
	}
}

func TestDebouncerPending(t *testing.T) {
	d := NewDebouncer(100*time.Millisecond, func() {})

	if d.Pending() {
		t.Error("pending before any Call")
	}
	d.Call()
	if !d.Pending() {
		t.Error("not pending after Call")
	}
	time.Sleep(150 * time.Millisecond)
	if d.Pending() {
		t.Error("still pending after the quiet period")
	}
}
