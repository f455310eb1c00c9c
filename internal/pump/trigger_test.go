package pump_test

import (
	"context"
	"testing"
	"time"

	"github.com/randomizedcoder/fixedring/internal/pump"
)

func TestTrigger(t *testing.T) {
	tr := pump.NewTrigger(3)

	fired := 0
	for i := 1; i <= 30; i++ {
		if tr.Fire() {
			fired++
			if i%3 != 0 {
				t.Errorf("Fire() = true on poll %d, want only every 3rd", i)
			}
		}
	}
	if fired != 10 {
		t.Errorf("expected 10 fires in 30 polls, got %d", fired)
	}
}

func TestTrigger_MinEvery(t *testing.T) {
	tr := pump.NewTrigger(0)
	if tr.Every() != 1 {
		t.Errorf("expected Every() = 1, got %d", tr.Every())
	}
	if !tr.Fire() {
		t.Error("expected Fire() = true on every poll")
	}
}

func TestTrigger_Reset(t *testing.T) {
	tr := pump.NewTrigger(2)
	tr.Fire()
	tr.Reset()
	if tr.Fire() {
		t.Error("expected Fire() = false on first poll after Reset()")
	}
	if !tr.Fire() {
		t.Error("expected Fire() = true on second poll after Reset()")
	}
}

func TestReporter(t *testing.T) {
	interval := 20 * time.Millisecond
	r := pump.NewReporter(interval)
	defer r.Stop()

	if r.Due() {
		t.Error("expected Due() = false immediately after creation")
	}

	time.Sleep(interval + 20*time.Millisecond)

	if !r.Due() {
		t.Error("expected Due() = true after interval elapsed")
	}
}

func TestReporter_Disabled(t *testing.T) {
	r := pump.NewReporter(0)
	defer r.Stop()

	time.Sleep(5 * time.Millisecond)
	if r.Due() {
		t.Error("expected Due() = false for zero interval")
	}
}

func TestStopper(t *testing.T) {
	var s pump.Stopper
	if s.Stopped() {
		t.Error("expected Stopped() = false initially")
	}

	s.Stop()
	s.Stop()
	if !s.Stopped() {
		t.Error("expected Stopped() = true after Stop()")
	}

	s.Reset()
	if s.Stopped() {
		t.Error("expected Stopped() = false after Reset()")
	}
}

func TestStopper_Bind(t *testing.T) {
	var s pump.Stopper
	ctx, cancel := context.WithCancel(context.Background())
	release := s.Bind(ctx)
	defer release()

	cancel()

	deadline := time.Now().Add(time.Second)
	for !s.Stopped() {
		if time.Now().After(deadline) {
			t.Fatal("expected Stopped() = true after context cancel")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestStopper_Release(t *testing.T) {
	var s pump.Stopper
	ctx, cancel := context.WithCancel(context.Background())
	release := s.Bind(ctx)

	if !release() {
		t.Error("expected release() = true before cancel")
	}
	cancel()
	time.Sleep(5 * time.Millisecond)

	if s.Stopped() {
		t.Error("expected Stopped() = false after release")
	}
}
