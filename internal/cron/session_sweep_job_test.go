package cron

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/keepers-bakery/pkg/logger"
)

type fakeSweeper struct {
	evict    int
	idleSeen time.Duration
	calls    int
}

func (f *fakeSweeper) Sweep(idle time.Duration) int {
	f.calls++
	f.idleSeen = idle
	return f.evict
}

func (f *fakeSweeper) Len() int { return 3 }

func TestSessionSweepJobEvictsIdleSessions(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "sweep-test", Output: buf})
	sweeper := &fakeSweeper{evict: 2}
	job := newSessionSweepJob(logg, sweeper, 90*time.Minute)

	if job.Name() != "session-sweep" {
		t.Fatalf("unexpected job name %q", job.Name())
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if sweeper.calls != 1 || sweeper.idleSeen != 90*time.Minute {
		t.Fatalf("sweep not invoked with idle window: %+v", sweeper)
	}
	if !strings.Contains(buf.String(), `"evicted":2`) {
		t.Fatalf("expected evicted count in log, got %s", buf.String())
	}
}

func TestSessionSweepJobQuietWhenNothingEvicted(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "sweep-test", Output: buf})
	job := newSessionSweepJob(logg, &fakeSweeper{}, time.Hour)
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no log output, got %s", buf.String())
	}
}

func TestSessionSweepJobHonorsCancellation(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "sweep-test", Output: &bytes.Buffer{}})
	sweeper := &fakeSweeper{}
	job := newSessionSweepJob(logg, sweeper, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := job.Run(ctx); err == nil {
		t.Fatal("expected context error")
	}
	if sweeper.calls != 0 {
		t.Fatal("sweep should not run after cancellation")
	}
}

func TestNewSessionSweepJobValidatesParams(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "sweep-test", Output: &bytes.Buffer{}})
	if _, err := NewSessionSweepJob(SessionSweepJobParams{Logger: logg, IdleTTL: time.Hour}); err == nil {
		t.Fatal("expected sessions error")
	}
	if _, err := NewSessionSweepJob(SessionSweepJobParams{IdleTTL: time.Hour}); err == nil {
		t.Fatal("expected logger error")
	}
}
