package cron

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/keepers-bakery/internal/cart"
	"github.com/angelmondragon/keepers-bakery/pkg/logger"
)

const sessionSweepJobName = "session-sweep"

type sessionSweeper interface {
	Sweep(idle time.Duration) int
	Len() int
}

// SessionSweepJob drops in-memory cart sessions nobody has touched for the
// idle window. Persisted slots are left to their own TTL.
type SessionSweepJob struct {
	logg     *logger.Logger
	sessions sessionSweeper
	idle     time.Duration
}

// SessionSweepJobParams configure the sweep job.
type SessionSweepJobParams struct {
	Logger   *logger.Logger
	Sessions *cart.Sessions
	IdleTTL  time.Duration
}

// NewSessionSweepJob builds the sweep job.
func NewSessionSweepJob(params SessionSweepJobParams) (*SessionSweepJob, error) {
	if params.Logger == nil {
		return nil, errors.New("logger required")
	}
	if params.Sessions == nil {
		return nil, errors.New("sessions required")
	}
	if params.IdleTTL <= 0 {
		return nil, errors.New("idle ttl must be positive")
	}
	return newSessionSweepJob(params.Logger, params.Sessions, params.IdleTTL), nil
}

func newSessionSweepJob(logg *logger.Logger, sessions sessionSweeper, idle time.Duration) *SessionSweepJob {
	return &SessionSweepJob{logg: logg, sessions: sessions, idle: idle}
}

func (j *SessionSweepJob) Name() string { return sessionSweepJobName }

func (j *SessionSweepJob) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	evicted := j.sessions.Sweep(j.idle)
	if evicted == 0 {
		return nil
	}
	ctx = j.logg.WithFields(ctx, map[string]any{
		"evicted":   evicted,
		"remaining": j.sessions.Len(),
	})
	j.logg.Info(ctx, "idle cart sessions evicted")
	return nil
}
