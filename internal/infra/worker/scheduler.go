package worker

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Outcome states reported by the scheduler for an in-flight task id.
const (
	TaskPending = "pending"
	TaskSuccess = "success"
	TaskFailure = "failure"
)

// TaskOutcome is the scheduler-side view of one submission. It mirrors what
// a result backend would hold: the state, and either the value or the error.
type TaskOutcome struct {
	Status string
	Value  map[string]any
	Error  string
}

type outcomeEntry struct {
	outcome TaskOutcome
	doneAt  time.Time
}

// Scheduler assigns ids to submitted tasks, runs each exactly once on the
// pool, and keeps finished outcomes around for a bounded window so callers
// can poll them.
type Scheduler struct {
	pool   *Pool
	expiry time.Duration
	log    zerolog.Logger

	mu       sync.Mutex
	outcomes map[string]*outcomeEntry
}

func NewScheduler(pool *Pool, expiry time.Duration, logger *zerolog.Logger) *Scheduler {
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &Scheduler{
		pool:     pool,
		expiry:   expiry,
		log:      logger.With().Str("component", "scheduler").Logger(),
		outcomes: make(map[string]*outcomeEntry),
	}
}

// Submit enqueues fn and returns its task id. The same id is handed to fn,
// so the task can tag its own persistence. The id is valid immediately;
// Status reports "pending" until fn finishes.
func (s *Scheduler) Submit(fn func(ctx context.Context, id string) (map[string]any, error)) (string, error) {
	id := ulid.Make().String()

	s.mu.Lock()
	s.outcomes[id] = &outcomeEntry{outcome: TaskOutcome{Status: TaskPending}}
	s.mu.Unlock()

	err := s.pool.Submit(func(ctx context.Context) error {
		value, err := fn(ctx, id)
		s.finish(id, value, err)
		return err
	})
	if err != nil {
		s.mu.Lock()
		delete(s.outcomes, id)
		s.mu.Unlock()
		return "", err
	}
	return id, nil
}

// Status reports the outcome for a task id. The second return is false when
// the id is unknown or its outcome has expired.
func (s *Scheduler) Status(id string) (TaskOutcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked(time.Now())
	e, ok := s.outcomes[id]
	if !ok {
		return TaskOutcome{}, false
	}
	return e.outcome, true
}

func (s *Scheduler) finish(id string, value map[string]any, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.outcomes[id]
	if !ok {
		return
	}
	e.doneAt = time.Now()
	if err != nil {
		s.log.Debug().Str("task_id", id).Err(err).Msg("task finished with error")
		e.outcome = TaskOutcome{Status: TaskFailure, Error: err.Error()}
		return
	}
	e.outcome = TaskOutcome{Status: TaskSuccess, Value: value}
}

// StartEvictor drops expired outcomes once a minute until ctx ends.
func (s *Scheduler) StartEvictor(ctx context.Context) {
	go func() {
		t := time.NewTicker(time.Minute)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				s.mu.Lock()
				s.evictLocked(now)
				s.mu.Unlock()
			}
		}
	}()
}

func (s *Scheduler) evictLocked(now time.Time) {
	for id, e := range s.outcomes {
		if !e.doneAt.IsZero() && now.Sub(e.doneAt) > s.expiry {
			delete(s.outcomes, id)
		}
	}
}
