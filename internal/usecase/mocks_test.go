package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"medvextract/internal/domain"
	"medvextract/internal/domain/model"
	"medvextract/internal/domain/ports/adapter"
	"medvextract/internal/domain/ports/repository"
	"medvextract/internal/infra/worker"
	"medvextract/internal/resilience"
)

func nopLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

// ---- transcript job fakes ----

type memJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*model.TranscriptJob
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: make(map[string]*model.TranscriptJob)}
}

func (r *memJobRepo) Create(ctx context.Context, tx repository.Tx, job *model.TranscriptJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.JobID]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *job
	r.jobs[job.JobID] = &cp
	return nil
}

func (r *memJobRepo) MarkCompleted(ctx context.Context, jobID string, raw, sanitized map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok {
		return domain.ErrNotFound
	}
	if j.Terminal() {
		return domain.ErrJobTerminal
	}
	j.Status = model.JobStatusCompleted
	j.RawResult = raw
	j.Result = sanitized
	return nil
}

func (r *memJobRepo) MarkFailed(ctx context.Context, jobID string, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok {
		return domain.ErrNotFound
	}
	if j.Terminal() {
		return domain.ErrJobTerminal
	}
	j.Status = model.JobStatusFailed
	j.ErrorMessage = errMsg
	return nil
}

func (r *memJobRepo) FindByJobID(ctx context.Context, tx repository.Tx, jobID string) (*model.TranscriptJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (r *memJobRepo) List(ctx context.Context, tx repository.Tx) ([]*model.TranscriptJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.TranscriptJob, 0, len(r.jobs))
	for _, j := range r.jobs {
		cp := *j
		out = append(out, &cp)
	}
	return out, nil
}

type memCache struct {
	mu      sync.Mutex
	entries map[string]map[string]any
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]map[string]any)}
}

func (c *memCache) Get(ctx context.Context, fingerprint string) (map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[fingerprint]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (c *memCache) Set(ctx context.Context, fingerprint string, result map[string]any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fingerprint] = result
	return nil
}

type fakeExtractor struct {
	mu    sync.Mutex
	calls int
	err   error
	out   *model.VetOutput
}

func (f *fakeExtractor) Provider() string { return "fake" }

func (f *fakeExtractor) Extract(ctx context.Context, in model.VetInput) (*adapter.ExtractionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := f.out
	if out == nil {
		out = &model.VetOutput{}
	}
	return &adapter.ExtractionResult{Output: out, Raw: out.AsMap()}, nil
}

// ---- reference table fakes ----

type memPatientRepo struct {
	mu       sync.Mutex
	patients map[string]*model.Patient
}

func newMemPatientRepo() *memPatientRepo {
	return &memPatientRepo{patients: make(map[string]*model.Patient)}
}

func (r *memPatientRepo) Save(ctx context.Context, tx repository.Tx, p *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = "patient-fake-id"
	}
	cp := *p
	r.patients[p.ID] = &cp
	return nil
}

func (r *memPatientRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPatientRepo) List(ctx context.Context, tx repository.Tx) ([]*model.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memPatientRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.patients, id)
	return nil
}

// ---- fixture ----

type transcriptFixture struct {
	uc    *TranscriptUseCase
	repo  *memJobRepo
	cache *memCache
	ext   *fakeExtractor
}

func newTranscriptFixture(t *testing.T, ext *fakeExtractor) *transcriptFixture {
	t.Helper()
	lg := nopLogger()

	pool := worker.NewPool(2, 8, lg)
	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)
	t.Cleanup(func() {
		cancel()
		pool.Stop()
	})

	repo := newMemJobRepo()
	cache := newMemCache()
	scheduler := worker.NewScheduler(pool, time.Hour, lg)

	retry := resilience.NewRetryPolicy[*adapter.ExtractionResult](resilience.RetryConfig{
		Attempts:   1,
		MinBackoff: time.Millisecond,
		MaxBackoff: time.Millisecond,
	}, lg)
	cb := resilience.NewBreaker(resilience.BreakerConfig{Name: "uc-test", MaxFailures: 100, Cooldown: time.Minute})
	pipeline := resilience.NewFallbackPolicy[*adapter.ExtractionResult](
		resilience.NewBreakerPolicy[*adapter.ExtractionResult](cb, retry), lg)

	processor := worker.NewTranscriptProcessor(repo, cache, ext, pipeline, time.Hour, lg)
	uc := NewTranscriptUseCase(repo, scheduler, processor, lg)
	return &transcriptFixture{uc: uc, repo: repo, cache: cache, ext: ext}
}

func (f *transcriptFixture) waitTerminal(t *testing.T, taskID string) *TaskStatus {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		st, err := f.uc.Status(context.Background(), taskID)
		if err != nil {
			t.Fatalf("Status failed: %v", err)
		}
		if st.Status != StatusProcessing {
			return st
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("task %s never reached a terminal state", taskID)
	return nil
}

var errProvider = errors.New("provider down")
