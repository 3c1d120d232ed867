package web

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
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
	"medvextract/internal/usecase"
)

func nopLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

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
	err error
	out *model.VetOutput
}

func (f *fakeExtractor) Provider() string { return "fake" }

func (f *fakeExtractor) Extract(ctx context.Context, in model.VetInput) (*adapter.ExtractionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := f.out
	if out == nil {
		out = &model.VetOutput{}
	}
	return &adapter.ExtractionResult{Output: out, Raw: out.AsMap()}, nil
}

type memPatientRepo struct {
	mu       sync.Mutex
	nextID   int
	patients map[string]*model.Patient
}

func newMemPatientRepo() *memPatientRepo {
	return &memPatientRepo{patients: make(map[string]*model.Patient)}
}

func (r *memPatientRepo) Save(ctx context.Context, tx repository.Tx, p *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		r.nextID++
		p.ID = fmt.Sprintf("patient-%d", r.nextID)
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

type memVetRepo struct {
	mu   sync.Mutex
	vets map[string]*model.Veterinarian
}

func newMemVetRepo() *memVetRepo { return &memVetRepo{vets: make(map[string]*model.Veterinarian)} }

func (r *memVetRepo) Save(ctx context.Context, tx repository.Tx, v *model.Veterinarian) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.ID == "" {
		v.ID = "vet-1"
	}
	cp := *v
	r.vets[v.ID] = &cp
	return nil
}

func (r *memVetRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Veterinarian, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *memVetRepo) List(ctx context.Context, tx repository.Tx) ([]*model.Veterinarian, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Veterinarian, 0, len(r.vets))
	for _, v := range r.vets {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memVetRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vets[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.vets, id)
	return nil
}

type memClinicRepo struct {
	mu      sync.Mutex
	clinics map[string]*model.Clinic
}

func newMemClinicRepo() *memClinicRepo {
	return &memClinicRepo{clinics: make(map[string]*model.Clinic)}
}

func (r *memClinicRepo) Save(ctx context.Context, tx repository.Tx, c *model.Clinic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = "clinic-1"
	}
	cp := *c
	r.clinics[c.ID] = &cp
	return nil
}

func (r *memClinicRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Clinic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clinics[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memClinicRepo) List(ctx context.Context, tx repository.Tx) ([]*model.Clinic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Clinic, 0, len(r.clinics))
	for _, c := range r.clinics {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memClinicRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clinics[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.clinics, id)
	return nil
}

// newTestServer stands up the full HTTP surface over in-memory fakes.
func newTestServer(t *testing.T, ext *fakeExtractor) *httptest.Server {
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
	scheduler := worker.NewScheduler(pool, time.Hour, lg)

	retry := resilience.NewRetryPolicy[*adapter.ExtractionResult](resilience.RetryConfig{
		Attempts:   1,
		MinBackoff: time.Millisecond,
		MaxBackoff: time.Millisecond,
	}, lg)
	cb := resilience.NewBreaker(resilience.BreakerConfig{Name: "web-test", MaxFailures: 100, Cooldown: time.Minute})
	pipeline := resilience.NewFallbackPolicy[*adapter.ExtractionResult](
		resilience.NewBreakerPolicy[*adapter.ExtractionResult](cb, retry), lg)

	processor := worker.NewTranscriptProcessor(repo, newMemCache(), ext, pipeline, time.Hour, lg)
	transcriptUC := usecase.NewTranscriptUseCase(repo, scheduler, processor, lg)

	srv := NewServer(
		transcriptUC,
		usecase.NewPatientUseCase(newMemPatientRepo()),
		usecase.NewVeterinarianUseCase(newMemVetRepo()),
		usecase.NewClinicUseCase(newMemClinicRepo()),
		lg,
	)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}
