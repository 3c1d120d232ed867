package worker

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"medvextract/internal/domain"
	"medvextract/internal/domain/model"
	"medvextract/internal/domain/ports/adapter"
	"medvextract/internal/domain/ports/repository"
	"medvextract/internal/infra/logging"
	"medvextract/internal/infra/metrics"
	"medvextract/internal/payload"
	"medvextract/internal/resilience"
)

// TranscriptProcessor runs one submission end to end: dedup against the
// result cache, record the PENDING row, call the extraction provider through
// the resiliency pipeline, sanitize, persist the terminal state, and warm
// the cache. Any failure after the row exists is recorded on the row before
// the error propagates to the caller.
type TranscriptProcessor struct {
	jobs      repository.TranscriptJobRepository
	cache     repository.ResultCache
	extractor adapter.ExtractionService
	pipeline  resilience.Policy[*adapter.ExtractionResult]
	cacheTTL  time.Duration
	log       zerolog.Logger
}

func NewTranscriptProcessor(
	jobs repository.TranscriptJobRepository,
	cache repository.ResultCache,
	extractor adapter.ExtractionService,
	pipeline resilience.Policy[*adapter.ExtractionResult],
	cacheTTL time.Duration,
	logger *zerolog.Logger,
) *TranscriptProcessor {
	return &TranscriptProcessor{
		jobs:      jobs,
		cache:     cache,
		extractor: extractor,
		pipeline:  pipeline,
		cacheTTL:  cacheTTL,
		log:       logger.With().Str("component", "transcript-processor").Logger(),
	}
}

// Process returns the sanitized extraction result for in. Identical inputs
// short-circuit on the cache and never touch the job table a second time.
func (p *TranscriptProcessor) Process(ctx context.Context, jobID string, in model.VetInput) (map[string]any, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	lg := p.log.With().Str("job_id", jobID).Logger()
	lg.Debug().Str("transcript", logging.Preview(in.Transcript, 80)).Msg("processing transcript")

	start := time.Now()
	fp := payload.Fingerprint(in)

	cached, err := p.cache.Get(ctx, fp)
	switch {
	case err == nil:
		metrics.IncCacheRequest("result", "hit")
		metrics.ObserveJob("cached", msSince(start))
		lg.Info().Str("fingerprint", fp).Msg("cache hit, skipping extraction")
		return cached, nil
	case errors.Is(err, domain.ErrNotFound):
		metrics.IncCacheRequest("result", "miss")
	default:
		// An unreachable cache degrades to a miss; it never fails the job.
		metrics.IncCacheRequest("result", "error")
		lg.Warn().Err(err).Msg("result cache lookup failed, treating as miss")
	}

	job := model.NewTranscriptJob(jobID, in)
	if err := p.jobs.Create(ctx, repository.NoTX, job); err != nil {
		metrics.ObserveJob("failed", msSince(start))
		return nil, err
	}

	res, err := p.pipeline.Execute(ctx, p.timedExtract(in))
	if err != nil {
		p.failJob(ctx, &lg, jobID, err)
		metrics.ObserveJob("failed", msSince(start))
		return nil, err
	}

	sanitized := payload.SanitizeMap(res.Raw)

	if err := p.jobs.MarkCompleted(ctx, jobID, res.Raw, sanitized); err != nil {
		p.failJob(ctx, &lg, jobID, err)
		metrics.ObserveJob("failed", msSince(start))
		return nil, err
	}

	if err := p.cache.Set(ctx, fp, sanitized, p.cacheTTL); err != nil {
		metrics.IncCacheRequest("result", "store_error")
		lg.Warn().Err(err).Msg("result cache store failed")
	}

	metrics.ObserveJob("completed", msSince(start))
	lg.Info().Dur("took", time.Since(start)).Msg("transcript processed")
	return sanitized, nil
}

// timedExtract wraps the provider call so every attempt, retried or not,
// lands in the latency metric.
func (p *TranscriptProcessor) timedExtract(in model.VetInput) resilience.Operation[*adapter.ExtractionResult] {
	return func(ctx context.Context) (*adapter.ExtractionResult, error) {
		start := time.Now()
		res, err := p.extractor.Extract(ctx, in)
		metrics.ObserveExtraction(p.extractor.Provider(), int(time.Since(start).Milliseconds()), err == nil)
		return res, err
	}
}

// failJob records the FAILED state. The write is best effort: the original
// error still propagates even when the row cannot be updated.
func (p *TranscriptProcessor) failJob(ctx context.Context, lg *zerolog.Logger, jobID string, cause error) {
	lg.Error().Err(cause).Msg("transcript processing failed")
	if err := p.jobs.MarkFailed(ctx, jobID, cause.Error()); err != nil {
		lg.Error().Err(err).Msg("could not record FAILED state")
	}
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Milliseconds())
}
