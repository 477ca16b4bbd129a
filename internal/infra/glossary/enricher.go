package glossary

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"odx/internal/domain"
)

// FieldsFetcher is the slice of the remote client the enricher needs.
type FieldsFetcher interface {
	FieldsGet(ctx context.Context, model string) (domain.FieldMap, error)
}

// Enricher fills in live field metadata for dynamic catalog entries.
type Enricher struct {
	client      FieldsFetcher
	logger      *zap.Logger
	metrics     FailureRecorder
	concurrency int
}

// FailureRecorder receives a signal for every degraded enrichment.
type FailureRecorder interface {
	RecordEnrichmentFailure(model string)
}

// Options configures the Enricher.
type Options struct {
	Client      FieldsFetcher
	Logger      *zap.Logger
	Metrics     FailureRecorder
	Concurrency int
}

func NewEnricher(opts Options) *Enricher {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = domain.DefaultEnrichmentConcurrency
	}
	return &Enricher{
		client:      opts.Client,
		logger:      logger.Named("enricher"),
		metrics:     opts.Metrics,
		concurrency: concurrency,
	}
}

// Enrich returns a new catalog of the same length and order with dynamic
// entries' field maps fetched from the remote instance. Enrichment is best
// effort: a failed fetch degrades that entry to an empty field map and the
// rest of the catalog is unaffected. Enrich never returns an error.
func (e *Enricher) Enrich(ctx context.Context, catalog []domain.GlossaryEntry) []domain.GlossaryEntry {
	out := make([]domain.GlossaryEntry, len(catalog))
	for i, entry := range catalog {
		out[i] = entry.Clone()
	}

	semaphore := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup

	for i := range out {
		if out[i].FieldsSource != domain.FieldsDynamic {
			continue
		}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				e.degrade(idx, out, ctx.Err())
				return
			}
			defer func() { <-semaphore }()

			fields, err := e.fetchFields(ctx, out[idx].Model)
			if err != nil {
				e.degrade(idx, out, err)
				return
			}
			out[idx].Fields = fields
		}(i)
	}

	wg.Wait()
	return out
}

// fetchFields isolates one remote fetch; a nil result payload degrades to an
// empty map rather than an absent one.
func (e *Enricher) fetchFields(ctx context.Context, model string) (domain.FieldMap, error) {
	fields, err := e.client.FieldsGet(ctx, model)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		fields = domain.FieldMap{}
	}
	return fields, nil
}

func (e *Enricher) degrade(idx int, out []domain.GlossaryEntry, err error) {
	out[idx].Fields = domain.FieldMap{}
	if e.metrics != nil {
		e.metrics.RecordEnrichmentFailure(out[idx].Model)
	}
	e.logger.Warn("glossary enrichment degraded to empty fields",
		zap.String("model", out[idx].Model),
		zap.Error(err),
	)
}
