// Package orchestrator dispatches one document to a chosen set of models
// concurrently and collects comparable, normalized results.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"sumarena/internal/domain"
	"sumarena/internal/provider"
	"sumarena/internal/registry"
)

// ErrInvalidRequest rejects a batch before any backend is contacted.
// It is the only way SummarizeAll fails as a whole.
var ErrInvalidRequest = errors.New("invalid request")

// MaxInputWords bounds the document size accepted for one batch.
const MaxInputWords = 10000

const defaultMaxConcurrentCalls = 8

// Options tunes one orchestrator instance.
type Options struct {
	// RemoteTimeout bounds each remote-family call.
	RemoteTimeout time.Duration
	// LocalTimeout bounds each local-family call. Kept separate because a
	// cold local model can spend most of the budget loading weights.
	LocalTimeout time.Duration
	// MaxConcurrentCalls caps in-flight backend calls per batch.
	MaxConcurrentCalls int
}

type Orchestrator struct {
	registry *registry.Registry
	adapters map[domain.ProviderFamily]provider.Adapter
	opts     Options
	log      *slog.Logger
}

func New(
	reg *registry.Registry,
	adapters map[domain.ProviderFamily]provider.Adapter,
	opts Options,
	log *slog.Logger,
) *Orchestrator {
	if opts.RemoteTimeout <= 0 {
		opts.RemoteTimeout = 30 * time.Second
	}
	if opts.LocalTimeout <= 0 {
		opts.LocalTimeout = 120 * time.Second
	}
	if opts.MaxConcurrentCalls <= 0 {
		opts.MaxConcurrentCalls = defaultMaxConcurrentCalls
	}

	return &Orchestrator{
		registry: reg,
		adapters: adapters,
		opts:     opts,
		log:      log,
	}
}

// SummarizeAll fans the document out to every requested model and returns
// one result per requested identifier, in input order. After validation
// it never fails as a whole: unknown models, unreachable backends and
// timeouts all land as failure results in their slots.
func (o *Orchestrator) SummarizeAll(
	ctx context.Context,
	text string,
	modelIDs []string,
	maxWords int,
) ([]domain.SummarizationResult, ComparisonMetrics, error) {
	if err := validateBatch(text, modelIDs); err != nil {
		return nil, ComparisonMetrics{}, err
	}

	text = strings.TrimSpace(text)
	results := make([]domain.SummarizationResult, len(modelIDs))

	var wg sync.WaitGroup

	concurrency := min(o.opts.MaxConcurrentCalls, runtime.NumCPU()*2, len(modelIDs))
	semCh := make(chan struct{}, concurrency)

	start := time.Now()

	for i, modelID := range modelIDs {
		desc, err := o.registry.Describe(modelID)
		if err != nil {
			results[i] = slotFailure(modelID, "", domain.ErrorUnknownModel, err.Error())
			continue
		}

		adapter, ok := o.adapters[desc.Family]
		if !ok {
			results[i] = slotFailure(
				modelID,
				desc.Family,
				domain.ErrorUnreachable,
				fmt.Sprintf("no adapter for family %q", desc.Family),
			)
			continue
		}

		req := domain.SummarizationRequest{
			Text:     text,
			ModelID:  modelID,
			MaxWords: clampMaxWords(maxWords, desc),
		}

		wg.Add(1)
		semCh <- struct{}{}

		go func(slot int, a provider.Adapter, req domain.SummarizationRequest) {
			defer wg.Done()

			results[slot] = o.dispatch(ctx, a, req)

			<-semCh
		}(i, adapter, req)
	}

	wg.Wait()

	metrics := Compare(text, results)

	o.log.InfoContext(ctx, "Summarization batch finished",
		"modelCount", len(modelIDs),
		"succeeded", metrics.Succeeded,
		"failed", metrics.Failed,
		"elapsedMs", time.Since(start).Milliseconds())

	return results, metrics, nil
}

// dispatch runs one adapter call under its family timeout. The guard
// select converts a call that outlives its deadline into a timeout
// failure without waiting on the adapter, so one stuck backend can never
// hold the batch past its own budget.
func (o *Orchestrator) dispatch(
	ctx context.Context,
	a provider.Adapter,
	req domain.SummarizationRequest,
) domain.SummarizationResult {
	timeout := o.opts.RemoteTimeout
	if a.Family() == domain.FamilyLocal {
		timeout = o.opts.LocalTimeout
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resCh := make(chan domain.SummarizationResult, 1)
	go func() {
		resCh <- a.Summarize(callCtx, req)
	}()

	select {
	case res := <-resCh:
		return res
	case <-callCtx.Done():
		return domain.SummarizationResult{
			ModelID:    req.ModelID,
			Family:     a.Family(),
			Elapsed:    timeout,
			ErrKind:    domain.ErrorTimeout,
			ErrMessage: fmt.Sprintf("no response within %s", timeout),
			Timestamp:  time.Now(),
		}
	}
}

func validateBatch(text string, modelIDs []string) error {
	if len(modelIDs) == 0 {
		return fmt.Errorf("%w: no models selected", ErrInvalidRequest)
	}

	seen := make(map[string]struct{}, len(modelIDs))
	for _, id := range modelIDs {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: empty model identifier", ErrInvalidRequest)
		}

		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate model identifier %q", ErrInvalidRequest, id)
		}
		seen[id] = struct{}{}
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("%w: text is empty", ErrInvalidRequest)
	}

	if !utf8.ValidString(trimmed) {
		return fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidRequest)
	}

	if words := len(strings.Fields(trimmed)); words > MaxInputWords {
		return fmt.Errorf("%w: text too long: %d words (max %d)",
			ErrInvalidRequest, words, MaxInputWords)
	}

	return nil
}

func clampMaxWords(maxWords int, desc domain.ModelDescriptor) int {
	if maxWords <= 0 {
		return desc.DefaultMaxWords
	}
	if maxWords > desc.MaxOutputWords {
		return desc.MaxOutputWords
	}

	return maxWords
}

func slotFailure(
	modelID string,
	family domain.ProviderFamily,
	kind domain.ErrorKind,
	message string,
) domain.SummarizationResult {
	return domain.SummarizationResult{
		ModelID:    modelID,
		Family:     family,
		ErrKind:    kind,
		ErrMessage: message,
		Timestamp:  time.Now(),
	}
}
