// Package prober answers "which provider families are reachable right
// now, and which models do they expose".
package prober

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"sumarena/internal/domain"
	"sumarena/internal/provider"
)

// Prober runs availability checks across provider families. Snapshots are
// recomputed per query; CachedSnapshot serves a copy within an explicit
// freshness window.
type Prober struct {
	adapters map[domain.ProviderFamily]provider.Adapter
	log      *slog.Logger

	mu    sync.Mutex
	cache map[domain.ProviderFamily]domain.ProviderStatus
}

func New(adapters map[domain.ProviderFamily]provider.Adapter, log *slog.Logger) *Prober {
	return &Prober{
		adapters: adapters,
		log:      log,
		cache:    make(map[domain.ProviderFamily]domain.ProviderStatus),
	}
}

// Families lists the families the prober knows adapters for.
func (p *Prober) Families() []domain.ProviderFamily {
	families := make([]domain.ProviderFamily, 0, len(p.adapters))
	for family := range p.adapters {
		families = append(families, family)
	}

	return families
}

// Snapshot probes each requested family concurrently, each bounded by its
// own timeout. A slow or failing family never delays or fails the others:
// its entry resolves to a failure-shaped status instead.
func (p *Prober) Snapshot(
	ctx context.Context,
	families []domain.ProviderFamily,
	timeout time.Duration,
) map[domain.ProviderFamily]domain.ProviderStatus {
	statuses := make([]domain.ProviderStatus, len(families))

	var eg errgroup.Group
	for i, family := range families {
		eg.Go(func() error {
			statuses[i] = p.probe(ctx, family, timeout)

			return nil
		})
	}
	// Goroutines always return nil: probe failures are data, not errors.
	_ = eg.Wait()

	out := make(map[domain.ProviderFamily]domain.ProviderStatus, len(families))
	for i, family := range families {
		out[family] = statuses[i]
	}

	p.store(out)

	return out
}

// CachedSnapshot serves cache entries younger than maxAge and re-probes
// only the stale families.
func (p *Prober) CachedSnapshot(
	ctx context.Context,
	families []domain.ProviderFamily,
	timeout time.Duration,
	maxAge time.Duration,
) map[domain.ProviderFamily]domain.ProviderStatus {
	now := time.Now()
	out := make(map[domain.ProviderFamily]domain.ProviderStatus, len(families))

	var stale []domain.ProviderFamily

	p.mu.Lock()
	for _, family := range families {
		cached, ok := p.cache[family]
		if ok && now.Sub(cached.CheckedAt) <= maxAge {
			out[family] = cached
			continue
		}

		stale = append(stale, family)
	}
	p.mu.Unlock()

	if len(stale) == 0 {
		return out
	}

	for family, status := range p.Snapshot(ctx, stale, timeout) {
		out[family] = status
	}

	return out
}

// Refresh re-probes every known family. Used by the periodic refresher.
func (p *Prober) Refresh(ctx context.Context, timeout time.Duration) {
	snapshot := p.Snapshot(ctx, p.Families(), timeout)

	for family, status := range snapshot {
		p.log.InfoContext(ctx, "Provider availability refreshed",
			"family", string(family),
			"reachable", status.Reachable,
			"modelCount", len(status.Models),
			"diagnostic", status.Diagnostic)
	}
}

func (p *Prober) probe(
	ctx context.Context,
	family domain.ProviderFamily,
	timeout time.Duration,
) domain.ProviderStatus {
	checkedAt := time.Now()

	adapter, ok := p.adapters[family]
	if !ok {
		return domain.ProviderStatus{
			Family:     family,
			Diagnostic: fmt.Sprintf("no adapter for family %q", family),
			CheckedAt:  checkedAt,
		}
	}

	if !adapter.IsConfigured() {
		// Short-circuit: nothing to probe without connection info.
		return domain.ProviderStatus{
			Family:     family,
			Diagnostic: "provider is not configured",
			CheckedAt:  checkedAt,
		}
	}

	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return adapter.CheckAvailability(probeCtx)
}

func (p *Prober) store(snapshot map[domain.ProviderFamily]domain.ProviderStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for family, status := range snapshot {
		p.cache[family] = status
	}
}
