package prober

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// RefreshSpec is how often the cached availability snapshot is rebuilt.
const RefreshSpec = "@every 2m"

// Refresher keeps the prober's cache warm so status queries rarely block
// on live probes.
type Refresher struct {
	ctx     context.Context
	cron    *cron.Cron
	prober  *Prober
	timeout time.Duration
	log     *slog.Logger
}

func NewRefresher(
	ctx context.Context,
	p *Prober,
	timeout time.Duration,
	log *slog.Logger,
) *Refresher {
	return &Refresher{
		ctx:     ctx,
		cron:    cron.New(),
		prober:  p,
		timeout: timeout,
		log:     log,
	}
}

func (r *Refresher) Start() error {
	if _, err := r.cron.AddFunc(RefreshSpec, r.refresh); err != nil {
		return err
	}

	r.cron.Start()

	return nil
}

func (r *Refresher) Stop() {
	r.cron.Stop()
}

func (r *Refresher) refresh() {
	select {
	case <-r.ctx.Done():
		r.log.InfoContext(r.ctx, "Refresher context is done",
			"error", r.ctx.Err())
		return
	default:
	}

	r.prober.Refresh(r.ctx, r.timeout)
}
