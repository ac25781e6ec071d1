package app

import (
	"context"
	"time"

	"Clientes/internal/repo"

	"golang.org/x/sync/singleflight"
)

// pinger coalesces concurrent store pings so a burst of health probes costs one
// round trip. The shared ping runs detached from any single caller's context
// with its own timeout; each caller still stops waiting when its own context ends.
type pinger struct {
	store   repo.ClienteRepo
	timeout time.Duration
	sf      singleflight.Group
}

func newPinger(store repo.ClienteRepo, timeout time.Duration) *pinger {
	return &pinger{store: store, timeout: timeout}
}

func (p *pinger) Ping(ctx context.Context) error {
	ch := p.sf.DoChan("ping", func() (interface{}, error) {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
		defer cancel()
		return nil, p.store.Ping(pctx)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}
