package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"klinewatch/config"
	"klinewatch/internal/aggregate"
	"klinewatch/internal/market"
	"klinewatch/internal/stream"
	"klinewatch/pkg/binance"

	"go.uber.org/zap"
)

// Pair is one (symbol, interval) entry of the watch set.
type Pair struct {
	Symbol   string
	Interval string
}

// Pairs expands symbols x intervals into the full watch set.
func Pairs(symbols, intervals []string) []Pair {
	out := make([]Pair, 0, len(symbols)*len(intervals))
	for _, s := range symbols {
		for _, i := range intervals {
			out = append(out, Pair{Symbol: s, Interval: i})
		}
	}
	return out
}

// Watcher composes the watch set into one connector per pair, all feeding a
// single aggregator over one bounded channel.
type Watcher struct {
	pairs        []Pair
	dialer       stream.Dialer
	store        *market.LatestStore
	renderers    []aggregate.Renderer
	capacity     int
	statusPeriod time.Duration
	logger       *zap.Logger
}

// New validates the configured watch set and builds a Watcher.
func New(cfg *config.Config, dialer stream.Dialer, store *market.LatestStore,
	renderers []aggregate.Renderer, logger *zap.Logger) (*Watcher, error) {
	if len(cfg.Watch.Symbols) == 0 || len(cfg.Watch.Intervals) == 0 {
		return nil, fmt.Errorf("watch set is empty")
	}
	for _, iv := range cfg.Watch.Intervals {
		if _, err := binance.ParseKlineInterval(iv); err != nil {
			return nil, fmt.Errorf("watch set: %w", err)
		}
	}

	return &Watcher{
		pairs:        Pairs(cfg.Watch.Symbols, cfg.Watch.Intervals),
		dialer:       dialer,
		store:        store,
		renderers:    renderers,
		capacity:     cfg.Watch.ChannelCapacity,
		statusPeriod: cfg.Watch.StatusPeriod,
		logger:       logger,
	}, nil
}

// Run starts one connector per pair and consumes bars until all of them
// have stopped. A failed connector is logged with its pair tag and does not
// stop its siblings; once every connector has returned the channel closes,
// the aggregator drains, and Run returns nil. That path is the normal end
// of life even when every connector failed.
func (w *Watcher) Run(ctx context.Context) error {
	bars := make(chan market.Bar, w.capacity)

	var wg sync.WaitGroup
	for _, p := range w.pairs {
		c := &stream.Connector{
			Symbol:   p.Symbol,
			Interval: p.Interval,
			Dialer:   w.dialer,
			Out:      bars,
			Logger:   w.logger,
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Run(ctx); err != nil {
				w.logger.Error("connector failed",
					zap.String("symbol", c.Symbol),
					zap.String("interval", c.Interval),
					zap.Error(err))
			}
		}()
	}

	go func() {
		wg.Wait()
		close(bars)
	}()

	if w.statusPeriod > 0 {
		statusCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go w.reportStatus(statusCtx)
	}

	aggregate.New(w.store, w.renderers, w.logger).Run(bars)

	w.logger.Info("all streams finished, watcher shutting down")
	return nil
}

// reportStatus periodically logs how many pairs have produced data.
func (w *Watcher) reportStatus(ctx context.Context) {
	ticker := time.NewTicker(w.statusPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.logger.Info("watch status",
				zap.Int("pairs_watched", len(w.pairs)),
				zap.Int("pairs_with_data", w.store.Count()))
		}
	}
}
