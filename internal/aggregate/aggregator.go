package aggregate

import (
	"math"
	"sort"
	"time"

	"klinewatch/internal/market"

	"go.uber.org/zap"
)

// Update is one cache mutation delivered to renderers.
type Update struct {
	Bar         market.Bar
	ProcessedAt time.Time
}

// Average is the cross-pair mean percent change recomputed after an update.
type Average struct {
	ChangePercent float64
	Pairs         int // entries contributing to the mean
}

// Renderer receives update and average events synchronously after each
// cache mutation. Everything handed over is a copy, so implementations can
// hold on to it without racing the next mutation.
type Renderer interface {
	RenderUpdate(Update)
	RenderAverage(Average)
}

// Aggregator is the single consumer of the fan-in bar channel. It owns the
// latest-bar cache exclusively: the receive loop is the only writer and
// renderers only ever see snapshots, so no lock is needed.
type Aggregator struct {
	store     *market.LatestStore
	renderers []Renderer
	logger    *zap.Logger
	now       func() time.Time
}

func New(store *market.LatestStore, renderers []Renderer, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		store:     store,
		renderers: renderers,
		logger:    logger,
		now:       time.Now,
	}
}

// Run consumes bars until the channel is closed. Each bar overwrites the
// cache slot for its (symbol, interval) key, so the last write wins per key.
func (a *Aggregator) Run(in <-chan market.Bar) {
	cache := make(map[market.Key]market.Bar)

	for bar := range in {
		cache[bar.Key()] = bar

		snapshot := snapshotOf(cache)
		if a.store != nil {
			a.store.Publish(snapshot)
		}

		update := Update{Bar: bar, ProcessedAt: a.now()}
		for _, r := range a.renderers {
			r.RenderUpdate(update)
		}

		if avg, ok := meanChangePercent(snapshot); ok {
			for _, r := range a.renderers {
				r.RenderAverage(avg)
			}
		}
	}

	a.logger.Info("bar channel closed, aggregator done", zap.Int("pairs", len(cache)))
}

// snapshotOf copies the cache into a deterministically ordered slice.
func snapshotOf(cache map[market.Key]market.Bar) []market.Bar {
	out := make([]market.Bar, 0, len(cache))
	for _, b := range cache {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Symbol != out[j].Symbol {
			return out[i].Symbol < out[j].Symbol
		}
		return out[i].Interval < out[j].Interval
	})
	return out
}

// meanChangePercent averages PriceChangePercent over the finite entries of
// the snapshot. Bars with a zero open contribute NaN and are excluded; when
// no entry is finite there is no average to emit.
func meanChangePercent(bars []market.Bar) (Average, bool) {
	var sum float64
	var n int
	for _, b := range bars {
		pct := b.PriceChangePercent()
		if math.IsNaN(pct) || math.IsInf(pct, 0) {
			continue
		}
		sum += pct
		n++
	}
	if n == 0 {
		return Average{}, false
	}
	return Average{ChangePercent: sum / float64(n), Pairs: n}, true
}
