package aggregate

import (
	"testing"
	"time"

	"klinewatch/internal/market"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type captureRenderer struct {
	updates  []Update
	averages []Average
}

func (r *captureRenderer) RenderUpdate(u Update)   { r.updates = append(r.updates, u) }
func (r *captureRenderer) RenderAverage(a Average) { r.averages = append(r.averages, a) }

func runBars(t *testing.T, store *market.LatestStore, bars ...market.Bar) *captureRenderer {
	t.Helper()

	capture := &captureRenderer{}
	agg := New(store, []Renderer{capture}, zap.NewNop())
	agg.now = func() time.Time { return time.UnixMilli(1700000001000) }

	in := make(chan market.Bar, len(bars))
	for _, b := range bars {
		in <- b
	}
	close(in)

	agg.Run(in)
	return capture
}

func bar(symbol, interval string, open, close float64) market.Bar {
	return market.Bar{
		Symbol:        symbol,
		Interval:      interval,
		IntervalStart: time.UnixMilli(1700000000000).UTC(),
		Open:          open,
		High:          close,
		Low:           open,
		Close:         close,
		Volume:        1,
	}
}

func TestAggregatorLastWriteWins(t *testing.T) {
	store := market.NewLatestStore()
	a := bar("ethusdt", "5m", 100, 101)
	b := bar("ethusdt", "5m", 100, 110)

	capture := runBars(t, store, a, bar("btcusdt", "1m", 100, 105), b)

	got, ok := store.Latest(market.Key{Symbol: "ethusdt", Interval: "5m"})
	require.True(t, ok)
	assert.Equal(t, 110.0, got.Close)

	// The emitted average reflects B, not A: mean of +5% and +10%.
	require.NotEmpty(t, capture.averages)
	last := capture.averages[len(capture.averages)-1]
	assert.Equal(t, 2, last.Pairs)
	assert.InDelta(t, 7.5, last.ChangePercent, 1e-9)
}

func TestAggregatorAverageOverPresentKeys(t *testing.T) {
	capture := runBars(t, market.NewLatestStore(),
		bar("btcusdt", "1m", 100, 105), // +5%
		bar("ethusdt", "1m", 100, 95),  // -5%
		bar("bnbusdt", "1m", 100, 103), // +3%
	)

	require.Len(t, capture.updates, 3)
	require.Len(t, capture.averages, 3)

	assert.InDelta(t, 5.0, capture.averages[0].ChangePercent, 1e-9)
	assert.InDelta(t, 0.0, capture.averages[1].ChangePercent, 1e-9)
	assert.InDelta(t, 1.0, capture.averages[2].ChangePercent, 1e-9)
	assert.Equal(t, 3, capture.averages[2].Pairs)
}

func TestAggregatorExcludesNonFiniteFromAverage(t *testing.T) {
	capture := runBars(t, market.NewLatestStore(),
		bar("newusdt", "1m", 0, 3), // zero open: percent change is NaN
		bar("btcusdt", "1m", 100, 105),
	)

	// The zero-open bar renders its own update but yields no average.
	require.Len(t, capture.updates, 2)
	require.Len(t, capture.averages, 1)
	assert.Equal(t, 1, capture.averages[0].Pairs)
	assert.InDelta(t, 5.0, capture.averages[0].ChangePercent, 1e-9)
}

func TestAggregatorUpdateEvents(t *testing.T) {
	capture := runBars(t, market.NewLatestStore(), bar("btcusdt", "1m", 100, 105))

	require.Len(t, capture.updates, 1)
	assert.Equal(t, "btcusdt", capture.updates[0].Bar.Symbol)
	assert.Equal(t, time.UnixMilli(1700000001000), capture.updates[0].ProcessedAt)
}

func TestAggregatorRunsWithoutStore(t *testing.T) {
	capture := &captureRenderer{}
	agg := New(nil, []Renderer{capture}, zap.NewNop())

	in := make(chan market.Bar, 1)
	in <- bar("btcusdt", "1m", 100, 105)
	close(in)

	agg.Run(in)
	assert.Len(t, capture.updates, 1)
}

func TestSnapshotOfIsSortedAndDetached(t *testing.T) {
	cache := map[market.Key]market.Bar{
		{Symbol: "ethusdt", Interval: "5m"}: bar("ethusdt", "5m", 10, 11),
		{Symbol: "btcusdt", Interval: "5m"}: bar("btcusdt", "5m", 100, 105),
		{Symbol: "btcusdt", Interval: "1m"}: bar("btcusdt", "1m", 100, 105),
	}

	snap := snapshotOf(cache)
	require.Len(t, snap, 3)
	assert.Equal(t, market.Key{Symbol: "btcusdt", Interval: "1m"}, snap[0].Key())
	assert.Equal(t, market.Key{Symbol: "btcusdt", Interval: "5m"}, snap[1].Key())
	assert.Equal(t, market.Key{Symbol: "ethusdt", Interval: "5m"}, snap[2].Key())
}
