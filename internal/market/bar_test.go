package market

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBarDerivedMetrics(t *testing.T) {
	bar := Bar{
		Symbol:        "btcusdt",
		Interval:      "1m",
		IntervalStart: time.UnixMilli(1700000000000).UTC(),
		Open:          100,
		High:          110,
		Low:           95,
		Close:         105,
		Volume:        10.5,
	}

	assert.InDelta(t, 5.0, bar.PriceChange(), 1e-9)
	assert.InDelta(t, 5.0, bar.PriceChangePercent(), 1e-9)
	assert.Equal(t, Key{Symbol: "btcusdt", Interval: "1m"}, bar.Key())
}

func TestBarZeroOpenPercentIsNaN(t *testing.T) {
	bar := Bar{Symbol: "newusdt", Interval: "1m", Open: 0, Close: 3}

	assert.Equal(t, 3.0, bar.PriceChange())
	assert.True(t, math.IsNaN(bar.PriceChangePercent()))
}
