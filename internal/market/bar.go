package market

import (
	"math"
	"time"
)

// Key identifies one watched stream and one cache slot.
type Key struct {
	Symbol   string
	Interval string
}

// Bar is a single OHLCV observation for one (symbol, interval) time bucket.
// A Bar is constructed once by the parser and never mutated afterwards.
type Bar struct {
	Symbol        string
	Interval      string
	IntervalStart time.Time // UTC start of the bucket
	Open          float64
	High          float64
	Low           float64
	Close         float64
	Volume        float64
}

func (b Bar) Key() Key {
	return Key{Symbol: b.Symbol, Interval: b.Interval}
}

// PriceChange returns close minus open.
func (b Bar) PriceChange() float64 {
	return b.Close - b.Open
}

// PriceChangePercent returns the percent change over the bar.
// It is NaN when the open price is zero.
func (b Bar) PriceChangePercent() float64 {
	if b.Open == 0 {
		return math.NaN()
	}
	return b.PriceChange() / b.Open * 100
}
