package binance

import (
	"fmt"
	"time"
)

// KlineInterval is a kline interval identifier as used in stream names.
type KlineInterval string

const (
	Interval1Min    KlineInterval = "1m"
	Interval3Min    KlineInterval = "3m"
	Interval5Min    KlineInterval = "5m"
	Interval15Min   KlineInterval = "15m"
	Interval30Min   KlineInterval = "30m"
	Interval1Hour   KlineInterval = "1h"
	Interval2Hour   KlineInterval = "2h"
	Interval4Hour   KlineInterval = "4h"
	Interval6Hour   KlineInterval = "6h"
	Interval8Hour   KlineInterval = "8h"
	Interval12Hour  KlineInterval = "12h"
	IntervalDaily   KlineInterval = "1d"
	Interval3Day    KlineInterval = "3d"
	IntervalWeekly  KlineInterval = "1w"
	IntervalMonthly KlineInterval = "1M"
)

// validKlineIntervals maps each interval to its bucket width.
var validKlineIntervals = map[KlineInterval]time.Duration{
	Interval1Min:    time.Minute,
	Interval3Min:    3 * time.Minute,
	Interval5Min:    5 * time.Minute,
	Interval15Min:   15 * time.Minute,
	Interval30Min:   30 * time.Minute,
	Interval1Hour:   time.Hour,
	Interval2Hour:   2 * time.Hour,
	Interval4Hour:   4 * time.Hour,
	Interval6Hour:   6 * time.Hour,
	Interval8Hour:   8 * time.Hour,
	Interval12Hour:  12 * time.Hour,
	IntervalDaily:   24 * time.Hour,
	Interval3Day:    3 * 24 * time.Hour,
	IntervalWeekly:  7 * 24 * time.Hour,
	IntervalMonthly: 30 * 24 * time.Hour, // 30 days approximation
}

// IsValid checks if the KlineInterval is a valid predefined interval.
func (k KlineInterval) IsValid() bool {
	_, ok := validKlineIntervals[k]
	return ok
}

// ParseKlineInterval parses a string into a valid interval and its width.
func ParseKlineInterval(s string) (time.Duration, error) {
	d, ok := validKlineIntervals[KlineInterval(s)]
	if !ok {
		return 0, fmt.Errorf("invalid kline interval: %s", s)
	}
	return d, nil
}
