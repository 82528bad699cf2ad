package binance

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"klinewatch/internal/market"
)

// Field names reported by MalformedRecordError, in payload parse order.
const (
	FieldTimestamp = "timestamp"
	FieldOpen      = "open"
	FieldHigh      = "high"
	FieldLow       = "low"
	FieldClose     = "close"
	FieldVolume    = "volume"
)

// maxEpochMilli is 9999-12-31T23:59:59.999Z. Together with the zero lower
// bound it defines the window in which an epoch-ms value maps to exactly
// one accepted UTC instant.
const maxEpochMilli = 253402300799999

// MalformedRecordError reports the first invalid field encountered while
// parsing a kline payload.
type MalformedRecordError struct {
	Field string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed kline record: field %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("malformed kline record: field %s missing or not a string", e.Field)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// ParseBar converts one kline payload into a Bar for the given pair.
// It is a pure function: a payload that cannot be converted yields a
// *MalformedRecordError naming the first invalid field, never a default
// or partially filled Bar.
func ParseBar(symbol, interval string, k KlinePayload) (market.Bar, error) {
	start, err := parseStart(k.Start)
	if err != nil {
		return market.Bar{}, err
	}
	open, err := parseDecimal(FieldOpen, k.Open)
	if err != nil {
		return market.Bar{}, err
	}
	high, err := parseDecimal(FieldHigh, k.High)
	if err != nil {
		return market.Bar{}, err
	}
	low, err := parseDecimal(FieldLow, k.Low)
	if err != nil {
		return market.Bar{}, err
	}
	closePrice, err := parseDecimal(FieldClose, k.Close)
	if err != nil {
		return market.Bar{}, err
	}
	volume, err := parseDecimal(FieldVolume, k.Volume)
	if err != nil {
		return market.Bar{}, err
	}

	return market.Bar{
		Symbol:        strings.ToLower(symbol),
		Interval:      interval,
		IntervalStart: start,
		Open:          open,
		High:          high,
		Low:           low,
		Close:         closePrice,
		Volume:        volume,
	}, nil
}

// parseStart validates the bucket-start timestamp. A value outside the
// accepted window is an error; it is never substituted with the current time.
func parseStart(v *int64) (time.Time, error) {
	if v == nil {
		return time.Time{}, &MalformedRecordError{Field: FieldTimestamp}
	}
	if *v < 0 || *v > maxEpochMilli {
		return time.Time{}, &MalformedRecordError{
			Field: FieldTimestamp,
			Err:   fmt.Errorf("epoch ms %d out of range", *v),
		}
	}
	return time.UnixMilli(*v).UTC(), nil
}

func parseDecimal(field string, v *string) (float64, error) {
	if v == nil {
		return 0, &MalformedRecordError{Field: field}
	}
	f, err := strconv.ParseFloat(*v, 64)
	if err != nil {
		return 0, &MalformedRecordError{Field: field, Err: err}
	}
	return f, nil
}
