package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"klinewatch/internal/market"
	"klinewatch/pkg/binance"

	"go.uber.org/zap"
)

// Session is one established streaming session delivering raw messages.
type Session interface {
	ReadMessage() ([]byte, error)
	Close() error
}

// Dialer opens a session for one (symbol, interval) pair.
type Dialer interface {
	Dial(symbol, interval string) (Session, error)
}

// ConnectorError tags a connector failure with the pair that failed.
type ConnectorError struct {
	Symbol   string
	Interval string
	Err      error
}

func (e *ConnectorError) Error() string {
	return fmt.Sprintf("connector %s@%s: %v", e.Symbol, e.Interval, e.Err)
}

func (e *ConnectorError) Unwrap() error { return e.Err }

// Connector owns one streaming session for a single (symbol, interval) pair
// and forwards every successfully parsed bar onto the shared channel.
type Connector struct {
	Symbol   string
	Interval string
	Dialer   Dialer
	Out      chan<- market.Bar
	Logger   *zap.Logger
}

// Run dials the session and pumps bars until the session ends. The remote
// end closing the session is normal termination; any dial, read, or parse
// failure ends the loop and is returned as a *ConnectorError. Each run is a
// single attempt: no reconnection.
func (c *Connector) Run(ctx context.Context) error {
	c.Logger.Info("connecting kline stream",
		zap.String("symbol", c.Symbol), zap.String("interval", c.Interval))

	sess, err := c.Dialer.Dial(c.Symbol, c.Interval)
	if err != nil {
		return c.fail(fmt.Errorf("dial: %w", err))
	}
	defer sess.Close()

	for {
		msg, err := sess.ReadMessage()
		if err != nil {
			if errors.Is(err, binance.ErrSessionClosed) {
				c.Logger.Warn("stream session closed",
					zap.String("symbol", c.Symbol), zap.String("interval", c.Interval))
				return nil
			}
			return c.fail(fmt.Errorf("read: %w", err))
		}

		var event binance.StreamEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				return c.fail(fmt.Errorf("decode event: %w", err))
			}
			// Mistyped fields stay nil and are reported per-field by the parser.
		}
		if event.Kline == nil {
			continue // subscription acks and other non-kline messages
		}

		bar, err := binance.ParseBar(c.Symbol, c.Interval, *event.Kline)
		if err != nil {
			return c.fail(err)
		}

		select {
		case c.Out <- bar:
			c.Logger.Debug("bar forwarded",
				zap.String("symbol", c.Symbol), zap.String("interval", c.Interval))
		case <-ctx.Done():
			return c.fail(ctx.Err())
		}
	}
}

func (c *Connector) fail(err error) error {
	return &ConnectorError{Symbol: c.Symbol, Interval: c.Interval, Err: err}
}
