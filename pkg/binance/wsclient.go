package binance

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ErrSessionClosed reports that the remote end closed a stream session
// normally. It is a termination condition, not a failure.
var ErrSessionClosed = errors.New("stream session closed by remote")

// WSClient dials one kline stream session per (symbol, interval) pair.
type WSClient struct {
	baseURL string
	dialer  *websocket.Dialer
	logger  *zap.Logger
}

// NewWSClient creates a WebSocket client for the given stream endpoint,
// e.g. "wss://stream.binance.com:9443".
func NewWSClient(baseURL string, timeout time.Duration, logger *zap.Logger) *WSClient {
	dialer := &websocket.Dialer{HandshakeTimeout: timeout}
	return &WSClient{
		baseURL: baseURL,
		dialer:  dialer,
		logger:  logger,
	}
}

// StreamURL builds the raw-stream endpoint for one pair,
// e.g. wss://stream.binance.com:9443/ws/btcusdt@kline_1m.
func (c *WSClient) StreamURL(symbol, interval string) string {
	return fmt.Sprintf("%s/ws/%s@kline_%s", c.baseURL, strings.ToLower(symbol), interval)
}

// Dial establishes the stream session for one pair. Each call owns an
// independent connection; callers are responsible for closing it.
func (c *WSClient) Dial(symbol, interval string) (*Session, error) {
	url := c.StreamURL(symbol, interval)

	conn, _, err := c.dialer.Dial(url, nil)
	if err != nil {
		c.logger.Error("failed to connect to WebSocket", zap.String("url", url), zap.Error(err))
		return nil, err
	}
	c.logger.Info("WebSocket connected", zap.String("url", url))

	return &Session{conn: conn}, nil
}

// Session is one established kline stream connection.
type Session struct {
	conn *websocket.Conn
}

// ReadMessage returns the next raw message from the session. Once the remote
// end closes the session normally it returns an error wrapping
// ErrSessionClosed; any other error is a transport failure.
func (s *Session) ReadMessage() ([]byte, error) {
	_, msg, err := s.conn.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil, fmt.Errorf("%w: %v", ErrSessionClosed, err)
		}
		return nil, err
	}
	return msg, nil
}

func (s *Session) Close() error {
	return s.conn.Close()
}
