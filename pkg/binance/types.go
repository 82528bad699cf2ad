package binance

// StreamEvent is the envelope of one message received on a Binance kline
// stream. Messages that carry no kline payload (e.g. subscription acks)
// leave Kline nil.
type StreamEvent struct {
	EventType string        `json:"e"` // e.g., "kline"
	EventTime int64         `json:"E"` // event timestamp (in milliseconds since epoch)
	Symbol    string        `json:"s"` // e.g., "BTCUSDT"
	Kline     *KlinePayload `json:"k"` // kline sub-object, nil when absent
}

// KlinePayload mirrors the "k" object of a kline event. Fields are pointers
// so a missing or mistyped value is distinguishable from a zero value when
// the payload is parsed into a Bar.
type KlinePayload struct {
	Start    *int64  `json:"t"` // bucket start (in milliseconds since epoch)
	End      *int64  `json:"T"` // bucket end (in milliseconds since epoch)
	Interval *string `json:"i"` // e.g., "1m", "5m", "15m"
	Open     *string `json:"o"` // opening price, decimal string
	Close    *string `json:"c"` // closing price, decimal string
	High     *string `json:"h"` // highest price during the bucket
	Low      *string `json:"l"` // lowest price during the bucket
	Volume   *string `json:"v"` // traded volume, decimal string
	Closed   *bool   `json:"x"` // whether the bucket is finalized
}
