package render

import (
	"klinewatch/internal/aggregate"

	"go.uber.org/zap"
)

// LogRenderer writes one line per bar update and one per recomputed
// cross-pair average.
type LogRenderer struct {
	logger *zap.Logger
}

func NewLogRenderer(logger *zap.Logger) *LogRenderer {
	return &LogRenderer{logger: logger}
}

func (r *LogRenderer) RenderUpdate(u aggregate.Update) {
	b := u.Bar
	r.logger.Info("kline update",
		zap.String("symbol", b.Symbol),
		zap.String("interval", b.Interval),
		zap.Time("local_time", u.ProcessedAt),
		zap.Time("interval_start", b.IntervalStart),
		zap.Float64("open", b.Open),
		zap.Float64("high", b.High),
		zap.Float64("low", b.Low),
		zap.Float64("close", b.Close),
		zap.Float64("volume", b.Volume),
		zap.Float64("change", b.PriceChange()),
		zap.Float64("change_percent", b.PriceChangePercent()),
	)
}

func (r *LogRenderer) RenderAverage(a aggregate.Average) {
	r.logger.Info("average price change across all pairs",
		zap.Float64("change_percent", a.ChangePercent),
		zap.Int("pairs", a.Pairs),
	)
}
