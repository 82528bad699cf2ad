package main

import (
	"context"
	"os/signal"
	"syscall"

	"klinewatch/config"
	"klinewatch/internal/aggregate"
	"klinewatch/internal/market"
	"klinewatch/internal/render"
	"klinewatch/internal/stream"
	"klinewatch/internal/watch"
	"klinewatch/logger"
	"klinewatch/pkg/binance"

	"go.uber.org/zap"
)

func main() {
	// viper config
	cfg := config.Load()

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ws := binance.NewWSClient(cfg.Binance.WS.URL, cfg.Binance.WS.Timeout, log)
	store := market.NewLatestStore()
	renderers := []aggregate.Renderer{render.NewLogRenderer(log)}

	watcher, err := watch.New(cfg, wsDialer{client: ws}, store, renderers, log)
	if err != nil {
		log.Fatal("invalid watch configuration", zap.Error(err))
	}

	if err := watcher.Run(ctx); err != nil {
		log.Fatal("watcher failed", zap.Error(err))
	}
}

// wsDialer adapts the Binance client to the connector's Dialer interface.
type wsDialer struct {
	client *binance.WSClient
}

func (d wsDialer) Dial(symbol, interval string) (stream.Session, error) {
	return d.client.Dial(symbol, interval)
}
