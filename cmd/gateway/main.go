package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrijs2005/schoolchat/internal/gateway"
	"github.com/dmitrijs2005/schoolchat/internal/logging"

	_ "modernc.org/sqlite"
)

type config struct {
	Addr string `env:"GATEWAY_ADDR" envDefault:":8090"`
	DSN  string `env:"GATEWAY_DSN" envDefault:"gateway.db"`
}

func main() {

	log := logging.NewDefault()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Error(ctx, "parsing environment", "err", err)
		os.Exit(1)
	}

	db, err := gateway.Open(ctx, cfg.DSN)
	if err != nil {
		log.Error(ctx, "opening store", "dsn", cfg.DSN, "err", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: gateway.NewServer(gateway.NewSQLiteStore(db), log).Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info(ctx, "gateway listening", "addr", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(ctx, "server stopped", "err", err)
		os.Exit(1)
	}
}
