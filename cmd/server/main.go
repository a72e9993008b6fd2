package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agreementlog/internal/app/server/api"
	"agreementlog/internal/app/server/config"
	serverCrypto "agreementlog/internal/app/server/crypto"
	"agreementlog/internal/infrastructure/anchor"
	"agreementlog/internal/infrastructure/storage/postgres"
	"agreementlog/internal/utils/logger"
)

func main() {
	conf := config.MustLoad()
	log := logger.New(conf.Env)

	enc, err := serverCrypto.New(conf.Crypto.KeyHex, conf.Crypto.Passphrase, conf.Crypto.Salt)
	if err != nil {
		log.Error("encryption setup failed", "error", err)
		os.Exit(1)
	}

	storage, err := postgres.New(conf)
	if err != nil {
		log.Error("storage setup failed", "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	notifier := anchor.New(conf.Anchor.URL, conf.Anchor.Timeout, conf.Anchor.MaxRetries, log)

	srv := &http.Server{
		Addr:    conf.Server.RunAddress,
		Handler: api.New(storage, enc, notifier, log),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server", "addr", conf.Server.RunAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	log.Info("server stopped")
}
