package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"intentpay/internal/config"
	httpx "intentpay/internal/http"
	"intentpay/internal/infra/logging"
	"intentpay/internal/infra/metrics"
	"intentpay/internal/provider"
	"intentpay/internal/provider/airwallex"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.Log)
	metrics.MustRegister()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gw, err := connectGateway(ctx, cfg.Gateway)
	if err != nil {
		log.Fatal().Err(err).
			Str("provider", cfg.Gateway.Provider).
			Str("account", cfg.Gateway.Account).
			Msg("gateway login failed")
	}

	registry := provider.NewRegistry()
	registry.Register(cfg.Gateway.Account, gw)

	// Router
	r := httpx.NewRouter(httpx.RouterDependencies{
		Config:           cfg,
		ProviderRegistry: registry,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Msgf("IntentPay API listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	log.Info().Msg("server stopped")
}

// connectGateway checks the configured provider and logs in to it, retrying transient failures at startup.
// Rejected credentials and bad config are not retried.
func connectGateway(ctx context.Context, cfg config.GatewayCfg) (*airwallex.Gateway, error) {
	if !provider.IsProviderSupported(provider.ProviderType(cfg.Provider)) {
		return nil, provider.UsageError(fmt.Sprintf("unsupported payment provider %q", cfg.Provider))
	}

	awCfg := airwallex.Config{
		ClientID:        cfg.ClientID,
		APIKey:          cfg.APIKey,
		Test:            cfg.Test,
		BaseURL:         cfg.BaseURL,
		DefaultCurrency: cfg.DefaultCurrency,
		TimeoutSec:      cfg.TimeoutSec,
	}

	var gw *airwallex.Gateway
	op := func() error {
		var err error
		gw, err = airwallex.New(ctx, awCfg)
		if err == nil {
			return nil
		}
		if provider.IsUsageError(err) || provider.HasCode(err, provider.ErrAuthFailed) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(cfg.LoginMaxAttempts-1)),
		ctx,
	)
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Dur("retry_in", wait).Msg("gateway login failed, retrying")
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return nil, err
	}
	return gw, nil
}
