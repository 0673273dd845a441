package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"sumarena/internal/config"
	"sumarena/internal/domain"
	"sumarena/internal/orchestrator"
	"sumarena/internal/prober"
	"sumarena/internal/provider"
	"sumarena/internal/registry"
	"sumarena/internal/server"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err == nil {
		log.InfoContext(ctx, ".env file is loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load configuration",
			"error", err)

		return
	}

	reg := registry.New()
	log.InfoContext(ctx, "Model registry is initialized",
		"modelCount", len(reg.ListAll()))

	adapters := initAdapters(ctx, cfg, reg, log)

	orch := orchestrator.New(reg, adapters, orchestrator.Options{
		RemoteTimeout:      cfg.RemoteTimeout,
		LocalTimeout:       cfg.LocalTimeout,
		MaxConcurrentCalls: cfg.MaxConcurrentCalls,
	}, log)

	prb := prober.New(adapters, log)

	refresher := prober.NewRefresher(ctx, prb, cfg.ProbeTimeout, log)
	if err = refresher.Start(); err != nil {
		log.ErrorContext(ctx, "Failed to start availability refresher",
			"error", err,
			"spec", prober.RefreshSpec)

		return
	}
	defer refresher.Stop()
	log.InfoContext(ctx, "Availability refresher is started",
		"spec", prober.RefreshSpec)

	srv := server.New(cfg, reg, orch, prb, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(ctx)
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
		cancel()

		if err = <-errCh; err != nil {
			log.ErrorContext(ctx, "HTTP server shutdown failed",
				"error", err)
		}
	case err = <-errCh:
		if err != nil {
			log.ErrorContext(ctx, "HTTP server failed",
				"error", err)
		}
	}

	log.InfoContext(ctx, "Exiting...",
		"uptimeSeconds", time.Since(start).Seconds())
}

func initAdapters(
	ctx context.Context,
	cfg config.Config,
	reg *registry.Registry,
	log *slog.Logger,
) map[domain.ProviderFamily]provider.Adapter {
	remote := provider.NewRemote(provider.RemoteConfig{
		APIKey:  cfg.GroqAPIKey,
		BaseURL: cfg.GroqBaseURL,
	}, reg.FamilyModelIDs(domain.FamilyRemote), log)

	if !remote.IsConfigured() {
		log.WarnContext(ctx, "GROQ_API_KEY is missing so remote models will report unauthorized",
			"envVar", "GROQ_API_KEY")
	}

	local := provider.NewLocal(provider.LocalConfig{
		BaseURL: cfg.OllamaURL,
	}, reg.FamilyModelIDs(domain.FamilyLocal), log)

	return map[domain.ProviderFamily]provider.Adapter{
		domain.FamilyRemote: remote,
		domain.FamilyLocal:  local,
	}
}
