package main

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/eagle-pass/internal/adapter"
	"github.com/MKhiriev/eagle-pass/internal/config"
	"github.com/MKhiriev/eagle-pass/internal/crypto"
	"github.com/MKhiriev/eagle-pass/internal/handler"
	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/internal/server"
	"github.com/MKhiriev/eagle-pass/internal/service"
	"github.com/MKhiriev/eagle-pass/internal/store"
	"github.com/MKhiriev/eagle-pass/internal/workers"
	"github.com/MKhiriev/eagle-pass/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(info)

	log := logger.NewLogger("eagle-pass-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = info.BuildVersion()
	}

	log.Debug().Any("config", cfg.Redacted()).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	deriver, err := crypto.ParseKDF(cfg.App.VaultKDF)
	if err != nil {
		log.Fatal().Err(err).Msg("error selecting vault KDF")
	}
	cipherOpts := []crypto.Option{crypto.WithKeyDeriver(deriver)}
	if cfg.App.VaultStrictEnvelopes {
		cipherOpts = append(cipherOpts, crypto.WithStrictEnvelopes())
	}
	cipher, err := crypto.NewVaultCipher(cfg.App.SecretKey, cipherOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating vault cipher")
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Closer.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("error closing storages")
		}
	}()

	discord, err := adapter.NewDiscordAdapter(cfg.OAuth.Discord, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating discord adapter")
	}

	services, err := service.NewServices(storages, cipher, discord, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		workers.NewWorkers(storages, cipher, cfg.Workers, log).Run(ctx)
	}()

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}

	stop()
	wg.Wait()
	log.Info().Msg("eagle-pass server stopped")
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
