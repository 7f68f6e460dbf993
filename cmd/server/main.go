package main

import (
	"context"
	"fmt"

	"github.com/waveswap/waveswap/internal/adapter"
	"github.com/waveswap/waveswap/internal/config"
	httphandler "github.com/waveswap/waveswap/internal/handler/http"
	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/server"
	"github.com/waveswap/waveswap/internal/service"
	"github.com/waveswap/waveswap/internal/store"
	"github.com/waveswap/waveswap/internal/workers"
	"github.com/waveswap/waveswap/internal/ws"
	"github.com/waveswap/waveswap/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("waveswap-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)
	adapters := adapter.NewAdapters(cfg.Upstream, log)

	// The hub is the swap service's status notifier and needs the auth
	// service to validate websocket tokens, so the validator is wired after
	// the services exist.
	hub := ws.NewHub(nil, log)
	services := service.NewServices(storages, adapters, cfg, hub, log)
	hub.SetValidator(services.AuthService)

	seedTokenMetadata(context.Background(), services.TokenService, log)

	handlers := httphandler.NewHandler(services, db, hub.HandleConnection, log)

	backgroundWorkers := workers.NewWorkers(storages, cfg.Workers, log)
	backgroundWorkers.Run()

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log, hub.Close, backgroundWorkers.Stop)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// seedTokenMetadata upserts the reference rows for the mints the frontend
// offers by default. Failures are logged and ignored: the rows are a
// convenience, not a startup dependency.
func seedTokenMetadata(ctx context.Context, tokens service.TokenService, log *logger.Logger) {
	seed := []models.TokenMetadata{
		{
			Mint:       "So11111111111111111111111111111111111111112",
			Symbol:     "wSOL",
			Name:       "Wrapped SOL",
			Decimals:   9,
			IsVerified: true,
		},
		{
			Mint:       "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
			Symbol:     "USDC",
			Name:       "USD Coin",
			Decimals:   6,
			IsVerified: true,
		},
	}

	for _, token := range seed {
		if err := tokens.UpsertToken(ctx, token); err != nil {
			log.Err(err).Str("mint", token.Mint).Msg("error seeding token metadata")
		}
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
