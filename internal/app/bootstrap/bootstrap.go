package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	lifecycleservice "halalan/contexts/election-administration/lifecycle-service"
	lifecyclepostgres "halalan/contexts/election-administration/lifecycle-service/adapters/postgres"
	rosterservice "halalan/contexts/election-administration/roster-service"
	rosterpostgres "halalan/contexts/election-administration/roster-service/adapters/postgres"
	ballotservice "halalan/contexts/voting/ballot-service"
	ballotpostgres "halalan/contexts/voting/ballot-service/adapters/postgres"
	tallyservice "halalan/contexts/voting/tally-service"
	tallypostgres "halalan/contexts/voting/tally-service/adapters/postgres"
	"halalan/internal/platform/config"
	"halalan/internal/platform/db"
	"halalan/internal/platform/httpserver"
	"halalan/internal/platform/identity"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	if cfg.MigrateOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		if err := pg.Migrate(ctx); err != nil {
			_ = pg.Close()
			return nil, err
		}
	}

	lifecycleRepo := lifecyclepostgres.NewRepository(pg.DB, logger)
	lifecycleModule := lifecycleservice.NewModule(lifecycleservice.Dependencies{
		Elections:  lifecycleRepo,
		Positions:  lifecycleRepo,
		Partylists: lifecycleRepo,
		Candidates: lifecycleRepo,
		Clock:      lifecyclepostgres.SystemClock{},
		IDGen:      lifecyclepostgres.UUIDGenerator{},
		Logger:     logger,
	})

	rosterRepo := rosterpostgres.NewRepository(pg.DB, logger)
	rosterModule := rosterservice.NewModule(rosterservice.Dependencies{
		Elections: rosterRepo,
		Roster:    rosterRepo,
		Votes:     rosterRepo,
		Directory: rosterRepo,
		Clock:     rosterpostgres.SystemClock{},
		IDGen:     rosterpostgres.UUIDGenerator{},
		Logger:    logger,
	})

	ballotRepo := ballotpostgres.NewRepository(pg.DB, logger)
	ballotModule := ballotservice.NewModule(ballotservice.Dependencies{
		Elections: ballotRepo,
		Roster:    ballotRepo,
		Votes:     ballotRepo,
		Clock:     ballotpostgres.SystemClock{},
		IDGen:     ballotpostgres.UUIDGenerator{},
		Logger:    logger,
	})

	tallyRepo := tallypostgres.NewRepository(pg.DB, logger)
	tallyModule := tallyservice.NewModule(tallyservice.Dependencies{
		Reader: tallyRepo,
		Clock:  tallypostgres.SystemClock{},
		Logger: logger,
	})

	verifier := identity.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)
	server := httpserver.New(
		lifecycleModule,
		rosterModule,
		ballotModule,
		tallyModule,
		verifier,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
