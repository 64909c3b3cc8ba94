package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"givetrack/internal/adapter/repo"
	"givetrack/internal/auth"
	"givetrack/internal/donations"
	"givetrack/internal/http/handlers"
	"givetrack/internal/http/httpapi"
	"givetrack/internal/infra"
	"givetrack/internal/infra/geoip"
	"givetrack/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	// Sessions idle out server-side; redis is preferred so deadlines
	// survive restarts, with an in-process fallback for local runs.
	var sessions session.Store
	if cfg.RedisAddr != "" {
		client, err := infra.NewRedisClient(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect redis")
		}
		defer client.Close()
		sessions = session.NewRedisStore(client, cfg.IdleTimeout)
	} else {
		logger.Warn().Msg("REDIS_ADDR not set, using in-process sessions")
		sessions = session.NewMemoryStore(cfg.IdleTimeout)
	}

	var geo geoip.CountryResolver
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		defer resolver.Close()
		geo = resolver
	}

	users := repo.NewUserRepository(dbpool)
	donationRepo := repo.NewDonationRepository(dbpool)

	controller := donations.NewController(donationRepo, cfg.PageSize, logger)
	if err := controller.Load(ctx); err != nil {
		// Served stale-empty until the first successful list refresh.
		logger.Error().Err(err).Msg("initial donation load failed")
	}

	app := &handlers.App{
		Logger:       logger,
		Users:        users,
		Donations:    controller,
		Auth:         auth.NewService(users, sessions, geo, []byte(cfg.JWTSecret), cfg.AuthTokenTTL, logger),
		Sessions:     sessions,
		JWTSecret:    []byte(cfg.JWTSecret),
		Passphrase:   cfg.AccessPassphrase,
		GateTokenTTL: cfg.GateTokenTTL,
	}

	router := httpapi.NewRouter(app, cfg)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Msg("API listening")
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
