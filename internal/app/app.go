package app

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"voltledger/internal/access"
	"voltledger/internal/config"
	"voltledger/internal/db"
	httpserver "voltledger/internal/http"
	"voltledger/internal/http/handlers"
	"voltledger/internal/http/middleware"
	"voltledger/internal/metrics"
	"voltledger/internal/notify"
	"voltledger/internal/redisconn"
	"voltledger/internal/repository"
	"voltledger/internal/service"
)

// App wires voltledger dependencies.
type App struct {
	server      *httpserver.Server
	hub         *notify.Hub
	pool        *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	pool, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(context.Background(), pool); err != nil {
		pool.Close()
		return nil, err
	}

	redisClient, err := redisconn.New(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		pool.Close()
		return nil, err
	}

	ownerRepo := repository.NewOwnerRepository(pool)
	stationRepo := repository.NewStationRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	ledgerRepo := repository.NewLedgerRepository(pool)

	guard, err := access.NewGuard(cfg.ProviderID, ownerRepo, stationRepo)
	if err != nil {
		pool.Close()
		redisClient.Close()
		return nil, err
	}

	redisNotifier, err := notify.NewRedisNotifier(redisClient, cfg.Redis.Channel)
	if err != nil {
		pool.Close()
		redisClient.Close()
		return nil, err
	}
	hub := notify.NewHub(0, logger)
	notifier := notify.NewMulti(redisNotifier, hub)

	m := metrics.New()

	tokens := service.NewTokenService(cfg.Auth.Secret, cfg.TokenTTL())
	registry := service.NewRegistryService(ownerRepo, stationRepo, notifier, m, logger)
	sessions := service.NewSessionsService(guard, sessionRepo, stationRepo, notifier, m, logger)
	settlement := service.NewSettlementService(guard, sessionRepo, stationRepo, ledgerRepo, notifier, m, logger)
	credit := service.NewCreditService(guard, ledgerRepo, notifier, m, logger)
	wallet := service.NewWalletService(ledgerRepo, logger)

	registryHandlers := handlers.NewRegistryHandlers(registry)
	sessionHandlers := handlers.NewSessionHandlers(sessions)
	creditHandlers := handlers.NewCreditHandlers(credit)
	walletHandlers := handlers.NewWalletHandlers(wallet)

	routes := httpserver.Routes{
		Token:           handlers.NewTokenHandler(tokens),
		RegisterOwner:   registryHandlers.RegisterOwner,
		RegisterStation: registryHandlers.RegisterStation,
		ListStations:    registryHandlers.ListStations,
		GetStation:      registryHandlers.GetStation,
		StartSession:    sessionHandlers.Start,
		EndSession:      sessionHandlers.End,
		GetSession:      sessionHandlers.Get,
		SessionsMe:      sessionHandlers.Me,
		PaySession:      handlers.NewPaySessionHandler(settlement),
		BuyElectricity:  creditHandlers.BuyElectricity,
		Withdraw:        creditHandlers.Withdraw,
		WalletDeposit:   walletHandlers.Deposit,
		WalletBalance:   walletHandlers.Balance,
		Events:          handlers.NewEventsHandler(hub, logger),
		Metrics:         m.Handler(),
		Health:          handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(routes, middleware.Auth(tokens))
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		hub:         hub,
		pool:        pool,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Run starts the observer hub and HTTP server.
func (a *App) Run(ctx context.Context) error {
	go a.hub.Run(ctx)
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.pool != nil {
		if err := a.pool.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
