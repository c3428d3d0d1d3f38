// Package enft собирает приложение: хранилище, кэш, клиент реестра,
// сервисы и HTTP-сервер с маршрутами.
package enft

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/enftlab/enft-backend/internal/cache"
	"github.com/enftlab/enft-backend/internal/chain"
	"github.com/enftlab/enft-backend/internal/config"
	"github.com/enftlab/enft-backend/internal/lib/jwt"
	"github.com/enftlab/enft-backend/internal/lib/rabbitmq"
	"github.com/enftlab/enft-backend/internal/lib/sl"
	"github.com/enftlab/enft-backend/internal/migrations"
	"github.com/enftlab/enft-backend/internal/models"
	adminservice "github.com/enftlab/enft-backend/internal/services/admin"
	authservice "github.com/enftlab/enft-backend/internal/services/auth"
	chatservice "github.com/enftlab/enft-backend/internal/services/chat"
	mintservice "github.com/enftlab/enft-backend/internal/services/mint"
	"github.com/enftlab/enft-backend/internal/services/notifier"
	userservice "github.com/enftlab/enft-backend/internal/services/user"
	"github.com/enftlab/enft-backend/internal/storage/repository"
	"github.com/enftlab/enft-backend/internal/ws"
)

// App агрегирует все компоненты сервиса допусков.
type App struct {
	server      *http.Server
	logger      *slog.Logger
	db          *repository.Storage
	cache       *cache.Cache
	chainClient *chain.Client
	amqpConn    *amqp.Connection
	hub         *ws.Hub
}

// timedLedger оборачивает клиент реестра таймаутом ожидания квитанции.
type timedLedger struct {
	client  *chain.Client
	timeout time.Duration
}

func (l timedLedger) MintNFT(ctx context.Context, req chain.MintRequest) (*models.MintReceipt, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	return l.client.MintNFT(ctx, req)
}

// New собирает приложение из конфигурации.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	chainClient, err := chain.New(ctx, cfg.Chain.RPCURL, cfg.Chain.ContractAddress)
	if err != nil {
		return nil, err
	}

	var feePayer *chain.Keyring
	if cfg.Chain.FeePayerKey != "" {
		feePayer = &chain.Keyring{PrivateKey: cfg.Chain.FeePayerKey}
	}

	var amqpConn *amqp.Connection
	var mintPublisher mintservice.Publisher
	if cfg.AMQP.Enabled {
		amqpConn, err = rabbitmq.Connect(cfg.AMQP.URI, cfg.AMQP.Retries, cfg.AMQP.RetryDelay)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetMintQueues())
		if err != nil {
			return nil, err
		}
		mintPublisher = notifier.New(ch)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)

	userService := userservice.New(db, cacheRedis, chain.GenerateKeyring, logger, cfg.LegacyApprovalCheck)
	adminService := adminservice.New(db, chain.GenerateKeyring, logger)
	authService := authservice.New(db, db, jwtMaker)
	chatService := chatservice.New(db, logger)
	mintService := mintservice.New(
		timedLedger{client: chainClient, timeout: cfg.Chain.MintTimeout},
		userService, adminService, db, mintPublisher,
		feePayer, cfg.Chain.GasLimit, logger)

	hub := ws.NewHub(chatService, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		User:  userService,
		Admin: adminService,
		Auth:  authService,
		Chat:  chatService,
		Mint:  mintService,
		Hub:   hub,
		HealthCheck: func() error {
			return repository.CheckDatabaseReady(db)
		},
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:      srv,
		logger:      logger,
		db:          db,
		cache:       cacheRedis,
		chainClient: chainClient,
		amqpConn:    amqpConn,
		hub:         hub,
	}, nil
}

// Run запускает хаб чата и HTTP-сервер и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	go a.hub.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.chainClient.Close()
		if a.amqpConn != nil {
			if cerr := a.amqpConn.Close(); cerr != nil {
				a.logger.Error("failed to close amqp connection", sl.Err(cerr))
			}
		}
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Error("failed to close database", sl.Err(cerr))
		}
		return err
	}
}
