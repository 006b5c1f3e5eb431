// Package api собирает HTTP-приложение: хранилище, кэш, брокер,
// загрузчик медиафайлов, сервисы и маршруты, а также управляет
// жизненным циклом HTTP-сервера.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/videonest/backend/internal/cache"
	"github.com/videonest/backend/internal/config"
	"github.com/videonest/backend/internal/lib/jwt"
	"github.com/videonest/backend/internal/media"
	"github.com/videonest/backend/internal/migrations"
	"github.com/videonest/backend/internal/rabbitmq"
	authservice "github.com/videonest/backend/internal/services/auth"
	userservice "github.com/videonest/backend/internal/services/user"
	"github.com/videonest/backend/internal/storage"
)

// App инкапсулирует HTTP-сервер и его внешние зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
	rabbit *amqp.Connection
}

// New создает приложение: подключает Postgres, прогоняет миграции,
// поднимает redis-кэш, RabbitMQ и S3-загрузчик, собирает сервисы
// и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	uploader, err := media.NewUploader(ctx, cfg.MediaStorage)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn, rabbitmq.GetNotificationQueues())
	if err != nil {
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(rabbitCh)

	jwtMaker := jwt.NewJWTMaker(
		cfg.AccessSecretKey, cfg.AccessTokenTTL,
		cfg.RefreshSecretKey, cfg.RefreshTokenTTL,
	)

	authService := authservice.NewAuthService(db, jwtMaker)
	userService := userservice.NewUserService(db, uploader, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, userService, uploader, publisher)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		rabbit: rabbitConn,
	}, nil
}

// Run запускает HTTP-сервер и обслуживает его до отмены контекста,
// после чего останавливает сервер и закрывает зависимости.
func (a *App) Run(ctx context.Context) error {
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
		a.closeDependencies()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeDependencies()
		return err
	}
}

// closeDependencies закрывает внешние клиенты приложения. Вызывается
// на обоих путях завершения Run: и при остановке по сигналу,
// и при ошибке запуска сервера.
func (a *App) closeDependencies() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis client", slog.Any("err", err))
		}
	}
	if a.rabbit != nil {
		if err := a.rabbit.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq connection", slog.Any("err", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("failed to close database pool", slog.Any("err", err))
		}
	}
}
