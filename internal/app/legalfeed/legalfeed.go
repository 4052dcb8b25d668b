// Package legalfeed собирает приложение ленты судебных дел: подключение
// к хранилищу и кэшу, миграции, сервисы и HTTP-сервер с graceful shutdown.
package legalfeed

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/advodraft/legal-feed/internal/cache"
	"github.com/advodraft/legal-feed/internal/config"
	"github.com/advodraft/legal-feed/internal/lib/jwt"
	"github.com/advodraft/legal-feed/internal/llm"
	"github.com/advodraft/legal-feed/internal/migrations"
	accessservice "github.com/advodraft/legal-feed/internal/services/access"
	authservice "github.com/advodraft/legal-feed/internal/services/auth"
	casesservice "github.com/advodraft/legal-feed/internal/services/cases"
	"github.com/advodraft/legal-feed/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и ресурсы приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New создает приложение: открывает соединения, накатывает миграции,
// собирает сервисы и настраивает маршруты.
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

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	llmClient := llm.NewClient(cfg.LLMProvider)
	orchestrator := llm.NewOrchestrator(llmClient, logger)

	accessService := accessservice.New(db, logger)
	authService := authservice.New(db, jwtMaker, logger)
	casesService := casesservice.New(db, cacheRedis, orchestrator, accessService, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:         authService,
		Access:       accessService,
		Cases:        casesService,
		Orchestrator: orchestrator,
		TokenMaker:   jwtMaker,
		Users:        db,
		Storage:      db,
		CORSOrigins:  cfg.CORSOriginsList(),
	})

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
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста
// или ошибки сервера. При отмене выполняет graceful shutdown.
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
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Error("failed to close database connection")
		}
		return err
	}
}
