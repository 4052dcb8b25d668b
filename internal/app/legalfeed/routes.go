package legalfeed

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/advodraft/legal-feed/internal/http/handlers/ai/draft"
	"github.com/advodraft/legal-feed/internal/http/handlers/auth/login"
	"github.com/advodraft/legal-feed/internal/http/handlers/auth/me"
	"github.com/advodraft/legal-feed/internal/http/handlers/auth/register"
	"github.com/advodraft/legal-feed/internal/http/handlers/cases/bulkimport"
	casecreate "github.com/advodraft/legal-feed/internal/http/handlers/cases/create"
	caselist "github.com/advodraft/legal-feed/internal/http/handlers/cases/list"
	"github.com/advodraft/legal-feed/internal/http/handlers/cases/summaries"
	"github.com/advodraft/legal-feed/internal/http/handlers/health"
	"github.com/advodraft/legal-feed/internal/http/handlers/root"
	"github.com/advodraft/legal-feed/internal/http/middlewarectx"
	accessservice "github.com/advodraft/legal-feed/internal/services/access"
	authservice "github.com/advodraft/legal-feed/internal/services/auth"
	casesservice "github.com/advodraft/legal-feed/internal/services/cases"
	"github.com/advodraft/legal-feed/internal/llm"
	"github.com/advodraft/legal-feed/internal/lib/jwt"
	"github.com/advodraft/legal-feed/internal/storage/repository"
)

// Services — зависимости HTTP-слоя, собранные в App.New.
type Services struct {
	Auth         *authservice.Service
	Access       *accessservice.Service
	Cases        *casesservice.Service
	Orchestrator *llm.Orchestrator
	TokenMaker   jwt.Maker
	Users        middlewarectx.UserProvider
	Storage      *repository.Storage
	CORSOrigins  []string
}

// RegisterRoutes регистрирует все маршруты приложения.
//
// Эндпоинты ленты и AI-генерации требуют активной подписки; профиль
// и создание дела — только валидного токена. Пакетный импорт открыт
// для внешних систем-поставщиков.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.CORSMiddleware(svc.CORSOrigins),
	)

	rootHandler := root.New(logger)

	r.Get("/", rootHandler.ServeHTTP)
	r.Get("/health", health.New(logger, svc.Storage).ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/", rootHandler.ServeHTTP)
		r.Post("/auth/register", register.New(logger, svc.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, svc.Auth).ServeHTTP)
		r.Post("/receive_cases", bulkimport.New(logger, svc.Cases).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.TokenMaker, svc.Users, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/auth/me", me.New(logger, svc.Access).ServeHTTP)
			r.Post("/cases", casecreate.New(logger, svc.Cases).ServeHTTP)
			r.Post("/ai/generate-draft", draft.New(logger, svc.Orchestrator, svc.Access).ServeHTTP)

			// Подгруппа, доступная только с активной подпиской
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.SubscriptionGateMiddleware(logger, svc.Access))

				r.Get("/cases", caselist.New(logger, svc.Cases).ServeHTTP)
				r.Post("/cases/{case_id}/generate-summaries", summaries.New(logger, svc.Cases).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
