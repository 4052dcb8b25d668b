package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/advodraft/legal-feed/internal/http/response"
	"github.com/advodraft/legal-feed/internal/lib/sl"
	"github.com/advodraft/legal-feed/internal/models"
)

// AccessService определяет интерфейс проверки доступности сервиса для пользователя.
//
// IsActive — чтение с побочным эффектом: у пользователя с истёкшим
// пробным периодом статус подписки гасится в хранилище.
type AccessService interface {
	IsActive(ctx context.Context, user *models.User) (bool, error)
}

// SubscriptionGateMiddleware создает middleware, отклоняющее запросы
// пользователей с неактивной подпиской.
func SubscriptionGateMiddleware(log *slog.Logger, access AccessService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SubscriptionGateMiddleware"

			user, ok := UserFromContext(r.Context())
			if !ok {
				log.Error("user missing in context", slog.String("op", op))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			active, err := access.IsActive(r.Context(), user)
			if err != nil {
				log.Error("failed to check subscription status", slog.String("op", op), sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if !active {
				log.Info("subscription inactive, access denied",
					slog.String("op", op), slog.String("user_id", user.ID))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("Subscription expired. Please upgrade your plan."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
