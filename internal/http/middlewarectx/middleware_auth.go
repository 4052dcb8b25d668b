// Package middlewarectx содержит HTTP middleware приложения: проверку
// bearer-токена, гейт по статусу подписки, CORS и ограничение частоты запросов.
//
// JWTMiddleware проверяет наличие и валидность токена в заголовке Authorization,
// загружает пользователя из хранилища и кладёт его в контекст запроса
// для дальнейшего использования в обработчиках.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/advodraft/legal-feed/internal/http/response"
	"github.com/advodraft/legal-feed/internal/lib/jwt"
	"github.com/advodraft/legal-feed/internal/lib/sl"
	"github.com/advodraft/legal-feed/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserKey — ключ для текущего пользователя в контексте.
const UserKey Key = "user"

// TokenParser описывает интерфейс проверки токена сессии.
type TokenParser interface {
	ParseToken(tokenStr string) (string, error)
}

// UserProvider загружает пользователя по идентификатору из токена.
type UserProvider interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// UserFromContext возвращает текущего пользователя, положенного JWTMiddleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok && user != nil
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Если токен валиден и пользователь существует, кладёт его в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func JWTMiddleware(maker TokenParser, users UserProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			userID, err := maker.ParseToken(tokenStr)
			if err != nil {
				log.Error("token validation failed", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					render.JSON(w, r, response.Error("Token expired"))
				default:
					render.JSON(w, r, response.Error("Invalid token"))
				}
				return
			}

			user, err := users.GetUser(r.Context(), userID)
			if err != nil {
				log.Error("user from token not found", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("User not found"))
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
