// Package jwt реализует выпуск и проверку подписанных токенов сессии.
//
// Maker определяет интерфейс для создания и проверки токенов с идентификатором
// пользователя в качестве subject. MakerImpl — конкретная реализация
// с секретным ключом процесса и фиксированным временем жизни.
package jwt

import (
	"errors"
	"time"
)

// Ошибки проверки токена, различаемые на уровне HTTP-ответов.
var (
	// ErrTokenExpired — срок действия токена истёк.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed — токен структурно некорректен.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenInvalid — подпись или содержимое токена недействительны.
	ErrTokenInvalid = errors.New("token invalid")
)

// Maker описывает интерфейс для выпуска и проверки токенов сессии.
type Maker interface {
	// GenerateToken создает токен с идентификатором пользователя.
	GenerateToken(userID string) (string, error)
	// ParseToken проверяет токен и возвращает идентификатор пользователя.
	ParseToken(tokenStr string) (string, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL). Ключ передаётся из конфигурации процесса,
// ротация не поддерживается.
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
