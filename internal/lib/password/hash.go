// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// bcrypt учитывает только первые 72 байта входа, поэтому пароль явно
// усекается до этого предела и при хешировании, и при проверке —
// политика усечения должна совпадать, иначе проверка старых хэшей сломается.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes — предел длины пароля в байтах, заданный bcrypt.
const MaxPasswordBytes = 72

// GetHash принимает пароль пользователя и возвращает его bcrypt-хэш.
//
// Используется для безопасного хранения паролей в базе данных.
func GetHash(rawPassword string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword(truncate(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt-хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, иначе — ошибку.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), truncate(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func truncate(rawPassword string) []byte {
	b := []byte(rawPassword)
	if len(b) > MaxPasswordBytes {
		b = b[:MaxPasswordBytes]
	}
	return b
}
