// Package repository реализует хранилище данных на основе PostgreSQL
// для пользователей и судебных дел. Предоставляет методы создания,
// чтения и обновления записей; теги дел хранятся в JSONB-колонке.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища.
var (
	// ErrUserNotFound — пользователь с таким идентификатором или email отсутствует.
	ErrUserNotFound = errors.New("user not found")
	// ErrCaseNotFound — дело с таким идентификатором отсутствует.
	ErrCaseNotFound = errors.New("case not found")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями и делами.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'cases'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table cases missing or query error: %w", err)
	}
	return nil
}
