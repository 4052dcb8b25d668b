package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/advodraft/legal-feed/internal/models"
)

// SaveUser сохраняет нового пользователя в базу данных.
func (s *Storage) SaveUser(ctx context.Context, user models.User) error {
	const op = "storage.SaveUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (id, email, password_hash, full_name, phone_number,
			      subscription_plan, trial_start_date, trial_end_date, subscription_active,
			      plan_2_cases_used, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	if _, err := s.DB.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, nullableString(user.PhoneNumber),
		user.SubscriptionPlan, user.TrialStartDate, user.TrialEndDate, user.SubscriptionActive,
		user.Plan2CasesUsed, user.CreatedAt, user.UpdatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUser возвращает пользователя по его идентификатору.
func (s *Storage) GetUser(ctx context.Context, userID string) (*models.User, error) {
	const op = "storage.GetUser"
	return s.getUserBy(ctx, op, `id = $1`, userID)
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	return s.getUserBy(ctx, op, `email = $1`, email)
}

func (s *Storage) getUserBy(ctx context.Context, op, where string, arg any) (*models.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, password_hash, full_name, phone_number, subscription_plan,
			      trial_start_date, trial_end_date, subscription_active, plan_2_cases_used,
			      created_at, updated_at
			  FROM users
			  WHERE ` + where
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, arg)

	var phoneNumber sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &phoneNumber,
		&u.SubscriptionPlan, &u.TrialStartDate, &u.TrialEndDate, &u.SubscriptionActive,
		&u.Plan2CasesUsed, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if phoneNumber.Valid {
		u.PhoneNumber = phoneNumber.String
	}
	return u, nil
}

// SetSubscriptionActive выставляет признак активной подписки пользователя.
// Используется политикой доступа для ленивого гашения истёкшего пробного периода.
func (s *Storage) SetSubscriptionActive(ctx context.Context, userID string, active bool) error {
	const op = "storage.SetSubscriptionActive"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET subscription_active = $1, updated_at = now()
			  WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, active, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
