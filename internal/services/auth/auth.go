// Package auth содержит логику бизнес-уровня для регистрации и входа пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/advodraft/legal-feed/internal/lib/jwt"
	"github.com/advodraft/legal-feed/internal/lib/password"
	"github.com/advodraft/legal-feed/internal/models"
	"github.com/advodraft/legal-feed/internal/storage/repository"
)

// Длительность пробного периода, выдаваемого при регистрации.
const trialPeriod = 7 * 24 * time.Hour

// Ошибки бизнес-уровня аутентификации.
var (
	// ErrEmailAlreadyRegistered — пользователь с таким email уже существует.
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	// ErrInvalidCredentials — пара email/пароль не подошла.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// SaveUser сохраняет нового пользователя.
	SaveUser(ctx context.Context, user models.User) error
	// GetUserByEmail возвращает пользователя по email
	// или repository.ErrUserNotFound, если такого нет.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service отвечает за регистрацию и авторизацию пользователей.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля и пробным
// периодом в 7 дней, затем выпускает токен сессии.
func (s *Service) Register(ctx context.Context, email, rawPassword, fullName, phoneNumber string) (*models.User, string, error) {
	const op = "auth.Register"

	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, "", ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:                 uuid.NewString(),
		Email:              email,
		PasswordHash:       hashed,
		FullName:           fullName,
		PhoneNumber:        phoneNumber,
		SubscriptionPlan:   models.PlanFreeTrial,
		TrialStartDate:     now,
		TrialEndDate:       now.Add(trialPeriod),
		SubscriptionActive: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.users.SaveUser(ctx, user); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("registered new user", slog.String("user_id", user.ID))

	token, err := s.jwtMaker.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return &user, token, nil
}

// Login проверяет пароль пользователя и выпускает токен сессии.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return user, token, nil
}
