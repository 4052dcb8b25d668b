package me

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/advodraft/legal-feed/internal/http/middlewarectx"
	"github.com/advodraft/legal-feed/internal/models"
)

// MockAccessService реализует интерфейс me.AccessService
type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) IsActive(ctx context.Context, user *models.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func TestMeHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		user           *models.User
		setupMock      func(*MockAccessService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "активная подписка",
			user: &models.User{
				ID:               "u1",
				Email:            "adv@example.com",
				FullName:         "Adv Kumar",
				SubscriptionPlan: models.PlanTwo,
				Plan2CasesUsed:   1,
			},
			setupMock: func(m *MockAccessService) {
				m.On("IsActive", mock.Anything, mock.Anything).Return(true, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"subscription_active":true`,
		},
		{
			name: "истекший пробный период",
			user: &models.User{
				ID:               "u2",
				SubscriptionPlan: models.PlanFreeTrial,
			},
			setupMock: func(m *MockAccessService) {
				m.On("IsActive", mock.Anything, mock.Anything).Return(false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"subscription_active":false`,
		},
		{
			name:           "пользователь отсутствует в контексте",
			user:           nil,
			setupMock:      func(_ *MockAccessService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name: "ошибка проверки статуса",
			user: &models.User{ID: "u3"},
			setupMock: func(m *MockAccessService) {
				m.On("IsActive", mock.Anything, mock.Anything).Return(false, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"internal service error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAccess := new(MockAccessService)
			tt.setupMock(mockAccess)

			handler := New(logger, mockAccess)

			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.user != nil {
				ctx := context.WithValue(req.Context(), middlewarectx.UserKey, tt.user)
				req = req.WithContext(ctx)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockAccess.AssertExpectations(t)
		})
	}
}
