package draft

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/advodraft/legal-feed/internal/http/middlewarectx"
	"github.com/advodraft/legal-feed/internal/models"
)

// MockDrafter реализует интерфейс draft.Drafter
type MockDrafter struct {
	mock.Mock
}

func (m *MockDrafter) Draft(ctx context.Context, summaryText, draftType string) string {
	args := m.Called(ctx, summaryText, draftType)
	return args.String(0)
}

// planAccess разрешает черновики по списку тарифов.
type planAccess struct {
	allowed map[string]bool
}

func (a planAccess) AllowDraft(plan string) bool { return a.allowed[plan] }

func TestDraftHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	access := planAccess{allowed: map[string]bool{
		models.PlanTwo:   true,
		models.PlanThree: true,
	}}

	tests := []struct {
		name           string
		user           *models.User
		body           string
		setupMock      func(*MockDrafter)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная генерация черновика",
			user: &models.User{ID: "u1", SubscriptionPlan: models.PlanTwo},
			body: `{"summary_text":"case summary","draft_type":"petition"}`,
			setupMock: func(m *MockDrafter) {
				m.On("Draft", mock.Anything, "case summary", "petition").Return("draft text")
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"draft":"draft text"`,
		},
		{
			name: "тип черновика по умолчанию",
			user: &models.User{ID: "u1", SubscriptionPlan: models.PlanThree},
			body: `{"summary_text":"case summary"}`,
			setupMock: func(m *MockDrafter) {
				m.On("Draft", mock.Anything, "case summary", "reply").Return("draft text")
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"draft_type":"reply"`,
		},
		{
			name:           "тариф без доступа к черновикам",
			user:           &models.User{ID: "u2", SubscriptionPlan: models.PlanFreeTrial},
			body:           `{"summary_text":"case summary"}`,
			setupMock:      func(_ *MockDrafter) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"error":"AI Draft Assistant is available for Plan 2 and Plan 3 subscribers only"`,
		},
		{
			name:           "пользователь отсутствует в контексте",
			user:           nil,
			body:           `{"summary_text":"case summary"}`,
			setupMock:      func(_ *MockDrafter) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:           "пустое содержание отклоняется валидатором",
			user:           &models.User{ID: "u1", SubscriptionPlan: models.PlanTwo},
			body:           `{"draft_type":"reply"}`,
			setupMock:      func(_ *MockDrafter) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field SummaryText is a required field`,
		},
		{
			name: "заглушка при отказе провайдера",
			user: &models.User{ID: "u1", SubscriptionPlan: models.PlanTwo},
			body: `{"summary_text":"case summary"}`,
			setupMock: func(m *MockDrafter) {
				m.On("Draft", mock.Anything, "case summary", "reply").
					Return("AI draft generation failed. Please try again later.")
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"draft":"AI draft generation failed. Please try again later."`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDrafter := new(MockDrafter)
			tt.setupMock(mockDrafter)

			handler := New(logger, mockDrafter, access)

			req := httptest.NewRequest(http.MethodPost, "/ai/generate-draft", strings.NewReader(tt.body))
			if tt.user != nil {
				ctx := context.WithValue(req.Context(), middlewarectx.UserKey, tt.user)
				req = req.WithContext(ctx)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockDrafter.AssertExpectations(t)
		})
	}
}
