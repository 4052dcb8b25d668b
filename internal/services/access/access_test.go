package access

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/advodraft/legal-feed/internal/models"
)

// MockUserStatusRepository реализует интерфейс access.UserStatusRepository
type MockUserStatusRepository struct {
	mock.Mock
}

func (m *MockUserStatusRepository) SetSubscriptionActive(ctx context.Context, userID string, active bool) error {
	args := m.Called(ctx, userID, active)
	return args.Error(0)
}

func newTestService(repo *MockUserStatusRepository, now time.Time) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := New(repo, logger)
	svc.now = func() time.Time { return now }
	return svc
}

func TestIsActive(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		user       models.User
		setupMock  func(*MockUserStatusRepository)
		want       bool
		wantErr    bool
	}{
		{
			name: "пробный период ещё идёт",
			user: models.User{
				ID:                 "u1",
				SubscriptionPlan:   models.PlanFreeTrial,
				TrialEndDate:       now.Add(24 * time.Hour),
				SubscriptionActive: true,
			},
			setupMock: func(_ *MockUserStatusRepository) {},
			want:      true,
		},
		{
			name: "пробный период истёк, статус гасится в хранилище",
			user: models.User{
				ID:                 "u2",
				SubscriptionPlan:   models.PlanFreeTrial,
				TrialEndDate:       now.Add(-time.Hour),
				SubscriptionActive: true,
			},
			setupMock: func(m *MockUserStatusRepository) {
				m.On("SetSubscriptionActive", mock.Anything, "u2", false).Return(nil)
			},
			want: false,
		},
		{
			name: "платный план возвращает сохранённый флаг",
			user: models.User{
				ID:                 "u3",
				SubscriptionPlan:   models.PlanTwo,
				TrialEndDate:       now.Add(-240 * time.Hour),
				SubscriptionActive: true,
			},
			setupMock: func(_ *MockUserStatusRepository) {},
			want:      true,
		},
		{
			name: "платный план с погашенной подпиской",
			user: models.User{
				ID:                 "u4",
				SubscriptionPlan:   models.PlanOne,
				SubscriptionActive: false,
			},
			setupMock: func(_ *MockUserStatusRepository) {},
			want:      false,
		},
		{
			name: "ошибка хранилища при гашении статуса",
			user: models.User{
				ID:                 "u5",
				SubscriptionPlan:   models.PlanFreeTrial,
				TrialEndDate:       now.Add(-time.Hour),
				SubscriptionActive: true,
			},
			setupMock: func(m *MockUserStatusRepository) {
				m.On("SetSubscriptionActive", mock.Anything, "u5", false).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserStatusRepository)
			tt.setupMock(repo)
			svc := newTestService(repo, now)

			user := tt.user
			got, err := svc.IsActive(context.Background(), &user)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestIsActive_ExpiredTrialUpdatesUserInMemory(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	repo := new(MockUserStatusRepository)
	repo.On("SetSubscriptionActive", mock.Anything, "u1", false).Return(nil)
	svc := newTestService(repo, now)

	user := &models.User{
		ID:                 "u1",
		SubscriptionPlan:   models.PlanFreeTrial,
		TrialEndDate:       now.Add(-time.Minute),
		SubscriptionActive: true,
	}

	active, err := svc.IsActive(context.Background(), user)
	require.NoError(t, err)
	assert.False(t, active)
	assert.False(t, user.SubscriptionActive)
}

func TestRedact(t *testing.T) {
	svc := newTestService(new(MockUserStatusRepository), time.Now())
	fullText := "full text of the decision"

	tests := []struct {
		name     string
		plan     string
		rank     int
		wantText string
	}{
		{name: "free_trial скрывает текст на любой позиции", plan: models.PlanFreeTrial, rank: 0, wantText: ""},
		{name: "plan_1 скрывает текст на любой позиции", plan: models.PlanOne, rank: 1, wantText: ""},
		{name: "plan_2 первая позиция с текстом", plan: models.PlanTwo, rank: 0, wantText: fullText},
		{name: "plan_2 вторая позиция с текстом", plan: models.PlanTwo, rank: 1, wantText: fullText},
		{name: "plan_2 третья позиция без текста", plan: models.PlanTwo, rank: 2, wantText: ""},
		{name: "plan_2 дальние позиции без текста", plan: models.PlanTwo, rank: 49, wantText: ""},
		{name: "plan_3 без ограничений", plan: models.PlanThree, rank: 49, wantText: fullText},
		{name: "неизвестный план скрывает текст", plan: "plan_99", rank: 0, wantText: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := models.Case{ID: "c1", FullText: fullText}
			got := svc.Redact(c, tt.plan, tt.rank)
			assert.Equal(t, tt.wantText, got.FullText)
			// Остальные поля не затрагиваются
			assert.Equal(t, "c1", got.ID)
		})
	}
}

func TestAllowDraft(t *testing.T) {
	svc := newTestService(new(MockUserStatusRepository), time.Now())

	assert.False(t, svc.AllowDraft(models.PlanFreeTrial))
	assert.False(t, svc.AllowDraft(models.PlanOne))
	assert.True(t, svc.AllowDraft(models.PlanTwo))
	assert.True(t, svc.AllowDraft(models.PlanThree))
	assert.False(t, svc.AllowDraft(""))
}
