package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advodraft/legal-feed/internal/models"
)

func TestStorage_SaveUserAndGet(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	want := GetTestUser()
	require.NoError(t, storage.SaveUser(context.Background(), want))

	got, err := storage.GetUser(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.Email, got.Email)
	assert.Equal(t, want.PasswordHash, got.PasswordHash)
	assert.Equal(t, want.FullName, got.FullName)
	assert.Equal(t, want.PhoneNumber, got.PhoneNumber)
	assert.Equal(t, want.SubscriptionPlan, got.SubscriptionPlan)
	assert.True(t, got.SubscriptionActive)
	assert.True(t, want.TrialEndDate.Equal(got.TrialEndDate))

	byEmail, err := storage.GetUserByEmail(context.Background(), want.Email)
	require.NoError(t, err)
	assert.Equal(t, want.ID, byEmail.ID)
}

func TestStorage_GetUser_NotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	got, err := storage.GetUser(context.Background(), uuid.New().String())
	require.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, got)
}

func TestStorage_SaveUser_DuplicateEmail(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	first := GetTestUser()
	require.NoError(t, storage.SaveUser(context.Background(), first))

	second := GetTestUser()
	second.ID = uuid.New().String() // тот же email, другой id
	require.Error(t, storage.SaveUser(context.Background(), second))
}

func TestStorage_SetSubscriptionActive(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		wantErr bool
		setup   func(t *testing.T, factory *TestDataFactory) string
	}{
		{
			name:    "successful deactivate subscription",
			wantErr: false,
			setup: func(t *testing.T, factory *TestDataFactory) string {
				id := uuid.New().String()
				factory.CreateUser(t, id, "adv@example.com", models.PlanFreeTrial, time.Now().AddDate(0, 0, -1), true)
				return id
			},
		},
		{
			name:    "deactivate non-existing user",
			wantErr: true,
			setup:   func(_ *testing.T, _ *TestDataFactory) string { return uuid.New().String() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			userID := tt.setup(t, factory)

			err := storage.SetSubscriptionActive(context.Background(), userID, false)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrUserNotFound)
				return
			}
			require.NoError(t, err)

			var active bool
			require.NoError(t, storage.DB.QueryRow(
				"SELECT subscription_active FROM users WHERE id = $1", userID).Scan(&active))
			assert.False(t, active)
		})
	}
}

func TestStorage_CreateCaseAndGet(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	now := time.Now().UTC().Truncate(time.Microsecond)
	want := models.Case{
		ID:        uuid.New().String(),
		Title:     "Acme v. Commissioner",
		Citation:  "2024 SCC 1",
		Court:     "Supreme Court",
		Date:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Section:   "Section 16",
		FullText:  "full text",
		Tags:      []string{},
		Outcome:   "Pending Analysis",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, storage.CreateCase(context.Background(), want))

	got, err := storage.GetCase(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Citation, got.Citation)
	assert.Equal(t, want.FullText, got.FullText)
	assert.Equal(t, want.Outcome, got.Outcome)
	assert.Equal(t, []string{}, got.Tags)
	assert.Nil(t, got.ShortSummary)
	assert.False(t, got.AIGenerated)
	assert.True(t, want.Date.Equal(got.Date))
}

func TestStorage_GetCase_NotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	got, err := storage.GetCase(context.Background(), uuid.New().String())
	require.ErrorIs(t, err, ErrCaseNotFound)
	assert.Nil(t, got)
}

func TestStorage_ListRecentCases(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		wantTitles []string
		setup      func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name:       "cases ordered by created_at desc",
			limit:      10,
			wantTitles: []string{"C", "B", "A"},
			setup: func(t *testing.T, factory *TestDataFactory) {
				base := time.Now().UTC().Add(-time.Hour)
				factory.CreateCase(t, "A", base)
				factory.CreateCase(t, "B", base.Add(time.Minute))
				factory.CreateCase(t, "C", base.Add(2*time.Minute))
			},
		},
		{
			name:       "limit truncates the page",
			limit:      2,
			wantTitles: []string{"C", "B"},
			setup: func(t *testing.T, factory *TestDataFactory) {
				base := time.Now().UTC().Add(-time.Hour)
				factory.CreateCase(t, "A", base)
				factory.CreateCase(t, "B", base.Add(time.Minute))
				factory.CreateCase(t, "C", base.Add(2*time.Minute))
			},
		},
		{
			name:       "empty table",
			limit:      10,
			wantTitles: []string{},
			setup:      func(_ *testing.T, _ *TestDataFactory) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			got, err := storage.ListRecentCases(context.Background(), tt.limit)
			require.NoError(t, err)

			titles := make([]string, 0, len(got))
			for _, c := range got {
				titles = append(titles, c.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestStorage_UpdateCaseAIFields(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	caseID := factory.CreateCase(t, "Acme v. Commissioner", time.Now().UTC())

	fields := models.AISummaryFields{
		ShortSummary:     "short",
		MediumSummary:    "medium",
		DetailedAnalysis: "detailed",
		Tags:             []string{"ITC", "Section 16"},
		Outcome:          "For Assessee",
	}
	require.NoError(t, storage.UpdateCaseAIFields(context.Background(), caseID, fields, time.Now().UTC()))

	got, err := storage.GetCase(context.Background(), caseID)
	require.NoError(t, err)
	require.NotNil(t, got.ShortSummary)
	assert.Equal(t, "short", *got.ShortSummary)
	require.NotNil(t, got.DetailedAnalysis)
	assert.Equal(t, "detailed", *got.DetailedAnalysis)
	assert.Equal(t, []string{"ITC", "Section 16"}, got.Tags)
	assert.Equal(t, "For Assessee", got.Outcome)
	assert.True(t, got.AIGenerated)
}

func TestStorage_UpdateCaseAIFields_NotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	err := storage.UpdateCaseAIFields(context.Background(), uuid.New().String(),
		models.AISummaryFields{Outcome: "For Assessee"}, time.Now().UTC())
	require.ErrorIs(t, err, ErrCaseNotFound)
}

func TestCheckDatabaseReady(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(t *testing.T, storage *Storage)
		wantError bool
	}{
		{
			name:      "table exists",
			setup:     func(_ *testing.T, _ *Storage) {},
			wantError: false,
		},
		{
			name: "table missing",
			setup: func(t *testing.T, storage *Storage) {
				_, err := storage.DB.Exec(`DROP TABLE IF EXISTS cases CASCADE`)
				require.NoError(t, err)
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()
			tt.setup(t, storage)

			err := storage.CheckDatabaseReady(context.Background())
			if tt.wantError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
