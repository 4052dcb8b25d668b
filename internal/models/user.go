// Package models содержит доменные структуры сервиса: пользователей,
// судебные дела и подписки. Структуры используются в бизнес-логике
// и при работе с хранилищем.
package models

import "time"

// Тарифные планы пользователя. FreeTrial выдаётся при регистрации на 7 дней.
const (
	PlanFreeTrial = "free_trial"
	PlanOne       = "plan_1"
	PlanTwo       = "plan_2"
	PlanThree     = "plan_3"
)

// User представляет зарегистрированного пользователя сервиса.
type User struct {
	ID                 string    // Уникальный идентификатор пользователя (uuid)
	Email              string    // Электронная почта (уникальная)
	PasswordHash       string    // bcrypt-хэш пароля, наружу не отдаётся
	FullName           string    // Полное имя
	PhoneNumber        string    // Телефон (опционально)
	SubscriptionPlan   string    // Тарифный план: free_trial, plan_1, plan_2, plan_3
	TrialStartDate     time.Time // Начало пробного периода
	TrialEndDate       time.Time // Конец пробного периода (start + 7 дней)
	SubscriptionActive bool      // Признак активной подписки
	Plan2CasesUsed     int       // Счётчик полных дел для plan_2 (заполняется биллингом)
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
