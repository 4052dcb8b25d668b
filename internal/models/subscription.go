package models

import "time"

// Subscription описывает оплаченную подписку пользователя.
// Таблица заполняется биллингом; API пока не читает и не изменяет
// эти записи, модель объявлена как точка расширения.
type Subscription struct {
	ID        string
	UserID    string
	PlanType  string // plan_1, plan_2, plan_3
	Status    string // active, cancelled, expired
	StartDate time.Time
	EndDate   time.Time
	PaymentID *string
	Amount    float64
	Currency  string
	CreatedAt time.Time
}
