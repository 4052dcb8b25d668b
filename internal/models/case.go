package models

import "time"

// Case представляет судебное дело в ленте сервиса.
// Поля ShortSummary, MediumSummary и DetailedAnalysis заполняются
// AI-оркестратором; лимиты слов (50/150/400) задаются текстом промпта
// и хранилищем не проверяются.
type Case struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Citation         string    `json:"citation"`
	Court            string    `json:"court"`
	Date             time.Time `json:"date"`
	Section          string    `json:"section"`
	FullText         string    `json:"full_text"`
	ShortSummary     *string   `json:"short_summary"`
	MediumSummary    *string   `json:"medium_summary"`
	DetailedAnalysis *string   `json:"detailed_analysis"`
	Tags             []string  `json:"tags"`
	Outcome          string    `json:"outcome"` // "For Assessee", "For Revenue" или свободный текст
	AIGenerated      bool      `json:"ai_generated"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CaseCreateInput используется для приёма данных из JSON-запроса
// на создание дела авторизованным пользователем.
type CaseCreateInput struct {
	Title    string `json:"title" validate:"required"`
	Citation string `json:"citation"`
	Court    string `json:"court" validate:"required"`
	Date     string `json:"date" validate:"required"` // ISO-8601, например 2024-01-01T00:00:00Z
	Section  string `json:"section"`
	FullText string `json:"full_text" validate:"required"`
}

// CaseImportInput используется для приёма одного элемента пакетного импорта.
// Дата приходит строкой и парсится отдельно для каждого элемента.
type CaseImportInput struct {
	Title   string `json:"title" validate:"required"`
	Court   string `json:"court"`
	Date    string `json:"date" validate:"required"`
	Section string `json:"section"`
	Text    string `json:"text"`
}

// AISummaryFields содержит поля дела, заполняемые AI-оркестратором.
type AISummaryFields struct {
	ShortSummary     string   `json:"short_summary"`
	MediumSummary    string   `json:"medium_summary"`
	DetailedAnalysis string   `json:"detailed_analysis"`
	Tags             []string `json:"tags"`
	Outcome          string   `json:"outcome"`
}
