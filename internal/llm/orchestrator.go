package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/advodraft/legal-feed/internal/lib/sl"
	"github.com/advodraft/legal-feed/internal/models"
)

// Префиксные срезы текста дела для каждого промпта, в символах.
const (
	shortPromptTextLimit    = 2000
	mediumPromptTextLimit   = 3000
	detailedPromptTextLimit = 5000
	tagsPromptTextLimit     = 1500
	outcomePromptTextLimit  = 2000
)

// Деградированные значения: возвращаются целиком, если любой из шагов
// генерации упал — частичные результаты наружу не отдаются.
const (
	SummaryFailedPlaceholder = "AI summary generation failed"
	OutcomePendingLabel      = "Analysis Pending"
	DraftFailedPlaceholder   = "AI draft generation failed. Please try again later."
)

const summarySystemMessage = "You are an expert legal analyst specializing in GST and Income Tax law. " +
	"Generate precise, professional case summaries."

const draftSystemMessage = "You are an expert legal drafting assistant. " +
	"Create professional, well-structured legal documents."

const shortPromptTemplate = `Analyze this legal case and provide a SHORT SUMMARY in exactly 50 words or less:

Case Title: %s
Case Text: %s...

Focus on: Key legal issue, court decision, and impact. Be precise and professional.`

const mediumPromptTemplate = `Analyze this legal case and provide a MEDIUM SUMMARY in exactly 150 words or less:

Case Title: %s
Case Text: %s...

Include: Legal issue, facts, court's reasoning, decision, and implications. Be comprehensive yet concise.`

const detailedPromptTemplate = `Analyze this legal case and provide a DETAILED ANALYSIS in exactly 400 words or less:

Case Title: %s
Case Text: %s...

Include: Background, legal issues, detailed facts, court's analysis, reasoning, decision, precedents cited, and future implications.`

const tagsPromptTemplate = `Based on this legal case, provide exactly 3-5 relevant tags as a comma-separated list:

Case Title: %s
Case Text: %s...

Examples: ITC, Penalty, Input Tax Credit, CGST, Appeals, etc.
Respond with ONLY the comma-separated tags, no additional text.`

const outcomePromptTemplate = `Determine the outcome of this legal case. Respond with EXACTLY one of these phrases:
"For Assessee" OR "For Revenue"

Case Title: %s
Case Text: %s...

Respond with ONLY the outcome phrase, no additional text.`

const draftPromptTemplate = `Based on this case summary, generate a professional legal %s draft:

Case Summary: %s

Requirements:
1. Use formal legal language and structure
2. Include proper legal citations format
3. Keep it concise but comprehensive (300-500 words)
4. Include relevant legal provisions
5. Maintain professional tone throughout

Generate a complete %s draft:`

// Completer описывает интерфейс клиента LLM-провайдера.
type Completer interface {
	Complete(ctx context.Context, sessionID, systemMessage, userMessage string) (string, error)
}

// Orchestrator выполняет фиксированные последовательности промптов
// и преобразует ответы (или отказы) провайдера в поля дела и черновики.
type Orchestrator struct {
	client Completer
	log    *slog.Logger
}

// NewOrchestrator создает новый Orchestrator с переданными клиентом и логгером.
func NewOrchestrator(client Completer, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		client: client,
		log:    log,
	}
}

// Summarize последовательно выполняет пять промптов по тексту дела:
// краткое, среднее и подробное содержание, теги и исход.
//
// Отказ любого шага отбрасывает уже полученные результаты и возвращает
// деградированный ответ целиком: контракт "AI-эндпоинты наружу не падают".
func (o *Orchestrator) Summarize(ctx context.Context, caseText, caseTitle string) models.AISummaryFields {
	const op = "llm.Summarize"
	sessionID := "case_summary_" + uuid.NewString()

	shortSummary, err := o.client.Complete(ctx, sessionID, summarySystemMessage,
		fmt.Sprintf(shortPromptTemplate, caseTitle, truncateRunes(caseText, shortPromptTextLimit)))
	if err != nil {
		return o.degraded(op, "short summary", err)
	}

	mediumSummary, err := o.client.Complete(ctx, sessionID, summarySystemMessage,
		fmt.Sprintf(mediumPromptTemplate, caseTitle, truncateRunes(caseText, mediumPromptTextLimit)))
	if err != nil {
		return o.degraded(op, "medium summary", err)
	}

	detailedAnalysis, err := o.client.Complete(ctx, sessionID, summarySystemMessage,
		fmt.Sprintf(detailedPromptTemplate, caseTitle, truncateRunes(caseText, detailedPromptTextLimit)))
	if err != nil {
		return o.degraded(op, "detailed analysis", err)
	}

	tagsResponse, err := o.client.Complete(ctx, sessionID, summarySystemMessage,
		fmt.Sprintf(tagsPromptTemplate, caseTitle, truncateRunes(caseText, tagsPromptTextLimit)))
	if err != nil {
		return o.degraded(op, "tags", err)
	}
	tags := splitTags(tagsResponse)

	outcome, err := o.client.Complete(ctx, sessionID, summarySystemMessage,
		fmt.Sprintf(outcomePromptTemplate, caseTitle, truncateRunes(caseText, outcomePromptTextLimit)))
	if err != nil {
		return o.degraded(op, "outcome", err)
	}

	return models.AISummaryFields{
		ShortSummary:     strings.TrimSpace(shortSummary),
		MediumSummary:    strings.TrimSpace(mediumSummary),
		DetailedAnalysis: strings.TrimSpace(detailedAnalysis),
		Tags:             tags,
		Outcome:          strings.TrimSpace(outcome),
	}
}

// Draft генерирует черновик юридического документа указанного типа
// по краткому содержанию дела. При любой ошибке провайдера возвращается
// фиксированная заглушка вместо ошибки.
func (o *Orchestrator) Draft(ctx context.Context, summaryText, draftType string) string {
	const op = "llm.Draft"
	sessionID := "ai_draft_" + uuid.NewString()

	draft, err := o.client.Complete(ctx, sessionID, draftSystemMessage,
		fmt.Sprintf(draftPromptTemplate, draftType, summaryText, draftType))
	if err != nil {
		o.log.Error("AI draft generation failed", slog.String("op", op), sl.Err(err))
		return DraftFailedPlaceholder
	}
	return strings.TrimSpace(draft)
}

func (o *Orchestrator) degraded(op, step string, err error) models.AISummaryFields {
	o.log.Error("AI summary generation failed",
		slog.String("op", op), slog.String("step", step), sl.Err(err))
	return models.AISummaryFields{
		ShortSummary:     SummaryFailedPlaceholder,
		MediumSummary:    SummaryFailedPlaceholder,
		DetailedAnalysis: SummaryFailedPlaceholder,
		Tags:             []string{"Error"},
		Outcome:          OutcomePendingLabel,
	}
}

// splitTags разбирает ответ модели как список тегов через запятую,
// обрезая пробелы вокруг каждого. Количество тегов не проверяется.
func splitTags(response string) []string {
	parts := strings.Split(response, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tags = append(tags, strings.TrimSpace(p))
	}
	return tags
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes)
}
