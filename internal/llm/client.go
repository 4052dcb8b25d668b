// Package llm реализует клиент внешнего LLM-провайдера и оркестратор
// промптов для генерации кратких содержаний, тегов, исходов и черновиков
// юридических документов.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/advodraft/legal-feed/internal/config"
)

var llmRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "llm_requests_total",
	Help: "Количество запросов к LLM-провайдеру по статусу.",
}, []string{"status"})

// Client вызывает chat/completions API провайдера. Повторов нет:
// неуспешный вызов сразу возвращается ошибкой вызывающему.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	User     string        `json:"user,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

type chatError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// NewClient создаёт клиент провайдера по настройкам из конфига.
func NewClient(cfg config.LLMProvider) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.TimeoutLLM},
	}
}

// Complete отправляет один промпт провайдеру и возвращает текст ответа.
// sessionID идентифицирует свежий диалоговый контекст: история сообщений
// между вызовами не передаётся.
func (c *Client) Complete(ctx context.Context, sessionID, systemMessage, userMessage string) (string, error) {
	const op = "llm.Complete"

	if c.apiKey == "" {
		return "", fmt.Errorf("%s: api key is not set", op)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: userMessage},
		},
		User: sessionID,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		llmRequestsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		llmRequestsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode != http.StatusOK {
		llmRequestsTotal.WithLabelValues("error").Inc()
		var apiErr chatError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("%s: provider returned %d: %s", op, resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("%s: provider returned %d", op, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		llmRequestsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if len(parsed.Choices) == 0 {
		llmRequestsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%s: empty response from provider", op)
	}

	llmRequestsTotal.WithLabelValues("ok").Inc()
	return parsed.Choices[0].Message.Content, nil
}
