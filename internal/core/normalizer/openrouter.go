package normalizer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"noshnurture/internal/infrastructure/config"
	"noshnurture/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// OpenRouter 透過 OpenRouter 聊天模型做語意正規化
type OpenRouter struct {
	config config.OpenRouterConfig
	client *resty.Client
}

// NewOpenRouter 創建 OpenRouter 正規化器
func NewOpenRouter(cfg config.OpenRouterConfig) *OpenRouter {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("HTTP-Referer", "https://noshnurture.app").
		SetHeader("X-Title", "NoshNurture")

	return &OpenRouter{
		config: cfg,
		client: client,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Normalize 請模型回傳單一標準食材名稱
func (o *OpenRouter) Normalize(ctx context.Context, raw string, _ Options) (string, error) {
	req := chatRequest{
		Model: o.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: normalizePrompt},
			{Role: "user", Content: raw},
		},
		MaxTokens:   o.config.MaxTokens,
		Temperature: 0,
	}

	start := time.Now()
	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		common.LogNormalizerCall("openrouter", time.Since(start), err)
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		err := fmt.Errorf("OpenRouter API returned status %d: %s", resp.StatusCode(), truncate(resp.String(), 200))
		common.LogNormalizerCall("openrouter", time.Since(start), err)
		return "", err
	}

	var result chatResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenRouter response")
	}

	common.LogNormalizerCall("openrouter", time.Since(start), nil)
	name := parseCanonical(result.Choices[0].Message.Content)
	common.LogDebug("OpenRouter 正規化結果", zap.String("raw", raw), zap.String("canonical", name))
	return name, nil
}

const normalizePrompt = `You map grocery product names to a generic ingredient name.
Reply with JSON only: {"canonical":"<name>"}.
Rules: lowercase, singular, no brand, no quantity, no packaging words.
Examples: "Amul Fresh Milk 1L" -> {"canonical":"milk"}; "Tata Sampann Chana Dal 500g" -> {"canonical":"lentils"}.
If the product is not food, reply {"canonical":""}.`

// parseCanonical 接受 JSON 或純文字回覆
func parseCanonical(content string) string {
	var payload struct {
		Canonical string `json:"canonical"`
	}
	if err := common.ParseJSON(common.ExtractJSONObject(content), &payload); err == nil {
		return common.CleanName(payload.Canonical)
	}

	line := strings.TrimSpace(content)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return common.CleanName(strings.Trim(line, "\"'`."))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
