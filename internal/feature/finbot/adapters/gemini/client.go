// Package gemini はGoogle Gemini APIを使用したFinBotの応答クライアントを提供します。
package gemini

import (
	"context"
	"fmt"

	"fin_backend/internal/feature/finbot/usecase"

	"google.golang.org/genai"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
	// systemPreamble は全てのプロンプトの前に付ける指示です。
	systemPreamble = "You are FinBot, a concise personal-finance assistant. Answer in at most five sentences and do not give individualized investment advice.\n\nUser: "
)

// GeminiResponder はGemini APIでFinBotの応答を生成します。
type GeminiResponder struct {
	client *genai.Client
	model  string
}

// GeminiResponderがResponderを実装していることをコンパイル時に検証します。
var _ usecase.Responder = (*GeminiResponder)(nil)

// NewGeminiResponder はGeminiResponderを生成します。
// apiKeyが空の場合はADCと環境変数（GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION）を使います。
func NewGeminiResponder(ctx context.Context, apiKey, model string) (*GeminiResponder, error) {
	var cfg *genai.ClientConfig
	if apiKey != "" {
		cfg = &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiResponder{client: client, model: model}, nil
}

// Respond はプロンプトに対する応答テキストを生成します。
func (g *GeminiResponder) Respond(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(systemPreamble+prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return resp.Text(), nil
}
