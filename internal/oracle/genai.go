package oracle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/chat/entity"
)

// NoAnswer is returned by Generate-style calls when the model produced no text.
const NoAnswer = "I'm sorry, but I don't have a response for that at the moment."

var ErrMissingAPIKey = errors.New("gemini api key is required")

type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini endpoint (proxies, tests).
	BaseURL string
}

// ConfigFromEnv reads GEMINI_* variables.
func ConfigFromEnv() Config {
	model := strings.TrimSpace(os.Getenv("GEMINI_MODEL"))
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return Config{
		APIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Model:   model,
		BaseURL: strings.TrimSpace(os.Getenv("GEMINI_BASE_URL")),
	}
}

// GenAI is the intent oracle backed by the Gemini API.
type GenAI struct {
	client *genai.Client
	model  string
	logger *zap.SugaredLogger
}

func NewGenAI(ctx context.Context, cfg Config, logger *zap.SugaredLogger) (*GenAI, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GenAI{client: client, model: cfg.Model, logger: logger}, nil
}

func (g *GenAI) complete(ctx context.Context, call, prompt string, maxTokens int32) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: maxTokens,
	})
	if err != nil {
		g.logger.Warnw("gemini call failed", "call", call, "err", err)
		return "", fmt.Errorf("gemini %s: %w", call, err)
	}
	text := strings.TrimSpace(resp.Text())
	g.logger.Debugw("gemini call", "call", call, "chars", len(text))
	return text, nil
}

// Classify asks the model for the message category.
func (g *GenAI) Classify(ctx context.Context, history []*entity.Entry, message string) (Category, error) {
	raw, err := g.complete(ctx, "classify", classifyPrompt(history, message), classifyTokens)
	if err != nil {
		return CategoryUnrecognized, err
	}
	return ParseCategory(raw), nil
}

// Generate produces a free-form reply to a general inquiry.
func (g *GenAI) Generate(ctx context.Context, history []*entity.Entry, message string) (string, error) {
	return g.orNoAnswer(g.complete(ctx, "generate", generatePrompt(history, message), replyTokens))
}

// FollowUp returns the next complaint follow-up question or the termination sentence.
func (g *GenAI) FollowUp(ctx context.Context, complaints []string, message string) (string, error) {
	return g.orNoAnswer(g.complete(ctx, "follow_up", followUpPrompt(complaints, message), replyTokens))
}

// EvaluateVitalSign comments on vital-sign readings.
func (g *GenAI) EvaluateVitalSign(ctx context.Context, message string) (string, error) {
	return g.orNoAnswer(g.complete(ctx, "vital_sign", vitalSignPrompt(message), replyTokens))
}

func (g *GenAI) orNoAnswer(text string, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if text == "" {
		return NoAnswer, nil
	}
	return text, nil
}
