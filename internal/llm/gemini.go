// Package llm generates recommendation text with Gemini models.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"google.golang.org/genai"

	"movie-discovery-llm-recommender/internal/config"
	"movie-discovery-llm-recommender/internal/metrics"
	"movie-discovery-llm-recommender/internal/resilience"
)

const (
	systemInstruction = "You are an expert movie and series recommender. " +
		"You answer only with titles, one per line, exactly as they are known in catalogs."
	temperature     float32 = 0.8
	maxOutputTokens int32   = 500

	// Rough prompt cost used for the budget check before the real usage is known.
	estimatedTokensPerCall int32 = 1500
	budgetWindow                 = 24 * time.Hour
)

// ErrEmptyResponse is returned when no model produced any text.
var ErrEmptyResponse = errors.New("no content generated")

// contentGenerator is the part of *genai.Models the generator uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator sends prompts to a prioritized list of models and returns the
// first non-empty answer.
type Generator struct {
	models  contentGenerator
	names   []string
	budget  *TokenBudget
	breaker *gobreaker.CircuitBreaker[string]
	timeout time.Duration
	retry   time.Duration
}

// New creates a Gemini client from cfg.
func New(ctx context.Context, cfg config.LLMConfig) (*Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return newGenerator(client.Models, cfg), nil
}

func newGenerator(models contentGenerator, cfg config.LLMConfig) *Generator {
	return &Generator{
		models:  models,
		names:   cfg.Models,
		budget:  NewTokenBudget(budgetWindow, cfg.TokenBudget),
		breaker: resilience.NewBreaker[string]("gemini", resilience.BreakerSettings{}),
		timeout: cfg.Timeout,
		retry:   time.Second,
	}
}

// Generate returns the text produced for prompt by the first model that
// answers. Each model attempt runs under the configured timeout.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := g.budget.Check(estimatedTokensPerCall); err != nil {
		return "", err
	}
	return g.breaker.Execute(func() (string, error) {
		return g.generate(ctx, prompt)
	})
}

func (g *Generator) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for i, model := range g.names {
		if i > 0 && g.retry > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(g.retry):
			}
		}
		text, err := g.tryModel(ctx, model, prompt)
		metrics.RecordLLMRequest(model, err)
		if err != nil {
			slog.Warn("text generation failed", "model", model, "error", err)
			lastErr = err
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}
		slog.Info("text generated", "model", model, "chars", len(text))
		return text, nil
	}
	if lastErr == nil {
		lastErr = ErrEmptyResponse
	}
	return "", fmt.Errorf("all models failed %v: %w", g.names, lastErr)
}

func (g *Generator) tryModel(ctx context.Context, model, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.models.GenerateContent(ctx, model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
			Temperature:       genai.Ptr(temperature),
			MaxOutputTokens:   maxOutputTokens,
		})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if resp.UsageMetadata != nil {
		g.budget.Record(resp.UsageMetadata.TotalTokenCount)
		metrics.LLMTokens.Add(float64(resp.UsageMetadata.TotalTokenCount))
	}

	text := responseText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}
