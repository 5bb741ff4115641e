// Package ai wraps the external generation provider behind a small client
// interface. The provider speaks the OpenAI protocol; the base URL, models
// and timeout come from configuration.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ErrGenerationFailed marks any provider-side failure: transport errors,
// non-success responses, and empty completions.
var ErrGenerationFailed = errors.New("ai generation failed")

// ErrNotConfigured is returned by every call when no API key is set.
// Callers are expected to fall back to local content.
var ErrNotConfigured = errors.New("ai provider is not configured")

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creature_ai_requests_total",
			Help: "Total number of requests to the AI provider.",
		},
		[]string{"model", "kind", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "creature_ai_request_duration_seconds",
			Help:    "Histogram of AI provider request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model", "kind"},
	)
	aiPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "creature_ai_prompt_tokens",
			Help:    "Histogram of estimated prompt token counts.",
			Buckets: prometheus.LinearBuckets(100, 100, 20),
		},
		[]string{"model"},
	)
)

// TextParams tunes a single text generation request.
type TextParams struct {
	Temperature float32
	MaxTokens   int
	JSONMode    bool
}

// Client is the interface the services talk to. Implementations never
// return partial results: a non-nil error means the caller must fall back.
type Client interface {
	// GenerateText runs a chat completion and returns the generated text.
	GenerateText(ctx context.Context, systemPrompt, userPrompt string, params TextParams) (string, error)
	// GenerateImage requests one image and returns its (ephemeral) URL.
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Config carries the provider settings.
type Config struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
	Timeout    time.Duration
}

// NewClient builds a provider client. With an empty API key a disabled
// client is returned whose calls always fail with ErrNotConfigured, which
// keeps the whole server functional on template content.
func NewClient(cfg Config, logger *zap.Logger) Client {
	if cfg.APIKey == "" {
		logger.Warn("No AI API key configured, running on template content only")
		return &disabledClient{}
	}

	clientCfg := openaigo.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	logger.Info("AI client created",
		zap.String("baseURL", cfg.BaseURL),
		zap.String("textModel", cfg.TextModel),
		zap.String("imageModel", cfg.ImageModel),
		zap.Duration("timeout", cfg.Timeout))

	return &openAIClient{
		client:     openaigo.NewClientWithConfig(clientCfg),
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		logger:     logger.Named("AIClient"),
	}
}

type openAIClient struct {
	client     *openaigo.Client
	textModel  string
	imageModel string
	logger     *zap.Logger
}

var _ Client = (*openAIClient)(nil)

func (c *openAIClient) GenerateText(ctx context.Context, systemPrompt, userPrompt string, params TextParams) (string, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		aiRequestsTotal.With(prometheus.Labels{"model": c.textModel, "kind": "text", "status": "error"}).Inc()
		return "", fmt.Errorf("%w: empty system prompt", ErrGenerationFailed)
	}

	req := openaigo.ChatCompletionRequest{
		Model: c.textModel,
		Messages: []openaigo.ChatCompletionMessage{
			{Role: openaigo.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openaigo.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	}
	if params.JSONMode {
		req.ResponseFormat = &openaigo.ChatCompletionResponseFormat{
			Type: openaigo.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	c.observePromptTokens(systemPrompt, userPrompt)

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)
	aiRequestDuration.With(prometheus.Labels{"model": c.textModel, "kind": "text"}).Observe(duration.Seconds())

	if err != nil {
		c.logger.Error("Chat completion failed", zap.Duration("duration", duration), zap.Error(err))
		aiRequestsTotal.With(prometheus.Labels{"model": c.textModel, "kind": "text", "status": "error"}).Inc()
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.logger.Warn("Chat completion returned empty response", zap.Duration("duration", duration))
		aiRequestsTotal.With(prometheus.Labels{"model": c.textModel, "kind": "text", "status": "error_empty_response"}).Inc()
		return "", fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}

	aiRequestsTotal.With(prometheus.Labels{"model": c.textModel, "kind": "text", "status": "success"}).Inc()
	text := resp.Choices[0].Message.Content
	c.logger.Debug("Chat completion succeeded",
		zap.Duration("duration", duration),
		zap.Int("responseLength", len(text)))
	return text, nil
}

func (c *openAIClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		aiRequestsTotal.With(prometheus.Labels{"model": c.imageModel, "kind": "image", "status": "error"}).Inc()
		return "", fmt.Errorf("%w: empty image prompt", ErrGenerationFailed)
	}

	start := time.Now()
	resp, err := c.client.CreateImage(ctx, openaigo.ImageRequest{
		Model:  c.imageModel,
		Prompt: prompt,
		N:      1,
	})
	duration := time.Since(start)
	aiRequestDuration.With(prometheus.Labels{"model": c.imageModel, "kind": "image"}).Observe(duration.Seconds())

	if err != nil {
		c.logger.Error("Image generation failed", zap.Duration("duration", duration), zap.Error(err))
		aiRequestsTotal.With(prometheus.Labels{"model": c.imageModel, "kind": "image", "status": "error"}).Inc()
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		c.logger.Warn("Image generation returned no URL", zap.Duration("duration", duration))
		aiRequestsTotal.With(prometheus.Labels{"model": c.imageModel, "kind": "image", "status": "error_empty_response"}).Inc()
		return "", fmt.Errorf("%w: no image URL in response", ErrGenerationFailed)
	}

	aiRequestsTotal.With(prometheus.Labels{"model": c.imageModel, "kind": "image", "status": "success"}).Inc()
	return resp.Data[0].URL, nil
}

// observePromptTokens records an estimated prompt token count. Estimation
// errors only skip the metric.
func (c *openAIClient) observePromptTokens(systemPrompt, userPrompt string) {
	tke, err := tiktoken.EncodingForModel(c.textModel)
	if err != nil {
		tke, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return
		}
	}
	count := len(tke.Encode(systemPrompt, nil, nil)) + len(tke.Encode(userPrompt, nil, nil))
	aiPromptTokens.With(prometheus.Labels{"model": c.textModel}).Observe(float64(count))
}

type disabledClient struct{}

var _ Client = (*disabledClient)(nil)

func (*disabledClient) GenerateText(context.Context, string, string, TextParams) (string, error) {
	return "", ErrNotConfigured
}

func (*disabledClient) GenerateImage(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
