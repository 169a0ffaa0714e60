// Package llm implements the text generator port against the Anthropic API.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/aegis-support/aegis/internal/shared/config"
	apperrors "github.com/aegis-support/aegis/internal/shared/errors"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

// AnthropicGenerator calls the Anthropic messages API. Every call is
// bounded by the configured timeout so a slow upstream cannot stall an
// analysis request.
type AnthropicGenerator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	timeout   time.Duration
	logger    logger.Interface
}

func NewAnthropicGenerator(cfg *config.LLMConfig, log logger.Interface) *AnthropicGenerator {
	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &AnthropicGenerator{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     cfg.Model,
		maxTokens: maxTokens,
		timeout:   timeout,
		logger:    log.Named("llm"),
	}
}

func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		g.logger.Warnw("text generation failed",
			"error", err,
			"duration", time.Since(start),
		)
		return "", apperrors.NewExternalServiceError("text generation failed", err.Error())
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", apperrors.NewExternalServiceError("text generation returned empty response")
	}

	g.logger.Debugw("text generated",
		"model", g.model,
		"duration", time.Since(start),
		"chars", len(text),
	)
	return text, nil
}

// Describe reports the configured model, for the health endpoint.
func (g *AnthropicGenerator) Describe() string {
	return fmt.Sprintf("anthropic/%s", g.model)
}
