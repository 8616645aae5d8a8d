package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"channel-stats/internal/models"
	"channel-stats/shared/config"

	"google.golang.org/genai"
)

// maxInsightChars bounds what ends up in the document if the model ignores the length hint.
const maxInsightChars = 1200

var ErrEmptyResponse = errors.New("empty response from model")

type Summarizer struct {
	client *genai.Client
	model  string
}

func NewSummarizer(ctx context.Context, cfg *config.AIConfig) (*Summarizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Summarizer{
		client: client,
		model:  cfg.Model,
	}, nil
}

// Summarize asks the model for a short plain-text commentary on the KPIs.
func (s *Summarizer) Summarize(ctx context.Context, kpis []models.KPI) (string, error) {
	if len(kpis) == 0 {
		return "", fmt.Errorf("no KPIs to summarize")
	}

	parts := []*genai.Part{
		genai.NewPartFromText(buildInsightPrompt(kpis)),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate insights: %w", err)
	}

	text := cleanInsights(result.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func buildInsightPrompt(kpis []models.KPI) string {
	lines := make([]string, 0, len(kpis))
	for _, kpi := range kpis {
		lines = append(lines, "- "+kpi.String())
	}

	return fmt.Sprintf(`You are an analyst reviewing the performance of a YouTube channel.

CHANNEL KPIs:
%s

INSTRUCTIONS:
1. Write two or three short paragraphs of plain text, no markdown
2. Comment on reach (views), engagement (likes and comments per view) and how concentrated views are in the top videos
3. Values shown as NaN or +Inf could not be computed; mention this only if it matters
4. Finish with one concrete suggestion for the channel`, strings.Join(lines, "\n"))
}

// cleanInsights strips markdown the model adds despite the instructions and
// caps the length.
func cleanInsights(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "#")
		line = strings.ReplaceAll(line, "**", "")
		lines = append(lines, strings.TrimSpace(line))
	}
	text = strings.TrimSpace(strings.Join(lines, "\n"))

	return truncateString(text, maxInsightChars)
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength] + "..."
}
