package ai

import (
	"context"
	"strings"
	"testing"

	"channel-stats/internal/models"
	"channel-stats/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInsightPrompt(t *testing.T) {
	kpis := []models.KPI{
		{Name: "Total Views", Value: 600, Integer: true},
		{Name: "Engagement Rate", Value: 0.11},
	}

	prompt := buildInsightPrompt(kpis)
	assert.Contains(t, prompt, "- Total Views: 600")
	assert.Contains(t, prompt, "- Engagement Rate: 0.11")
	assert.Contains(t, prompt, "CHANNEL KPIs:")
}

func TestCleanInsights(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Plain", "  Views are up.  ", "Views are up."},
		{"Fenced", "```\nViews are up.\n```", "Views are up."},
		{"Markdown", "## Summary\n**Views** are up.", "Summary\nViews are up."},
		{"Empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanInsights(tt.in))
		})
	}
}

func TestCleanInsightsTruncates(t *testing.T) {
	out := cleanInsights(strings.Repeat("a", maxInsightChars+50))
	assert.Len(t, out, maxInsightChars+3)
	assert.True(t, strings.HasSuffix(out, "..."))
}

func TestSummarizeRequiresKPIs(t *testing.T) {
	s, err := NewSummarizer(context.Background(), &config.AIConfig{GeminiAPIKey: "test-key", Model: "gemini-2.5-flash"})
	require.NoError(t, err)

	_, err = s.Summarize(context.Background(), nil)
	assert.Error(t, err)
}
