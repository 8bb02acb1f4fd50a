package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voltcraft/troubleshoot/pkg/domain"
)

func TestFormatView(t *testing.T) {
	t.Run("Categories", func(t *testing.T) {
		out := FormatView(domain.View{
			Kind: domain.ViewCategories,
			Categories: []domain.CategorySummary{
				{Key: "generator", Title: "Generator", Description: "Standby units"},
				{Key: "solar", Title: "Solar"},
			},
		})
		assert.Contains(t, out, "1. **Generator** - Standby units")
		assert.Contains(t, out, "2. **Solar**\n")
	})

	t.Run("Question", func(t *testing.T) {
		out := FormatView(domain.View{
			Kind:  domain.ViewQuestion,
			Title: "Generator",
			Node: &domain.Node{
				ID:          "start",
				Question:    "What problem are you experiencing with your generator?",
				Description: "Pick one",
				Options:     []domain.Option{domain.Goto("Generator won't start", "wont-start")},
			},
		})
		assert.Contains(t, out, "## What problem are you experiencing with your generator?")
		assert.Contains(t, out, "_Pick one_")
		assert.Contains(t, out, "1. Generator won't start")
	})

	t.Run("Result", func(t *testing.T) {
		out := FormatView(domain.View{
			Kind:  domain.ViewResult,
			Title: "Generator",
			Result: &domain.Result{
				Diagnosis:     "Dead or Discharged Battery",
				Severity:      domain.SeverityLow,
				Causes:        []string{"Left idle"},
				SafetyWarning: "Wear gloves",
				DIYFriendly:   true,
			},
		})
		assert.Contains(t, out, "# Generator: Dead or Discharged Battery")
		assert.Contains(t, out, "🟢 Low")
		assert.Contains(t, out, "- Left idle")
		assert.Contains(t, out, "Wear gloves")
		assert.Contains(t, out, "fix this yourself")
		assert.NotContains(t, out, "What to do")
	})
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_   _|")
}
