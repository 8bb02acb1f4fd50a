package tui

import (
	"fmt"
	"strings"

	"github.com/voltcraft/troubleshoot/pkg/domain"
)

var severityBadge = map[domain.Severity]string{
	domain.SeverityLow:      "🟢 Low",
	domain.SeverityMedium:   "🟡 Medium",
	domain.SeverityHigh:     "🟠 High",
	domain.SeverityCritical: "🔴 Critical",
}

// FormatView renders a view as markdown. Choices are numbered from 1.
func FormatView(view domain.View) string {
	var b strings.Builder

	switch view.Kind {
	case domain.ViewCategories:
		b.WriteString("# What equipment needs attention?\n\n")
		for i, c := range view.Categories {
			fmt.Fprintf(&b, "%d. **%s**", i+1, c.Title)
			if c.Description != "" {
				fmt.Fprintf(&b, " - %s", c.Description)
			}
			b.WriteString("\n")
		}

	case domain.ViewQuestion:
		fmt.Fprintf(&b, "# %s\n\n", view.Title)
		fmt.Fprintf(&b, "## %s\n\n", view.Node.Question)
		if view.Node.Description != "" {
			fmt.Fprintf(&b, "_%s_\n\n", view.Node.Description)
		}
		for i, opt := range view.Node.Options {
			fmt.Fprintf(&b, "%d. %s\n", i+1, opt.Label)
		}

	case domain.ViewResult:
		formatResult(&b, view.Title, view.Result)
	}

	return b.String()
}

func formatResult(b *strings.Builder, title string, r *domain.Result) {
	fmt.Fprintf(b, "# %s: %s\n\n", title, r.Diagnosis)

	badge, ok := severityBadge[r.Severity]
	if !ok {
		badge = string(r.Severity)
	}
	fmt.Fprintf(b, "**Severity:** %s\n\n", badge)

	if r.SafetyWarning != "" {
		fmt.Fprintf(b, "> ⚠️ **Safety:** %s\n\n", r.SafetyWarning)
	}
	writeList(b, "Likely causes", r.Causes)
	writeList(b, "What to do", r.Solutions)

	if r.EstimatedCost != "" {
		fmt.Fprintf(b, "**Estimated cost:** %s\n\n", r.EstimatedCost)
	}
	if r.EstimatedTime != "" {
		fmt.Fprintf(b, "**Estimated time:** %s\n\n", r.EstimatedTime)
	}
	switch {
	case r.RequiresTechnician:
		b.WriteString("A qualified technician is required for this repair.\n")
	case r.DIYFriendly:
		b.WriteString("You can safely fix this yourself.\n")
	}
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
