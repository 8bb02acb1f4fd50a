package graph

import (
	"fmt"
	"strings"

	"github.com/voltcraft/troubleshoot/pkg/domain"
)

// Overlay contains session data to visualize on the graph.
type Overlay struct {
	VisitedNodes []string
	CurrentNode  string
	Result       *domain.Result
}

// OverlayFromState builds the overlay of a session inside its tree.
func OverlayFromState(state *domain.State) *Overlay {
	if state == nil || state.Category == "" {
		return nil
	}
	return &Overlay{
		VisitedNodes: state.History,
		CurrentNode:  state.CurrentNodeID,
		Result:       state.Result,
	}
}

// GenerateMermaid produces a Mermaid flowchart for a tree.
// Shapes:
// - Start: ((Circle))
// - Question: [/Parallelogram/]
// - Diagnosis: ([Stadium]) leaf per concluding option, styled by severity
// Edges are labeled with the option text. Overlay styles are applied if provided.
func GenerateMermaid(tree *domain.Tree, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	currentResultID := ""
	for _, node := range tree.Nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[/", "/]"
		if node.ID == domain.StartNodeID {
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(node.Question), closer)

		for i, opt := range node.Options {
			label := escapeLabel(opt.Label)
			switch outcome := opt.Outcome.(type) {
			case domain.Continue:
				fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", safeID, label, sanitizeMermaidID(outcome.NextID))
			case domain.Conclude:
				leafID := fmt.Sprintf("%s__r%d", safeID, i)
				fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s([\"%s\"])\n", safeID, label, leafID, escapeLabel(outcome.Result.Diagnosis))
				fmt.Fprintf(&sb, "    class %s %s;\n", leafID, outcome.Result.Severity)
				if overlay != nil && overlay.Result != nil && node.ID == overlay.CurrentNode &&
					outcome.Result.Diagnosis == overlay.Result.Diagnosis {
					currentResultID = leafID
				}
			default:
				fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s__broken%d[\"?\"]\n", safeID, label, safeID, i)
			}
		}
	}

	sb.WriteString("\n    %% Severity Styles\n")
	sb.WriteString("    classDef low fill:#dcfce7,stroke:#16a34a,color:#000;\n")
	sb.WriteString("    classDef medium fill:#fef9c3,stroke:#ca8a04,color:#000;\n")
	sb.WriteString("    classDef high fill:#ffedd5,stroke:#ea580c,color:#000;\n")
	sb.WriteString("    classDef critical fill:#fee2e2,stroke:#dc2626,color:#000;\n")

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high contrast regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		switch {
		case currentResultID != "":
			fmt.Fprintf(&sb, "    class %s visited;\n", sanitizeMermaidID(overlay.CurrentNode))
			fmt.Fprintf(&sb, "    class %s current;\n", currentResultID)
		case overlay.CurrentNode != "":
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode))
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
