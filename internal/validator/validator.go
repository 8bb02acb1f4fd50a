package validator

import (
	"fmt"
	"strings"

	"github.com/voltcraft/troubleshoot/pkg/domain"
)

// Report collects the problems found in a tree.
// Errors make a tree unusable; warnings are informational.
type Report struct {
	Category string
	Errors   []string
	Warnings []string
}

// OK reports whether the tree has no errors.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Err converts the report into an error, or nil when the tree is valid.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("tree %q: found %d errors:\n- %s", r.Category, len(r.Errors), strings.Join(r.Errors, "\n- "))
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ValidateTree checks tree integrity: a "start" node exists, ids are unique,
// every option has exactly one outcome, every next id resolves and results carry
// a known severity. Nodes unreachable from "start" are reported as warnings.
func ValidateTree(tree *domain.Tree) *Report {
	report := &Report{Category: tree.Category}

	if tree.Category == "" {
		report.errorf("tree has no category key")
	}

	seen := make(map[string]bool, len(tree.Nodes))
	for _, node := range tree.Nodes {
		if node.ID == "" {
			report.errorf("node with empty id (question %q)", node.Question)
			continue
		}
		if seen[node.ID] {
			report.errorf("duplicate node id '%s'", node.ID)
		}
		seen[node.ID] = true
	}

	if !seen[domain.StartNodeID] {
		report.errorf("missing '%s' node", domain.StartNodeID)
	}

	for _, node := range tree.Nodes {
		if len(node.Options) == 0 {
			report.errorf("node '%s' has no options", node.ID)
		}
		for i, opt := range node.Options {
			switch outcome := opt.Outcome.(type) {
			case domain.Continue:
				if !seen[outcome.NextID] {
					report.errorf("node '%s' option %d (%q) points to missing node '%s'", node.ID, i, opt.Label, outcome.NextID)
				}
			case domain.Conclude:
				if !outcome.Result.Severity.Valid() {
					report.errorf("node '%s' option %d (%q) has invalid severity %q", node.ID, i, opt.Label, outcome.Result.Severity)
				}
				if outcome.Result.Diagnosis == "" {
					report.errorf("node '%s' option %d (%q) has an empty diagnosis", node.ID, i, opt.Label)
				}
			default:
				report.errorf("node '%s' option %d (%q) has neither next nor result", node.ID, i, opt.Label)
			}
		}
	}

	if seen[domain.StartNodeID] {
		reachable := crawl(tree)
		for _, node := range tree.Nodes {
			if node.ID != "" && !reachable[node.ID] {
				report.warnf("node '%s' is unreachable from '%s'", node.ID, domain.StartNodeID)
			}
		}
	}

	return report
}

// crawl walks the tree breadth-first from the start node.
func crawl(tree *domain.Tree) map[string]bool {
	visited := make(map[string]bool)
	queue := []string{domain.StartNodeID}

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		node, ok := tree.Node(currentID)
		if !ok {
			continue
		}
		for _, opt := range node.Options {
			if next, ok := opt.NextID(); ok && !visited[next] {
				queue = append(queue, next)
			}
		}
	}
	return visited
}
