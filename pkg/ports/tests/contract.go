package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltcraft/troubleshoot/pkg/domain"
	"github.com/voltcraft/troubleshoot/pkg/ports"
)

// TreeSourceContractTest verifies that a TreeSource returns the expected categories,
// in order, and that each tree is usable (has a start node and resolvable links).
func TreeSourceContractTest(t *testing.T, source ports.TreeSource, wantCategories []string) {
	t.Helper()

	trees, err := source.LoadTrees(context.Background())
	require.NoError(t, err)

	got := make([]string, 0, len(trees))
	for _, tree := range trees {
		got = append(got, tree.Category)
	}
	assert.Equal(t, wantCategories, got)

	for _, tree := range trees {
		t.Run(tree.Category, func(t *testing.T) {
			assert.True(t, tree.Has(domain.StartNodeID), "tree must have a start node")
			for _, node := range tree.Nodes {
				for _, opt := range node.Options {
					if next, ok := opt.NextID(); ok {
						assert.True(t, tree.Has(next), "node %s links to missing %s", node.ID, next)
					}
				}
			}
		})
	}
}
