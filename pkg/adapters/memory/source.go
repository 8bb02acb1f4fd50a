package memory

import (
	"context"
	"fmt"

	"github.com/voltcraft/troubleshoot/pkg/domain"
)

// Source implements ports.TreeSource over trees built in code.
type Source struct {
	trees []*domain.Tree
}

// NewSource returns a source serving trees in the given order.
func NewSource(trees ...*domain.Tree) *Source {
	return &Source{trees: trees}
}

// NewSourceFromNodes builds a single-tree source. This improves DX for tests.
func NewSourceFromNodes(category, title string, nodes ...domain.Node) (*Source, error) {
	for _, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node missing ID")
		}
	}
	return NewSource(domain.NewTree(category, title, "", nodes)), nil
}

// Add appends a tree.
func (s *Source) Add(tree *domain.Tree) {
	s.trees = append(s.trees, tree)
}

// LoadTrees returns the trees in insertion order.
func (s *Source) LoadTrees(ctx context.Context) ([]*domain.Tree, error) {
	out := make([]*domain.Tree, len(s.trees))
	copy(out, s.trees)
	return out, nil
}
