package dsl

import (
	"fmt"

	"github.com/voltcraft/troubleshoot/internal/validator"
	"github.com/voltcraft/troubleshoot/pkg/adapters/memory"
	"github.com/voltcraft/troubleshoot/pkg/domain"
)

// Builder manages the tree construction.
type Builder struct {
	category    string
	title       string
	description string

	order []string
	nodes map[string]*NodeBuilder
}

// New creates a builder for the tree of category.
func New(category, title string) *Builder {
	return &Builder{
		category: category,
		title:    title,
		nodes:    make(map[string]*NodeBuilder),
	}
}

// Describe sets the category description shown on the selection screen.
func (b *Builder) Describe(description string) *Builder {
	b.description = description
	return b
}

// Add creates a new node in the tree.
// If the node already exists, it returns the existing builder.
// Nodes keep the order in which they were first added.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{node: domain.Node{ID: id}}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Build assembles and validates the tree.
func (b *Builder) Build() (*domain.Tree, error) {
	nodes := make([]domain.Node, 0, len(b.order))
	for _, id := range b.order {
		nodes = append(nodes, b.nodes[id].Build())
	}

	tree := domain.NewTree(b.category, b.title, b.description, nodes)
	if err := validator.ValidateTree(tree).Err(); err != nil {
		return nil, fmt.Errorf("failed to build tree: %w", err)
	}
	return tree, nil
}

// Source builds the tree and wraps it in an in-memory tree source.
func (b *Builder) Source() (*memory.Source, error) {
	tree, err := b.Build()
	if err != nil {
		return nil, err
	}
	return memory.NewSource(tree), nil
}
