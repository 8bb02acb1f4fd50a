package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/voltcraft/troubleshoot/internal/validator"
	"github.com/voltcraft/troubleshoot/pkg/domain"
	"github.com/voltcraft/troubleshoot/pkg/ports"
)

// Catalog is an ordered, keyed collection of validated trees. It is immutable
// after construction and safe for concurrent use.
type Catalog struct {
	trees map[string]*domain.Tree
	order []string
}

// Option configures catalog construction.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger reports validation warnings (e.g. unreachable nodes) to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New validates trees and builds a catalog. Any invalid tree or duplicate
// category rejects the whole catalog.
func New(trees []*domain.Tree, opts ...Option) (*Catalog, error) {
	cfg := &config{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Catalog{
		trees: make(map[string]*domain.Tree, len(trees)),
		order: make([]string, 0, len(trees)),
	}

	var errs []error
	for _, tree := range trees {
		if tree == nil {
			continue
		}
		report := validator.ValidateTree(tree)
		for _, w := range report.Warnings {
			cfg.logger.Warn("tree validation warning", "category", tree.Category, "warning", w)
		}
		if err := report.Err(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, exists := c.trees[tree.Category]; exists {
			errs = append(errs, fmt.Errorf("duplicate category %q", tree.Category))
			continue
		}
		c.trees[tree.Category] = tree
		c.order = append(c.order, tree.Category)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}

	cfg.logger.Debug("catalog loaded", "categories", len(c.order))
	return c, nil
}

// Load reads every tree from source and builds a catalog.
func Load(ctx context.Context, source ports.TreeSource, opts ...Option) (*Catalog, error) {
	trees, err := source.LoadTrees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load trees: %w", err)
	}
	return New(trees, opts...)
}

// Get returns the tree of a category.
func (c *Catalog) Get(category string) (*domain.Tree, error) {
	tree, ok := c.trees[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, category)
	}
	return tree, nil
}

// Categories returns the category summaries in display order.
func (c *Catalog) Categories() []domain.CategorySummary {
	out := make([]domain.CategorySummary, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.trees[key].Summary())
	}
	return out
}

// Trees returns every tree in display order.
func (c *Catalog) Trees() []*domain.Tree {
	out := make([]*domain.Tree, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.trees[key])
	}
	return out
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.order)
}
