package loam

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/voltcraft/troubleshoot/pkg/catalog"
	"github.com/voltcraft/troubleshoot/pkg/domain"
)

// Loader adapts a Loam repository to ports.TreeSource.
//
// Layout: one markdown document per node, grouped in one directory per category:
//
//	generator/start.md
//	generator/wont-start.md
//	solar/start.md
type Loader struct {
	Repo *loam.TypedRepository[NodeMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[NodeMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numbers as json.Number across markdown and JSON documents.
	// Read-only mode stops Loam from sandboxing writes; trees are never modified here.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[NodeMetadata](repo)), nil
}

type pendingTree struct {
	doc    catalog.TreeDocument
	origin map[string]string // node id -> document id, for collision reports
}

// LoadTrees implements ports.TreeSource. Categories are returned sorted by key;
// inside a tree the start node comes first and the rest are sorted by id.
func (l *Loader) LoadTrees(ctx context.Context) ([]*domain.Tree, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	pending := make(map[string]*pendingTree)
	for _, listed := range docs {
		// List only carries metadata; Get reads the markdown body too.
		doc, err := l.Repo.Get(ctx, listed.ID)
		if err != nil {
			return nil, fmt.Errorf("loam get failed for %s: %w", listed.ID, err)
		}
		meta := doc.Data

		id := meta.ID
		if id == "" {
			id = path.Base(trimExtension(listed.ID))
		}
		id = trimExtension(id)

		category := meta.Category
		if category == "" {
			category = path.Dir(trimExtension(listed.ID))
		}
		if category == "." || category == "" {
			return nil, fmt.Errorf("document '%s' has no category (set one or place it in a category directory)", listed.ID)
		}

		pt, ok := pending[category]
		if !ok {
			pt = &pendingTree{
				doc:    catalog.TreeDocument{Category: category, Title: category},
				origin: make(map[string]string),
			}
			pending[category] = pt
		}

		if existing, ok := pt.origin[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, listed.ID)
		}
		pt.origin[id] = listed.ID

		if id == domain.StartNodeID {
			if meta.Title != "" {
				pt.doc.Title = meta.Title
			}
			pt.doc.Description = meta.Summary
		}

		pt.doc.Nodes = append(pt.doc.Nodes, catalog.NodeDocument{
			ID:          id,
			Question:    meta.Question,
			Description: strings.TrimSpace(doc.Content),
			Options:     meta.Options,
		})
	}

	categories := make([]string, 0, len(pending))
	for key := range pending {
		categories = append(categories, key)
	}
	sort.Strings(categories)

	trees := make([]*domain.Tree, 0, len(categories))
	for _, key := range categories {
		doc := pending[key].doc
		sort.SliceStable(doc.Nodes, func(i, j int) bool {
			a, b := doc.Nodes[i].ID, doc.Nodes[j].ID
			if a == domain.StartNodeID || b == domain.StartNodeID {
				return a == domain.StartNodeID && b != domain.StartNodeID
			}
			return a < b
		})

		if err := catalog.ValidateDocument(&doc); err != nil {
			return nil, fmt.Errorf("category '%s': %w", key, err)
		}
		tree, err := doc.ToTree()
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
