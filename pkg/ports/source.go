package ports

import (
	"context"

	"github.com/voltcraft/troubleshoot/pkg/domain"
)

// TreeSource defines how the catalog retrieves decision trees.
// This allows the content (embedded files, directories, Loam, memory) to be decoupled.
type TreeSource interface {
	// LoadTrees returns every tree in the source, in display order.
	LoadTrees(ctx context.Context) ([]*domain.Tree, error)
}
