package ports

import (
	"context"

	"github.com/voltcraft/troubleshoot/pkg/domain"
)

// Wizard is the set of operations a front end drives.
// Implementations are stateless: the caller owns the State and persists it.
type Wizard interface {
	// NewState creates the canonical initial state for a session.
	NewState(sessionID string) *domain.State

	// Categories lists the available equipment categories in display order.
	Categories() []domain.CategorySummary

	// Tree returns the decision tree of a category.
	Tree(category string) (*domain.Tree, error)

	// Start enters the tree of category at its "start" node.
	Start(ctx context.Context, state *domain.State, category string) (*domain.State, error)

	// Select picks the option at index on the current node.
	Select(ctx context.Context, state *domain.State, index int) (*domain.State, error)

	// Back steps back once (result, then history, then category).
	Back(ctx context.Context, state *domain.State) (*domain.State, error)

	// Reset returns to the category selection screen.
	Reset(ctx context.Context, state *domain.State) (*domain.State, error)

	// Render calculates what to display for state.
	Render(state *domain.State) (domain.View, error)
}
