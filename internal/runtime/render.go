package runtime

import (
	"github.com/voltcraft/troubleshoot/pkg/domain"
)

// Render builds the view for state. tree must be the active category's tree
// (nil on the categories screen); categories feeds the selection screen.
func Render(state *domain.State, tree *domain.Tree, categories []domain.CategorySummary) (domain.View, error) {
	if state.Phase() == domain.PhaseCategorySelect {
		return domain.View{
			Kind:       domain.ViewCategories,
			Categories: categories,
		}, nil
	}

	node, ok := tree.Node(state.CurrentNodeID)
	if !ok {
		return domain.View{}, &domain.IntegrityError{Category: state.Category, NodeID: state.CurrentNodeID, Err: domain.ErrDanglingReference}
	}

	view := domain.View{
		Kind:      domain.ViewQuestion,
		Category:  tree.Category,
		Title:     tree.Title,
		Node:      node,
		CanGoBack: true,
		Depth:     len(state.History),
	}
	if state.Result != nil {
		view.Kind = domain.ViewResult
		view.Result = state.Result
	}
	return view, nil
}
