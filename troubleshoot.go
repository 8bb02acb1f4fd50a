package troubleshoot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/voltcraft/troubleshoot/internal/runtime"
	loamAdapter "github.com/voltcraft/troubleshoot/pkg/adapters/loam"
	"github.com/voltcraft/troubleshoot/pkg/catalog"
	"github.com/voltcraft/troubleshoot/pkg/domain"
	"github.com/voltcraft/troubleshoot/pkg/ports"
)

// ErrNilState is returned when an operation receives no state.
var ErrNilState = errors.New("state is nil")

// Engine is the high-level entry point of the troubleshooting wizard.
// It wires the catalog of trees to the navigator and is safe for concurrent use;
// callers own the State values and persist them as they see fit.
type Engine struct {
	catalog   *catalog.Catalog
	source    ports.TreeSource
	loamPath  string
	navigator *runtime.Navigator
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

var _ ports.Wizard = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCatalog uses an already loaded catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithSource loads the catalog from a custom TreeSource.
func WithSource(source ports.TreeSource) Option {
	return func(e *Engine) {
		e.source = source
	}
}

// WithLoamRepository loads the catalog from a Loam markdown repository at dir.
func WithLoamRepository(dir string) Option {
	return func(e *Engine) {
		e.loamPath = dir
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an Engine. Without a catalog or source option, the trees
// embedded in the binary are used.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if eng.catalog == nil {
		source := eng.source
		if source == nil && eng.loamPath != "" {
			loader, err := loamAdapter.Open(eng.loamPath)
			if err != nil {
				return nil, err
			}
			source = loader
		}
		if source == nil {
			source = catalog.Builtin()
		}

		cat, err := catalog.Load(context.Background(), source, catalog.WithLogger(eng.logger))
		if err != nil {
			return nil, err
		}
		eng.catalog = cat
	}

	eng.navigator = runtime.NewNavigator(
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)

	eng.logger.Debug("engine ready", "categories", eng.catalog.Len())
	return eng, nil
}

// Catalog returns the loaded trees.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// NewState returns the canonical initial state for sessionID.
func (e *Engine) NewState(sessionID string) *domain.State {
	return domain.NewState(sessionID)
}

// Categories lists the equipment categories in display order.
func (e *Engine) Categories() []domain.CategorySummary {
	return e.catalog.Categories()
}

// Tree returns the decision tree of category.
func (e *Engine) Tree(category string) (*domain.Tree, error) {
	return e.catalog.Get(category)
}

// Start selects category and shows its "start" question.
func (e *Engine) Start(ctx context.Context, state *domain.State, category string) (*domain.State, error) {
	if state == nil {
		return nil, ErrNilState
	}
	tree, err := e.catalog.Get(category)
	if err != nil {
		return nil, err
	}
	return e.navigator.Start(ctx, state, tree)
}

// Select answers the current question with the option at index (zero-based).
func (e *Engine) Select(ctx context.Context, state *domain.State, index int) (*domain.State, error) {
	if state == nil {
		return nil, ErrNilState
	}
	if state.Phase() != domain.PhaseQuestion {
		return nil, domain.ErrNoActiveQuestion
	}

	tree, err := e.catalog.Get(state.Category)
	if err != nil {
		return nil, err
	}
	node, ok := tree.Node(state.CurrentNodeID)
	if !ok {
		return nil, &domain.IntegrityError{Category: tree.Category, NodeID: state.CurrentNodeID, Err: domain.ErrDanglingReference}
	}
	if index < 0 || index >= len(node.Options) {
		return nil, fmt.Errorf("%w: %d (node '%s' has %d options)", domain.ErrOptionOutOfRange, index, node.ID, len(node.Options))
	}

	return e.navigator.Select(ctx, state, tree, node.Options[index])
}

// Back steps back once: clears a result, pops the history, or leaves the category.
func (e *Engine) Back(ctx context.Context, state *domain.State) (*domain.State, error) {
	if state == nil {
		return nil, ErrNilState
	}
	return e.navigator.Back(ctx, state), nil
}

// Reset returns to the category selection screen from any state.
func (e *Engine) Reset(ctx context.Context, state *domain.State) (*domain.State, error) {
	return e.navigator.Reset(ctx, state), nil
}

// Render computes what to display for state.
func (e *Engine) Render(state *domain.State) (domain.View, error) {
	if state == nil {
		return domain.View{}, ErrNilState
	}
	if state.Phase() == domain.PhaseCategorySelect {
		return runtime.Render(state, nil, e.catalog.Categories())
	}
	tree, err := e.catalog.Get(state.Category)
	if err != nil {
		return domain.View{}, err
	}
	return runtime.Render(state, tree, nil)
}
