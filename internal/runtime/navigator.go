package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/voltcraft/troubleshoot/pkg/domain"
)

// Navigator drives the traversal of a decision tree.
// Every transition returns a fresh State and never mutates its input,
// so a Navigator can be shared between sessions.
type Navigator struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	now    func() time.Time
}

// Option configures the Navigator.
type Option func(*Navigator)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(n *Navigator) {
		n.hooks = hooks
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(n *Navigator) {
		n.now = now
	}
}

// NewNavigator creates a navigator.
func NewNavigator(opts ...Option) *Navigator {
	n := &Navigator{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Start enters tree at its "start" node with an empty history and no result.
func (n *Navigator) Start(ctx context.Context, state *domain.State, tree *domain.Tree) (*domain.State, error) {
	if !tree.Has(domain.StartNodeID) {
		return nil, &domain.IntegrityError{Category: tree.Category, Err: domain.ErrStartNodeMissing}
	}

	next := state.Clone()
	if next == nil {
		next = domain.NewState("")
	}
	next.Category = tree.Category
	next.CurrentNodeID = domain.StartNodeID
	next.History = []string{}
	next.Result = nil

	n.logger.Debug("session started", "session_id", next.SessionID, "category", tree.Category)
	n.emitNodeEnter(ctx, next, false)
	return next, nil
}

// Select applies option, which must belong to the node currently displayed.
//
// A concluding option activates its result without touching the history.
// A continuing option pushes the current node and moves to the target.
// A malformed option (no outcome) leaves the state unchanged.
func (n *Navigator) Select(ctx context.Context, state *domain.State, tree *domain.Tree, option domain.Option) (*domain.State, error) {
	if state.Phase() != domain.PhaseQuestion {
		return nil, domain.ErrNoActiveQuestion
	}
	if state.Category != tree.Category {
		return nil, &domain.IntegrityError{Category: tree.Category, NodeID: state.CurrentNodeID, Err: domain.ErrCategoryNotFound}
	}

	switch outcome := option.Outcome.(type) {
	case domain.Conclude:
		next := state.Clone()
		next.Result = outcome.Result.Clone()
		n.logger.Debug("result reached",
			"session_id", next.SessionID,
			"category", next.Category,
			"node_id", next.CurrentNodeID,
			"severity", string(next.Result.Severity),
		)
		n.emitResult(ctx, next)
		return next, nil

	case domain.Continue:
		if !tree.Has(outcome.NextID) {
			return nil, &domain.IntegrityError{Category: tree.Category, NodeID: outcome.NextID, Err: domain.ErrDanglingReference}
		}
		next := state.Clone()
		n.emitNodeLeave(ctx, next, false)
		next.History = append(next.History, next.CurrentNodeID)
		next.CurrentNodeID = outcome.NextID
		n.emitNodeEnter(ctx, next, false)
		return next, nil

	default:
		n.logger.Warn("ignoring malformed option",
			"category", state.Category,
			"node_id", state.CurrentNodeID,
			"label", option.Label,
		)
		return state.Clone(), nil
	}
}

// Back steps back once. An active result is cleared first; otherwise the history
// is popped; with an empty history the category is deselected.
func (n *Navigator) Back(ctx context.Context, state *domain.State) *domain.State {
	next := state.Clone()

	switch {
	case next.Result != nil:
		next.Result = nil
		n.emitNodeEnter(ctx, next, true)

	case len(next.History) > 0:
		n.emitNodeLeave(ctx, next, true)
		last := len(next.History) - 1
		next.CurrentNodeID = next.History[last]
		next.History = next.History[:last]
		n.emitNodeEnter(ctx, next, true)

	default:
		if next.Category != "" {
			n.emitNodeLeave(ctx, next, true)
			n.emitExit(ctx, next, "back")
		}
		next.Category = ""
		next.CurrentNodeID = domain.StartNodeID
		next.History = []string{}
	}
	return next
}

// Reset returns the canonical initial state, keeping only the session id.
func (n *Navigator) Reset(ctx context.Context, state *domain.State) *domain.State {
	sessionID := ""
	if state != nil {
		sessionID = state.SessionID
		if state.Category != "" {
			n.emitExit(ctx, state, "reset")
		}
	}
	return domain.NewState(sessionID)
}
