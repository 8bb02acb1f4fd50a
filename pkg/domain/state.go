package domain

// Phase is the navigator state derived from a State snapshot.
type Phase string

const (
	PhaseCategorySelect Phase = "category_select" // No tree selected
	PhaseQuestion       Phase = "question"        // A node is displayed
	PhaseResult         Phase = "result"          // A terminal result is displayed
)

// State represents the session snapshot of one user's traversal.
type State struct {
	// SessionID identifies the owner of this state. It is not part of the navigation semantics.
	SessionID string `json:"session_id,omitempty"`

	// Category is the active tree. Empty means the category selection screen.
	Category string `json:"category,omitempty"`

	// CurrentNodeID is the displayed node. Irrelevant while a Result is active.
	CurrentNodeID string `json:"current_node_id"`

	// History is the stack of previously visited node ids, used for single-step back navigation.
	History []string `json:"history"`

	// Result is the terminal diagnosis if the traversal has ended.
	Result *Result `json:"result,omitempty"`
}

// NewState creates the canonical initial state for a session.
func NewState(sessionID string) *State {
	return &State{
		SessionID:     sessionID,
		CurrentNodeID: StartNodeID,
		History:       []string{},
	}
}

// Phase derives the navigator phase from the snapshot.
func (s *State) Phase() Phase {
	switch {
	case s.Category == "":
		return PhaseCategorySelect
	case s.Result != nil:
		return PhaseResult
	default:
		return PhaseQuestion
	}
}

// Clone returns a deep copy that can be mutated without affecting s.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.History = make([]string, len(s.History))
	copy(next.History, s.History)
	next.Result = s.Result.Clone()
	return &next
}
