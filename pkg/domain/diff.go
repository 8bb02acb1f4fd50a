package domain

import "reflect"

// StateDiff represents the changes between two states.
// It is serialized to JSON so clients can apply partial updates.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	Category      *string `json:"category,omitempty"`
	CurrentNodeID *string `json:"current_node_id,omitempty"`

	History *HistoryDelta `json:"history,omitempty"`

	// ResultSet carries a newly concluded result; ResultCleared signals its removal.
	ResultSet     *Result `json:"result,omitempty"`
	ResultCleared bool    `json:"result_cleared,omitempty"`
}

// HistoryDelta describes how the history stack changed.
// Popped is applied before Pushed.
type HistoryDelta struct {
	Popped int      `json:"popped,omitempty"`
	Pushed []string `json:"pushed,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState.
// It returns nil when nothing changed.
func Diff(oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{SessionID: newState.SessionID}

	if oldState == nil || oldState.Category != newState.Category {
		diff.Category = &newState.Category
	}
	if oldState == nil || oldState.CurrentNodeID != newState.CurrentNodeID {
		diff.CurrentNodeID = &newState.CurrentNodeID
	}

	diff.History = diffHistory(oldState, newState)

	switch {
	case newState.Result != nil && (oldState == nil || !reflect.DeepEqual(oldState.Result, newState.Result)):
		diff.ResultSet = newState.Result
	case newState.Result == nil && oldState != nil && oldState.Result != nil:
		diff.ResultCleared = true
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// diffHistory finds the common prefix and reports pops and pushes relative to it.
func diffHistory(old, new *State) *HistoryDelta {
	var oldHist []string
	if old != nil {
		oldHist = old.History
	}

	common := 0
	for common < len(oldHist) && common < len(new.History) && oldHist[common] == new.History[common] {
		common++
	}

	popped := len(oldHist) - common
	pushed := new.History[common:]
	if popped == 0 && len(pushed) == 0 {
		return nil
	}

	delta := &HistoryDelta{Popped: popped}
	if len(pushed) > 0 {
		delta.Pushed = append([]string(nil), pushed...)
	}
	return delta
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.Category == nil &&
		d.CurrentNodeID == nil &&
		d.History == nil &&
		d.ResultSet == nil &&
		!d.ResultCleared
}
