package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrCategoryNotFound is returned when no tree is registered for a category key.
var ErrCategoryNotFound = errors.New("category not found")

// ErrStartNodeMissing is returned when a tree has no node with id "start".
var ErrStartNodeMissing = errors.New("tree has no start node")

// ErrDanglingReference is returned when an option points to a node that is not in the tree.
var ErrDanglingReference = errors.New("option references unknown node")

// ErrAmbiguousOption is returned when an option document sets both a next node and a result.
var ErrAmbiguousOption = errors.New("option sets both next and result")

// ErrNoActiveQuestion is returned when an option is selected while no question is displayed.
var ErrNoActiveQuestion = errors.New("no active question")

// ErrOptionOutOfRange is returned when an option index does not exist on the current node.
var ErrOptionOutOfRange = errors.New("option index out of range")

// IntegrityError describes broken tree data detected during traversal or loading.
type IntegrityError struct {
	Category string
	NodeID   string
	Err      error
}

func (e *IntegrityError) Error() string {
	if e.NodeID == "" {
		return fmt.Sprintf("tree %q: %v", e.Category, e.Err)
	}
	return fmt.Sprintf("tree %q, node %q: %v", e.Category, e.NodeID, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}
