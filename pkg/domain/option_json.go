package domain

import (
	"encoding/json"
	"fmt"
)

// optionWire is the flat representation used on the wire.
// Exactly one of Next or Result is expected.
type optionWire struct {
	Label  string  `json:"label"`
	Next   string  `json:"next,omitempty"`
	Result *Result `json:"result,omitempty"`
}

// MarshalJSON flattens the outcome into "next" or "result".
func (o Option) MarshalJSON() ([]byte, error) {
	w := optionWire{Label: o.Label}
	switch v := o.Outcome.(type) {
	case Continue:
		w.Next = v.NextID
	case Conclude:
		r := v.Result
		w.Result = &r
	}
	return json.Marshal(w)
}

// UnmarshalJSON rebuilds the outcome. Setting both "next" and "result" is rejected;
// setting neither yields a malformed option.
func (o *Option) UnmarshalJSON(data []byte) error {
	var w optionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	outcome, err := NewOutcome(w.Next, w.Result)
	if err != nil {
		return fmt.Errorf("option %q: %w", w.Label, err)
	}
	o.Label = w.Label
	o.Outcome = outcome
	return nil
}

// NewOutcome converts the flat "next"/"result" pair into an Outcome.
// It returns ErrAmbiguousOption when both are set and a nil Outcome when neither is.
func NewOutcome(next string, result *Result) (Outcome, error) {
	switch {
	case next != "" && result != nil:
		return nil, ErrAmbiguousOption
	case next != "":
		return Continue{NextID: next}, nil
	case result != nil:
		return Conclude{Result: *result}, nil
	default:
		return nil, nil
	}
}
