package domain

// StartNodeID is the entry point of every tree.
const StartNodeID = "start"

// Node represents one question shown to the user.
type Node struct {
	ID          string `json:"id" yaml:"id"`
	Question    string `json:"question" yaml:"question"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Options are displayed in order. The order is significant and never rearranged.
	Options []Option `json:"options" yaml:"options"`
}

// Option is one selectable answer attached to a Node.
type Option struct {
	Label string `json:"label" yaml:"label"`

	// Outcome is either Continue or Conclude.
	// A nil Outcome marks a malformed option; selecting it is a no-op.
	Outcome Outcome `json:"-" yaml:"-"`
}

// Outcome is the tagged union of what happens when an Option is selected.
type Outcome interface {
	isOutcome()
}

// Continue moves the traversal to another node of the same tree.
type Continue struct {
	NextID string
}

// Conclude ends the traversal with a terminal Result.
type Conclude struct {
	Result Result
}

func (Continue) isOutcome() {}
func (Conclude) isOutcome() {}

// Goto builds an Option that continues to nextID.
func Goto(label, nextID string) Option {
	return Option{Label: label, Outcome: Continue{NextID: nextID}}
}

// Finish builds an Option that concludes with result.
func Finish(label string, result Result) Option {
	return Option{Label: label, Outcome: Conclude{Result: result}}
}

// NextID returns the continuation target, if any.
func (o Option) NextID() (string, bool) {
	c, ok := o.Outcome.(Continue)
	if !ok {
		return "", false
	}
	return c.NextID, true
}

// Result returns the terminal result, if any.
func (o Option) Result() (*Result, bool) {
	c, ok := o.Outcome.(Conclude)
	if !ok {
		return nil, false
	}
	r := c.Result
	return &r, true
}

// IsMalformed reports whether the option has neither a target nor a result.
func (o Option) IsMalformed() bool {
	return o.Outcome == nil
}
