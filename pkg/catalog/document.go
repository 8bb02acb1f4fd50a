package catalog

import (
	"fmt"

	"github.com/voltcraft/troubleshoot/pkg/domain"
)

// TreeDocument is the authoring format of one decision tree.
type TreeDocument struct {
	Category    string         `json:"category" yaml:"category" mapstructure:"category" jsonschema:"required,pattern=^[a-z0-9][a-z0-9-]*$"`
	Title       string         `json:"title" yaml:"title" mapstructure:"title" jsonschema:"required,minLength=1"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Nodes       []NodeDocument `json:"nodes" yaml:"nodes" mapstructure:"nodes" jsonschema:"required,minItems=1"`
}

// NodeDocument is the authoring format of one question.
type NodeDocument struct {
	ID          string           `json:"id" yaml:"id" mapstructure:"id" jsonschema:"required,minLength=1"`
	Question    string           `json:"question" yaml:"question" mapstructure:"question" jsonschema:"required,minLength=1"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Options     []OptionDocument `json:"options" yaml:"options" mapstructure:"options" jsonschema:"required,minItems=1"`
}

// OptionDocument is the authoring format of one answer.
// Exactly one of Next or Result must be set.
type OptionDocument struct {
	Label  string         `json:"label" yaml:"label" mapstructure:"label" jsonschema:"required,minLength=1"`
	Next   string         `json:"next,omitempty" yaml:"next,omitempty" mapstructure:"next"`
	Result *domain.Result `json:"result,omitempty" yaml:"result,omitempty" mapstructure:"result"`
}

// ToNode converts the document into a domain node.
func (d NodeDocument) ToNode() (domain.Node, error) {
	node := domain.Node{
		ID:          d.ID,
		Question:    d.Question,
		Description: d.Description,
		Options:     make([]domain.Option, 0, len(d.Options)),
	}
	for i, od := range d.Options {
		opt, err := od.ToOption()
		if err != nil {
			return domain.Node{}, fmt.Errorf("node '%s' option %d: %w", d.ID, i, err)
		}
		node.Options = append(node.Options, opt)
	}
	return node, nil
}

// ToOption converts the document into a domain option.
func (d OptionDocument) ToOption() (domain.Option, error) {
	outcome, err := domain.NewOutcome(d.Next, d.Result)
	if err != nil {
		return domain.Option{}, fmt.Errorf("%q: %w", d.Label, err)
	}
	return domain.Option{Label: d.Label, Outcome: outcome}, nil
}

// ToTree converts the document into a domain tree. It does not validate integrity.
func (d TreeDocument) ToTree() (*domain.Tree, error) {
	nodes := make([]domain.Node, 0, len(d.Nodes))
	for _, nd := range d.Nodes {
		node, err := nd.ToNode()
		if err != nil {
			return nil, fmt.Errorf("tree %q: %w", d.Category, err)
		}
		nodes = append(nodes, node)
	}
	return domain.NewTree(d.Category, d.Title, d.Description, nodes), nil
}
