package loam

import (
	"github.com/voltcraft/troubleshoot/pkg/catalog"
)

// NodeMetadata is the frontmatter of one node document.
// The markdown body becomes the node description.
type NodeMetadata struct {
	ID string `json:"id" mapstructure:"id"`

	// Category defaults to the directory holding the document.
	Category string `json:"category" mapstructure:"category"`

	// Title and Summary describe the whole tree; they are read from the start node.
	Title   string `json:"title" mapstructure:"title"`
	Summary string `json:"summary" mapstructure:"summary"`

	Question string                   `json:"question" mapstructure:"question"`
	Options  []catalog.OptionDocument `json:"options" mapstructure:"options"`
}
