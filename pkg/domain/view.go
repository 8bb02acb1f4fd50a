package domain

// ViewKind tells a front end which screen to draw.
type ViewKind string

const (
	ViewCategories ViewKind = "categories"
	ViewQuestion   ViewKind = "question"
	ViewResult     ViewKind = "result"
)

// View is the rendering snapshot of a State.
type View struct {
	Kind ViewKind `json:"kind"`

	// Category and Title describe the active tree (empty on the categories screen).
	Category string `json:"category,omitempty"`
	Title    string `json:"title,omitempty"`

	// Categories is populated on the categories screen.
	Categories []CategorySummary `json:"categories,omitempty"`

	// Node is the displayed question (also set while a result is shown, for context).
	Node *Node `json:"node,omitempty"`

	// Result is the active diagnosis.
	Result *Result `json:"result,omitempty"`

	// CanGoBack is false only on the categories screen.
	CanGoBack bool `json:"can_go_back"`

	// Depth is the number of questions answered to reach the current node.
	Depth int `json:"depth"`
}
