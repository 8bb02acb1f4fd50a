package domain

// Tree is the static set of Nodes for one equipment category.
// Trees are immutable once built; use NewTree to construct one.
type Tree struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Nodes       []Node `json:"nodes"`

	index map[string]int
}

// NewTree builds a Tree and its id index. Duplicate ids keep the first occurrence
// in the index; the validator reports them.
func NewTree(category, title, description string, nodes []Node) *Tree {
	t := &Tree{
		Category:    category,
		Title:       title,
		Description: description,
		Nodes:       nodes,
		index:       make(map[string]int, len(nodes)),
	}
	for i, n := range nodes {
		if _, exists := t.index[n.ID]; !exists {
			t.index[n.ID] = i
		}
	}
	return t
}

// Node looks up a node by id.
func (t *Tree) Node(id string) (*Node, bool) {
	if t == nil {
		return nil, false
	}
	if t.index == nil {
		for i := range t.Nodes {
			if t.Nodes[i].ID == id {
				return &t.Nodes[i], true
			}
		}
		return nil, false
	}
	i, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return &t.Nodes[i], true
}

// Has reports whether the tree contains a node with the given id.
func (t *Tree) Has(id string) bool {
	_, ok := t.Node(id)
	return ok
}

// Summary returns the listing entry for the category selection screen.
func (t *Tree) Summary() CategorySummary {
	return CategorySummary{
		Key:         t.Category,
		Title:       t.Title,
		Description: t.Description,
	}
}

// CategorySummary is what the category selection screen shows for one tree.
type CategorySummary struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}
