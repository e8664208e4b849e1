package genericfile

// Tree is a node of a file tree. Children is nil when the node was not expanded, either because
// it is a file or because the depth bound was reached, and non-nil (possibly empty) when the
// node was expanded.
type Tree struct {
	File     *File   `json:"file"`
	Children []*Tree `json:"children"`
}

// NewTree creates an unexpanded tree node for file.
func NewTree(file *File) *Tree {
	return &Tree{File: file}
}

// Expanded reports whether the children of the node are known.
func (t *Tree) Expanded() bool {
	return t.Children != nil
}

// SetExpanded marks the node as expanded without adding children.
func (t *Tree) SetExpanded() {
	if t.Children == nil {
		t.Children = []*Tree{}
	}
}

// AddChild appends child to the node, marking the node as expanded.
func (t *Tree) AddChild(child *Tree) {
	t.SetExpanded()
	t.Children = append(t.Children, child)
}

// Walk calls f for t and each of its descendants in depth-first pre-order.
// Walking stops at the first error returned by f.
func (t *Tree) Walk(f func(node *Tree) error) error {
	if t == nil {
		return nil
	}
	if err := f(t); err != nil {
		return err
	}
	for _, child := range t.Children {
		if err := child.Walk(f); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the node whose file path equals path, or nil.
func (t *Tree) Find(path string) *Tree {
	if t == nil {
		return nil
	}
	if t.File != nil && t.File.Path == path {
		return t
	}
	for _, child := range t.Children {
		if found := child.Find(path); found != nil {
			return found
		}
	}
	return nil
}

// Count returns the number of nodes in the tree.
func (t *Tree) Count() int {
	if t == nil {
		return 0
	}
	count := 1
	for _, child := range t.Children {
		count += child.Count()
	}
	return count
}
