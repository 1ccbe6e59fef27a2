package domain

import "time"

type CategoryNode struct {
	ID     ID
	Label  string
	Parent *ID
	Lifecycle
}

func (n CategoryNode) IsRoot() bool {
	return n.Parent == nil
}

// CategoryTree is the flat, parent-linked node list owned by a CATEGORY
// field configuration.
type CategoryTree []CategoryNode

func (t CategoryTree) Find(id ID) (CategoryNode, bool) {
	for _, node := range t {
		if node.ID == id {
			return node, true
		}
	}
	return CategoryNode{}, false
}

// ActiveChildren returns the non-trashed direct children of id.
func (t CategoryTree) ActiveChildren(id ID) []CategoryNode {
	children := make([]CategoryNode, 0)
	for _, node := range t {
		if node.Parent != nil && *node.Parent == id && !node.Trashed {
			children = append(children, node)
		}
	}
	return children
}

// IsActiveLeaf reports whether id names a non-trashed node without
// non-trashed children.
func (t CategoryTree) IsActiveLeaf(id ID) bool {
	node, found := t.Find(id)
	if !found || node.Trashed {
		return false
	}
	return len(t.ActiveChildren(id)) == 0
}

// Descendants returns every node below id, depth first.
func (t CategoryTree) Descendants(id ID) []CategoryNode {
	result := make([]CategoryNode, 0)
	seen := map[ID]bool{id: true}
	var walk func(parent ID)
	walk = func(parent ID) {
		for _, node := range t {
			if node.Parent == nil || *node.Parent != parent || seen[node.ID] {
				continue
			}
			seen[node.ID] = true
			result = append(result, node)
			walk(node.ID)
		}
	}
	walk(id)
	return result
}

// Trash trashes the node id and, when cascade is set, every descendant.
// Without cascade a node with active children is refused.
func (t CategoryTree) Trash(id ID, cascade bool, now time.Time) (CategoryTree, error) {
	node, found := t.Find(id)
	if !found {
		return nil, NewError(CodeCategoryNodeNotFound, "category node %q not found", id)
	}

	children := t.ActiveChildren(id)
	if len(children) > 0 && !cascade {
		return nil, NewSeparatorHasChildrenError(node, children)
	}

	targets := map[ID]bool{id: true}
	if cascade {
		for _, descendant := range t.Descendants(id) {
			targets[descendant.ID] = true
		}
	}

	result := make(CategoryTree, len(t))
	copy(result, t)
	for i := range result {
		if targets[result[i].ID] {
			result[i].Lifecycle.Trash(now)
		}
	}
	return result, nil
}

// Restore restores the single node id. Its ancestors are left as they are.
func (t CategoryTree) Restore(id ID) (CategoryTree, error) {
	if _, found := t.Find(id); !found {
		return nil, NewError(CodeCategoryNodeNotFound, "category node %q not found", id)
	}

	result := make(CategoryTree, len(t))
	copy(result, t)
	for i := range result {
		if result[i].ID == id {
			result[i].Lifecycle.Restore()
		}
	}
	return result, nil
}
