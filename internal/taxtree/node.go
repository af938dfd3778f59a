// Package taxtree assembles flat root-to-leaf taxonomy records into a
// single deduplicated tree and grafts missing synonym taxa into it.
package taxtree

// Node is one taxon in the assembled tree. A node with zero children is a
// leaf; there is no explicit leaf flag.
type Node struct {
	ID       int64
	Name     string
	Children []*Node

	// Root-to-node path, set once by the first record that reaches this id.
	PathIDs   []int64
	PathNames []string

	// Set only on grafted synonym leaves.
	IsSynonym bool
	ValidID   int64

	// Family-level grouping label, set by the grouping pass.
	// Empty on internal nodes whose descendants span multiple groups.
	GroupKey string
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Walk visits n and every descendant in depth-first preorder.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// Tree is an assembled taxonomy: the root node plus an id index that is a
// bijection with the tree's node set.
type Tree struct {
	Root *Node
	ByID map[int64]*Node

	parents map[int64]*Node // child id -> parent node
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.ByID)
}

// Parent returns the parent of the node with the given id, or nil for the
// root and for unknown ids. The index is populated during Build; grafted
// nodes register themselves as they attach. A full tree scan backs the
// index up for nodes added by other means.
func (t *Tree) Parent(id int64) *Node {
	if p, ok := t.parents[id]; ok {
		return p
	}
	if t.Root == nil || id == t.Root.ID {
		return nil
	}
	return findParent(t.Root, id)
}

// findParent locates the parent of id by scanning from n, first match wins.
func findParent(n *Node, id int64) *Node {
	for _, c := range n.Children {
		if c.ID == id {
			return n
		}
		if p := findParent(c, id); p != nil {
			return p
		}
	}
	return nil
}
