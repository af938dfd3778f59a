package grouping

import (
	"sort"

	"github.com/opentaxa/taxtree/internal/taxtree"
)

// LeafGroup pairs a leaf with its resolved grouping label.
type LeafGroup struct {
	Leaf *taxtree.Node
	Key  string
}

// LeafOrder computes the total leaf order for the tree: every leaf with
// its group key, sorted by (key, name) with an ordinal compare, ties kept
// in input (tree traversal) order. The resolved key is also written to
// each leaf's GroupKey field.
func LeafOrder(root *taxtree.Node, groupDepth int) []LeafGroup {
	if root == nil {
		return nil
	}

	var leaves []LeafGroup
	root.Walk(func(n *taxtree.Node) {
		if !n.IsLeaf() {
			return
		}
		key := GroupKey(n.PathNames, groupDepth)
		n.GroupKey = key
		leaves = append(leaves, LeafGroup{Leaf: n, Key: key})
	})

	sort.SliceStable(leaves, func(i, j int) bool {
		if leaves[i].Key != leaves[j].Key {
			return leaves[i].Key < leaves[j].Key
		}
		return leaves[i].Leaf.Name < leaves[j].Leaf.Name
	})
	return leaves
}

// Reorder mutates sibling order in place so that leaves cluster by group
// across the whole tree: every internal node's children are stable-sorted
// by the mean position of their subtree leaves in the global leaf order,
// which places internal nodes at the centroid of their descendants.
//
// Sort keys live in side maps local to this pass; the only persisted
// effects are child order and the GroupKey labels. Internal nodes get a
// GroupKey only when all their leaves share one ("" means mixed).
func Reorder(root *taxtree.Node, groupDepth int) {
	order := LeafOrder(root, groupDepth)
	if len(order) == 0 {
		return
	}

	pos := make(map[int64]int, len(order))
	for i, lg := range order {
		pos[lg.Leaf.ID] = i
	}

	var walk func(n *taxtree.Node) (sum float64, count int, key string)
	walk = func(n *taxtree.Node) (float64, int, string) {
		if n.IsLeaf() {
			return float64(pos[n.ID]), 1, n.GroupKey
		}

		keys := make(map[int64]float64, len(n.Children))
		var sum float64
		var count int
		common := ""
		mixed := false

		for i, c := range n.Children {
			s, cnt, key := walk(c)
			if cnt > 0 {
				keys[c.ID] = s / float64(cnt)
			}
			sum += s
			count += cnt
			if i == 0 {
				common = key
			} else if key != common {
				mixed = true
			}
		}

		sort.SliceStable(n.Children, func(i, j int) bool {
			return keys[n.Children[i].ID] < keys[n.Children[j].ID]
		})

		if mixed {
			common = ""
		}
		n.GroupKey = common
		return sum, count, common
	}
	walk(root)
}
