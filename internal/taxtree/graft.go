package taxtree

import (
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring"
	"github.com/opentaxa/taxtree/internal/synonym"
)

// Graft inserts synonym taxa that are missing from the tree but present in
// the broader known-id pool, as sibling leaves of their valid counterpart.
// Grafted leaves carry IsSynonym and ValidID; everything already in the
// tree is left untouched. Returns the number of nodes added.
//
// No-op when the synonym index is not ready. Idempotent: an id already in
// the tree is never grafted again.
func Graft(t *Tree, idx *synonym.Index, known *roaring.Bitmap) int {
	if t == nil || t.Root == nil || idx == nil || !idx.Ready() {
		return 0
	}

	// Snapshot the current node set so freshly grafted leaves are not
	// themselves walked. Sorted for a deterministic graft order.
	ids := make([]int64, 0, len(t.ByID))
	for id := range t.ByID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	added := 0
	for _, id := range ids {
		info := idx.Info(id)
		if info == nil {
			continue
		}

		it := idx.AllIDs(id).Iterator()
		for it.HasNext() {
			sid := int64(it.Next())
			if _, present := t.ByID[sid]; present {
				continue
			}
			if known == nil || sid > math.MaxUint32 || !known.Contains(uint32(sid)) {
				continue
			}

			parent := t.Parent(id)
			if parent == nil {
				// No sibling anchor (id is the root or unreachable):
				// this synonym is simply not grafted.
				continue
			}

			name, ok := idx.NameOf(sid)
			if !ok || name == "" {
				continue
			}

			leaf := &Node{
				ID:        sid,
				Name:      name,
				IsSynonym: true,
				ValidID:   info.ValidID,
			}
			parent.Children = append(parent.Children, leaf)
			t.ByID[sid] = leaf
			t.parents[sid] = parent
			added++
		}
	}
	return added
}
