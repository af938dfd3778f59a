package taxtree

import (
	"math"
	"strconv"

	"github.com/RoaringBitmap/roaring"
	"github.com/opentaxa/taxtree/api"
)

// Build merges path records into one deduplicated tree rooted at the given
// identity. The root id and name are fixed inputs, never derived from data.
//
// Records whose first id is not rootID are skipped silently: paths not
// rooted at the configured root are out of scope for this tree. Every node
// id appears exactly once; the first record to reach an id fixes its name
// and root-to-node path, later records only extend below it.
func Build(records []api.PathRecord, rootID int64, rootName string) *Tree {
	root := &Node{ID: rootID, Name: rootName}
	t := &Tree{
		Root:    root,
		ByID:    map[int64]*Node{rootID: root},
		parents: make(map[int64]*Node),
	}

	// Name dictionary: id -> first name observed anywhere in the input,
	// including records that end up skipped. Used as a fallback when a
	// record reaches an id but carries no name for that position.
	names := make(map[int64]string)
	for _, rec := range records {
		for i, id := range rec.IDs {
			if id == 0 || i >= len(rec.Names) || rec.Names[i] == "" {
				continue
			}
			if _, ok := names[id]; !ok {
				names[id] = rec.Names[i]
			}
		}
	}

	for _, rec := range records {
		if len(rec.IDs) == 0 || rec.IDs[0] != rootID {
			continue
		}

		cur := root
		pathIDs := []int64{rootID}
		pathNames := []string{rootName}

		for i := 1; i < len(rec.IDs); i++ {
			id := rec.IDs[i]
			if id == 0 {
				// Gap in the record: no node, but children keep
				// attaching to the last resolved ancestor.
				continue
			}

			node, ok := t.ByID[id]
			if !ok {
				name := ""
				if i < len(rec.Names) {
					name = rec.Names[i]
				}
				if name == "" {
					name = names[id]
				}
				if name == "" {
					name = strconv.FormatInt(id, 10)
				}

				node = &Node{ID: id, Name: name}
				node.PathIDs = append(append([]int64(nil), pathIDs...), id)
				node.PathNames = append(append([]string(nil), pathNames...), name)
				t.ByID[id] = node
				t.parents[id] = cur
				cur.Children = append(cur.Children, node)
			}

			cur = node
			pathIDs = append(pathIDs, node.ID)
			pathNames = append(pathNames, node.Name)
		}
	}

	return t
}

// KnownIDs collects every id appearing anywhere in the given records,
// rooted or not. The grafter uses this as the pool of taxa eligible for
// synonym insertion. Taxon ids are positive and fit uint32.
func KnownIDs(records []api.PathRecord) *roaring.Bitmap {
	known := roaring.New()
	for _, rec := range records {
		for _, id := range rec.IDs {
			if id > 0 && id <= math.MaxUint32 {
				known.Add(uint32(id))
			}
		}
	}
	return known
}
