package search

import (
	"math"

	"github.com/RoaringBitmap/roaring"
	"github.com/opentaxa/taxtree/api"
)

// FocusRecords returns the records whose leaf taxon is in the given id
// set. A rendering layer uses this to rebuild a restricted view around
// the current matches. A nil or empty id set yields nil.
func FocusRecords(records []api.PathRecord, ids *roaring.Bitmap) []api.PathRecord {
	if ids == nil || ids.IsEmpty() {
		return nil
	}
	var out []api.PathRecord
	for _, rec := range records {
		id, _ := rec.Leaf()
		if id > 0 && id <= math.MaxUint32 && ids.Contains(uint32(id)) {
			out = append(out, rec)
		}
	}
	return out
}
