// Package synonym resolves taxonomic synonym relationships: every invalid
// (deprecated) taxon identity maps to exactly one valid identity, and the
// index answers union-style lookups over both directions.
//
// The index is loaded once and never mutated afterwards. Queries are safe
// to call before the load completes: they report "not found" instead of
// blocking or erroring.
package synonym

import (
	"log"
	"math"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring"
	"github.com/opentaxa/taxtree/api"
)

// Index holds the bidirectional synonym mappings built from a one-time
// load of SynonymEntry records.
type Index struct {
	ready    atomic.Bool
	loadOnce sync.Once

	idToValid    map[int64]int64
	validToAll   map[int64]*roaring.Bitmap
	nameToValid  map[string]int64
	validToNames map[int64][]string
	validToInfo  map[int64]*api.SynonymEntry
	idToName     map[int64]string
}

// NewIndex returns an empty, not-ready index.
func NewIndex() *Index {
	return &Index{
		idToValid:    make(map[int64]int64),
		validToAll:   make(map[int64]*roaring.Bitmap),
		nameToValid:  make(map[string]int64),
		validToNames: make(map[int64][]string),
		validToInfo:  make(map[int64]*api.SynonymEntry),
		idToName:     make(map[int64]string),
	}
}

// Load builds the mappings from the given entries and marks the index
// ready. Names are case-folded on load; queries fold again, so lookups are
// case-insensitive end to end. Load is single-flight: only the first call
// has any effect.
func (x *Index) Load(entries []api.SynonymEntry) {
	x.loadOnce.Do(func() {
		x.build(entries)
		x.ready.Store(true)
	})
}

// LoadFrom fetches entries via fn and loads them. A fetch failure is
// logged and leaves the index not ready; it never propagates to the
// caller. Single-flight like Load.
func (x *Index) LoadFrom(fn func() ([]api.SynonymEntry, error)) {
	x.loadOnce.Do(func() {
		entries, err := fn()
		if err != nil {
			log.Printf("synonym index: load failed, resolution disabled: %v", err)
			return
		}
		x.build(entries)
		x.ready.Store(true)
	})
}

func (x *Index) build(entries []api.SynonymEntry) {
	for i := range entries {
		e := &entries[i]
		v := e.ValidID
		if v == 0 {
			continue
		}

		all, ok := x.validToAll[v]
		if !ok {
			all = roaring.New()
			x.validToAll[v] = all
		}

		x.idToValid[v] = v
		addID(all, v)
		x.validToInfo[v] = e
		x.idToName[v] = e.ValidName
		x.validToNames[v] = append(x.validToNames[v], e.ValidName)
		if e.ValidName != "" {
			x.nameToValid[strings.ToLower(e.ValidName)] = v
		}

		for _, s := range e.Synonyms {
			if s.InvalidID == 0 {
				continue
			}
			x.idToValid[s.InvalidID] = v
			addID(all, s.InvalidID)
			x.idToName[s.InvalidID] = s.InvalidName
			x.validToNames[v] = append(x.validToNames[v], s.InvalidName)
			if s.InvalidName != "" {
				x.nameToValid[strings.ToLower(s.InvalidName)] = v
			}
		}
	}
}

func addID(bm *roaring.Bitmap, id int64) {
	if id > 0 && id <= math.MaxUint32 {
		bm.Add(uint32(id))
	}
}

// Ready reports whether the one-time load has completed successfully.
func (x *Index) Ready() bool {
	return x.ready.Load()
}

// ValidID resolves any id (valid or invalid) to its valid id.
func (x *Index) ValidID(id int64) (int64, bool) {
	if !x.Ready() {
		return 0, false
	}
	v, ok := x.idToValid[id]
	return v, ok
}

// ValidIDByName resolves a name (valid or invalid, any case) to the
// valid id it belongs to.
func (x *Index) ValidIDByName(name string) (int64, bool) {
	if !x.Ready() {
		return 0, false
	}
	v, ok := x.nameToValid[strings.ToLower(name)]
	return v, ok
}

// AllIDs returns the full id closure of the taxon the given id belongs
// to. The closure always contains the valid id itself. An unknown id, or
// a not-ready index, yields an empty bitmap.
func (x *Index) AllIDs(id int64) *roaring.Bitmap {
	if x.Ready() {
		if v, ok := x.idToValid[id]; ok {
			return x.validToAll[v]
		}
	}
	return roaring.New()
}

// AllNames returns every name (valid and invalid) in the taxon's closure.
func (x *Index) AllNames(id int64) []string {
	if !x.Ready() {
		return nil
	}
	v, ok := x.idToValid[id]
	if !ok {
		return nil
	}
	return x.validToNames[v]
}

// IsInvalid reports whether id resolves to a different id than itself.
// False for ids with no synonym entry at all.
func (x *Index) IsInvalid(id int64) bool {
	if !x.Ready() {
		return false
	}
	v, ok := x.idToValid[id]
	return ok && v != id
}

// Info returns the full entry for the taxon the given id belongs to, or
// nil if the id is unknown.
func (x *Index) Info(id int64) *api.SynonymEntry {
	if !x.Ready() {
		return nil
	}
	v, ok := x.idToValid[id]
	if !ok {
		return nil
	}
	return x.validToInfo[v]
}

// NameOf returns the name recorded for a specific id in the load, valid
// or invalid.
func (x *Index) NameOf(id int64) (string, bool) {
	if !x.Ready() {
		return "", false
	}
	name, ok := x.idToName[id]
	return name, ok
}
