// Package search resolves queries against the assembled taxonomy tree and
// its synonym closures, classifying every hit as a primary or
// synonym-derived match and driving stateful next/previous navigation
// over the result list.
package search

import (
	"math"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring"
	"github.com/opentaxa/taxtree/internal/synonym"
	"github.com/opentaxa/taxtree/internal/taxtree"
)

// MatchKind classifies how a node matched the query.
type MatchKind int

const (
	// MatchPrimary is a direct hit: the queried id itself, or a node
	// whose own name contains the query.
	MatchPrimary MatchKind = iota
	// MatchSynonym is a hit reached only through the synonym closure of
	// a primary match.
	MatchSynonym
)

func (k MatchKind) String() string {
	if k == MatchPrimary {
		return "primary"
	}
	return "synonym"
}

// Match is one search result.
type Match struct {
	Node *taxtree.Node
	Kind MatchKind
}

// Engine binds a tree and a synonym index and holds the navigation state
// for the most recent query.
type Engine struct {
	tree *taxtree.Tree
	idx  *synonym.Index

	matches []Match
	cursor  int

	// OnFocus, when set, is invoked with the newly focused match after
	// every successful search or navigation step.
	OnFocus func(Match)
}

// NewEngine returns an engine over the given tree and synonym index. The
// index may still be loading; queries then skip synonym expansion.
func NewEngine(tree *taxtree.Tree, idx *synonym.Index) *Engine {
	return &Engine{tree: tree, idx: idx}
}

// Search resolves a query and replaces the engine's match state.
//
// A query that parses as an integer present in the tree is an exact-id
// search: the queried id is primary even when it is itself an invalid
// identity, and the rest of its synonym closure joins as synonym matches.
// Anything else is a case-insensitive substring search over node names,
// expanded through synonym name and id closures when the index is ready.
//
// An empty query clears all state and returns nil. Zero matches is a
// valid outcome, not an error.
func (e *Engine) Search(query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		e.Reset()
		return nil
	}

	if id, err := strconv.ParseInt(query, 10, 64); err == nil {
		if _, ok := e.tree.ByID[id]; ok {
			e.setMatches(e.searchID(id))
			return e.matches
		}
	}

	e.setMatches(e.searchName(strings.ToLower(query)))
	return e.matches
}

func (e *Engine) searchID(id int64) []Match {
	out := []Match{{Node: e.tree.ByID[id], Kind: MatchPrimary}}
	if !e.idx.Ready() {
		return out
	}
	it := e.idx.AllIDs(id).Iterator()
	for it.HasNext() {
		sid := int64(it.Next())
		if sid == id {
			continue
		}
		if node, ok := e.tree.ByID[sid]; ok {
			out = append(out, Match{Node: node, Kind: MatchSynonym})
		}
	}
	return out
}

func (e *Engine) searchName(q string) []Match {
	var out []Match
	seen := make(map[int64]struct{})
	add := func(n *taxtree.Node, kind MatchKind) {
		if _, dup := seen[n.ID]; dup {
			return
		}
		seen[n.ID] = struct{}{}
		out = append(out, Match{Node: n, Kind: kind})
	}

	// Direct name matches are always primary.
	e.tree.Root.Walk(func(n *taxtree.Node) {
		if strings.Contains(strings.ToLower(n.Name), q) {
			add(n, MatchPrimary)
		}
	})

	if !e.idx.Ready() {
		return out
	}

	// Nodes reached only through a synonym name in their closure.
	e.tree.Root.Walk(func(n *taxtree.Node) {
		if _, dup := seen[n.ID]; dup {
			return
		}
		for _, name := range e.idx.AllNames(n.ID) {
			if strings.Contains(strings.ToLower(name), q) {
				add(n, MatchSynonym)
				return
			}
		}
	})

	// Id-closure expansion of every primary match. A closure member whose
	// own name also contains the query is promoted to primary; ambiguity
	// resolves in favor of primary.
	primaries := make([]*taxtree.Node, 0, len(out))
	for _, m := range out {
		if m.Kind == MatchPrimary {
			primaries = append(primaries, m.Node)
		}
	}
	for _, p := range primaries {
		it := e.idx.AllIDs(p.ID).Iterator()
		for it.HasNext() {
			sid := int64(it.Next())
			node, ok := e.tree.ByID[sid]
			if !ok {
				continue
			}
			if strings.Contains(strings.ToLower(node.Name), q) {
				add(node, MatchPrimary)
			} else {
				add(node, MatchSynonym)
			}
		}
	}
	return out
}

func (e *Engine) setMatches(matches []Match) {
	e.matches = matches
	e.cursor = 0
	if len(matches) > 0 && e.OnFocus != nil {
		e.OnFocus(matches[0])
	}
}

// Matches returns the current match list.
func (e *Engine) Matches() []Match {
	return e.matches
}

// PrimaryMatchIDs returns the id set of all primary matches.
func (e *Engine) PrimaryMatchIDs() *roaring.Bitmap {
	return e.matchIDs(MatchPrimary)
}

// SynonymMatchIDs returns the id set of all synonym-derived matches.
func (e *Engine) SynonymMatchIDs() *roaring.Bitmap {
	return e.matchIDs(MatchSynonym)
}

func (e *Engine) matchIDs(kind MatchKind) *roaring.Bitmap {
	bm := roaring.New()
	for _, m := range e.matches {
		if m.Kind == kind && m.Node.ID > 0 && m.Node.ID <= math.MaxUint32 {
			bm.Add(uint32(m.Node.ID))
		}
	}
	return bm
}

// Current returns the focused match, or false when there are no matches.
func (e *Engine) Current() (Match, bool) {
	if len(e.matches) == 0 {
		return Match{}, false
	}
	return e.matches[e.cursor], true
}

// Next steps the focus forward, clamped to the last match. It never wraps
// and is a no-op on an empty match list.
func (e *Engine) Next() (Match, bool) {
	return e.step(1)
}

// Prev steps the focus backward, clamped to the first match.
func (e *Engine) Prev() (Match, bool) {
	return e.step(-1)
}

func (e *Engine) step(delta int) (Match, bool) {
	if len(e.matches) == 0 {
		return Match{}, false
	}
	e.cursor += delta
	if e.cursor < 0 {
		e.cursor = 0
	}
	if e.cursor > len(e.matches)-1 {
		e.cursor = len(e.matches) - 1
	}
	m := e.matches[e.cursor]
	if e.OnFocus != nil {
		e.OnFocus(m)
	}
	return m, true
}

// Reset clears the match list and navigation state.
func (e *Engine) Reset() {
	e.matches = nil
	e.cursor = 0
}
