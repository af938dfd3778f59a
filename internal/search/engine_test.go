package search

import (
	"testing"

	"github.com/opentaxa/taxtree/api"
	"github.com/opentaxa/taxtree/internal/synonym"
	"github.com/opentaxa/taxtree/internal/taxtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture builds a small grafted tree:
//
//	6171 Mammalia
//	├── 100 Felidae
//	│   ├── 1 Felis catus
//	│   └── 2 Felis domesticus   (grafted synonym of 1)
//	└── 300 Rodentia
func fixture(t *testing.T) (*taxtree.Tree, *synonym.Index) {
	t.Helper()

	records := []api.PathRecord{
		{IDs: []int64{6171, 100, 1}, Names: []string{"Mammalia", "Felidae", "Felis catus"}},
		{IDs: []int64{6171, 300}, Names: []string{"Mammalia", "Rodentia"}},
		{IDs: []int64{9999, 2}, Names: []string{"Other", "Felis domesticus"}},
	}
	idx := synonym.NewIndex()
	idx.Load([]api.SynonymEntry{{
		ValidID:   1,
		ValidName: "Felis catus",
		Synonyms:  []api.Synonym{{InvalidID: 2, InvalidName: "Felis domesticus"}},
	}})

	tree := taxtree.Build(records, 6171, "Mammalia")
	taxtree.Graft(tree, idx, taxtree.KnownIDs(records))
	return tree, idx
}

func TestSearch_UniqueNameIsSinglePrimary(t *testing.T) {
	tree, idx := fixture(t)
	e := NewEngine(tree, idx)

	matches := e.Search("Rodentia")
	require.Len(t, matches, 1)
	assert.Equal(t, int64(300), matches[0].Node.ID)
	assert.Equal(t, MatchPrimary, matches[0].Kind)
}

func TestSearch_ExactIDMarksQueriedIDPrimary(t *testing.T) {
	tree, idx := fixture(t)
	e := NewEngine(tree, idx)

	// Querying the invalid id: the queried node is primary even though it
	// is itself a synonym; the valid counterpart joins as a synonym match.
	matches := e.Search("2")
	require.Len(t, matches, 2)
	assert.Equal(t, int64(2), matches[0].Node.ID)
	assert.Equal(t, MatchPrimary, matches[0].Kind)
	assert.Equal(t, int64(1), matches[1].Node.ID)
	assert.Equal(t, MatchSynonym, matches[1].Kind)

	assert.True(t, e.PrimaryMatchIDs().Contains(2))
	assert.True(t, e.SynonymMatchIDs().Contains(1))
}

func TestSearch_ExactIDWithoutIndex(t *testing.T) {
	tree, _ := fixture(t)
	e := NewEngine(tree, synonym.NewIndex())

	matches := e.Search("1")
	require.Len(t, matches, 1, "not-ready index: only the exact node")
	assert.Equal(t, MatchPrimary, matches[0].Kind)
}

func TestSearch_NameExpandsThroughSynonyms(t *testing.T) {
	tree, idx := fixture(t)
	e := NewEngine(tree, idx)

	t.Run("synonym-name-only hits come back as synonym matches", func(t *testing.T) {
		matches := e.Search("domesticus")
		require.Len(t, matches, 2)

		kinds := map[int64]MatchKind{}
		for _, m := range matches {
			kinds[m.Node.ID] = m.Kind
		}
		// Node 2's own name contains the query: primary. Node 1 is
		// reached only through its synonym-name closure: synonym.
		assert.Equal(t, MatchPrimary, kinds[2])
		assert.Equal(t, MatchSynonym, kinds[1])
	})

	t.Run("both closure members matching by own name are primary", func(t *testing.T) {
		matches := e.Search("felis")
		require.Len(t, matches, 2)
		for _, m := range matches {
			assert.Equal(t, MatchPrimary, m.Kind, "node %d", m.Node.ID)
		}
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		matches := e.Search("FELIDAE")
		require.Len(t, matches, 1)
		assert.Equal(t, int64(100), matches[0].Node.ID)
	})
}

func TestSearch_NumericQueryNotInTreeFallsBackToNames(t *testing.T) {
	tree, idx := fixture(t)
	e := NewEngine(tree, idx)

	matches := e.Search("12345")
	assert.Empty(t, matches, "no node id and no name contains the digits")
}

func TestSearch_EmptyQueryClearsState(t *testing.T) {
	tree, idx := fixture(t)
	e := NewEngine(tree, idx)

	require.NotEmpty(t, e.Search("felis"))
	assert.Nil(t, e.Search("  "))
	assert.Empty(t, e.Matches())
	_, ok := e.Current()
	assert.False(t, ok)
}

func TestSearch_ZeroMatchesIsNotAnError(t *testing.T) {
	tree, idx := fixture(t)
	e := NewEngine(tree, idx)

	assert.Empty(t, e.Search("zzz-no-such-taxon"))
	assert.True(t, e.PrimaryMatchIDs().IsEmpty())
}

func TestNavigation_ClampsWithoutWrapping(t *testing.T) {
	tree, idx := fixture(t)
	e := NewEngine(tree, idx)

	var focused []int64
	e.OnFocus = func(m Match) { focused = append(focused, m.Node.ID) }

	matches := e.Search("felis")
	require.Len(t, matches, 2)

	cur, ok := e.Current()
	require.True(t, ok)
	first := cur.Node.ID

	next, ok := e.Next()
	require.True(t, ok)
	assert.NotEqual(t, first, next.Node.ID)

	again, _ := e.Next()
	assert.Equal(t, next.Node.ID, again.Node.ID, "must clamp at the end, not wrap")

	back, _ := e.Prev()
	assert.Equal(t, first, back.Node.ID)
	back2, _ := e.Prev()
	assert.Equal(t, first, back2.Node.ID, "must clamp at the start")

	assert.NotEmpty(t, focused, "navigation emits focus events")
}

func TestNavigation_EmptyMatchListIsSafe(t *testing.T) {
	tree, idx := fixture(t)
	e := NewEngine(tree, idx)

	_, ok := e.Next()
	assert.False(t, ok)
	_, ok = e.Prev()
	assert.False(t, ok)
}
