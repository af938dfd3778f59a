package tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/opentaxa/taxtree/api"
	"github.com/opentaxa/taxtree/internal/grouping"
	"github.com/opentaxa/taxtree/internal/ingest"
	"github.com/opentaxa/taxtree/internal/search"
	"github.com/opentaxa/taxtree/internal/synonym"
	"github.com/opentaxa/taxtree/internal/taxtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordsJSON = `[
	{"path_ids": [6171, 7, 100, 1], "path_names": ["Mammalia", "Carnivora", "Felidae", "Felis catus"]},
	{"path_ids": [6171, 7, 110, 3], "path_names": ["Mammalia", "Carnivora", "Canidae", "Canis lupus"]},
	{"path_ids": [6171, 8, 200, 4], "path_names": ["Mammalia", "Rodentia", "Muridae", "Mus musculus"]},
	{"path_ids": [9999, 2], "path_names": ["Other", "Felis domesticus"]}
]`

const synonymsJSON = `[
	{"valid_id": 1, "valid_name": "Felis catus",
	 "synonyms": [{"invalid_id": 2, "invalid_name": "Felis domesticus"}]}
]`

// pipeline runs the whole flow the CLI drives: load records and synonyms
// from files, build, graft, reorder.
func pipeline(t *testing.T) (*taxtree.Tree, *synonym.Index, []api.PathRecord) {
	t.Helper()

	dir := t.TempDir()
	recordsPath := filepath.Join(dir, "records.json")
	synonymsPath := filepath.Join(dir, "synonyms.json")
	require.NoError(t, os.WriteFile(recordsPath, []byte(recordsJSON), 0o644))
	require.NoError(t, os.WriteFile(synonymsPath, []byte(synonymsJSON), 0o644))

	records, err := ingest.LoadRecordsJSON(recordsPath, "")
	require.NoError(t, err)
	require.Len(t, records, 4)

	idx := synonym.NewIndex()
	idx.LoadFrom(func() ([]api.SynonymEntry, error) {
		return ingest.LoadSynonymsJSON(synonymsPath)
	})
	require.True(t, idx.Ready())

	tree := taxtree.Build(records, 6171, "Mammalia")
	taxtree.Graft(tree, idx, taxtree.KnownIDs(records))
	grouping.Reorder(tree.Root, 2)
	return tree, idx, records
}

func TestPipeline_TreeShape(t *testing.T) {
	tree, _, _ := pipeline(t)

	// 9 nodes from the three rooted records plus the grafted synonym.
	assert.Equal(t, 10, tree.Len())

	grafted, ok := tree.ByID[2]
	require.True(t, ok, "synonym 2 should be grafted")
	assert.True(t, grafted.IsSynonym)
	assert.Equal(t, int64(1), grafted.ValidID)
	if p := tree.Parent(2); assert.NotNil(t, p) {
		assert.Equal(t, int64(100), p.ID, "grafted under the valid taxon's parent")
	}

	// ByID stays a bijection with the walked node set.
	walked := 0
	tree.Root.Walk(func(n *taxtree.Node) {
		walked++
		assert.Same(t, n, tree.ByID[n.ID])
	})
	assert.Equal(t, tree.Len(), walked)
}

func TestPipeline_GroupClustering(t *testing.T) {
	tree, _, _ := pipeline(t)

	carnivora := tree.ByID[7]
	require.Len(t, carnivora.Children, 2)
	assert.Equal(t, int64(110), carnivora.Children[0].ID,
		"Canidae subtree sorts before Felidae in the global leaf order")

	assert.Equal(t, "Felidae", tree.ByID[1].GroupKey, "family suffix rule")
	assert.Equal(t, "Canidae", tree.ByID[110].GroupKey, "uniform subtree label")
	assert.Equal(t, "", carnivora.GroupKey, "mixed subtree stays unlabeled")
}

func TestPipeline_Search(t *testing.T) {
	tree, idx, _ := pipeline(t)
	e := search.NewEngine(tree, idx)

	t.Run("name search expands through synonym closure", func(t *testing.T) {
		matches := e.Search("domesticus")
		require.Len(t, matches, 2)
		kinds := map[int64]search.MatchKind{}
		for _, m := range matches {
			kinds[m.Node.ID] = m.Kind
		}
		assert.Equal(t, search.MatchPrimary, kinds[2])
		assert.Equal(t, search.MatchSynonym, kinds[1])
	})

	t.Run("id search marks the queried id primary", func(t *testing.T) {
		matches := e.Search("2")
		require.Len(t, matches, 2)
		assert.Equal(t, int64(2), matches[0].Node.ID)
		assert.Equal(t, search.MatchPrimary, matches[0].Kind)
		assert.True(t, e.SynonymMatchIDs().Contains(1))
	})

	t.Run("navigation walks the match list", func(t *testing.T) {
		matches := e.Search("felis")
		require.Len(t, matches, 2)
		first, ok := e.Current()
		require.True(t, ok)
		second, ok := e.Next()
		require.True(t, ok)
		assert.NotEqual(t, first.Node.ID, second.Node.ID)
	})
}

func TestPipeline_SynonymLoadFailureDegrades(t *testing.T) {
	dir := t.TempDir()
	recordsPath := filepath.Join(dir, "records.json")
	require.NoError(t, os.WriteFile(recordsPath, []byte(recordsJSON), 0o644))

	records, err := ingest.LoadRecordsJSON(recordsPath, "")
	require.NoError(t, err)

	idx := synonym.NewIndex()
	idx.LoadFrom(func() ([]api.SynonymEntry, error) {
		return ingest.LoadSynonymsJSON(filepath.Join(dir, "absent.json"))
	})
	assert.False(t, idx.Ready())

	tree := taxtree.Build(records, 6171, "Mammalia")
	added := taxtree.Graft(tree, idx, taxtree.KnownIDs(records))
	assert.Zero(t, added, "graft degrades to a no-op")
	assert.Equal(t, 9, tree.Len())

	e := search.NewEngine(tree, idx)
	matches := e.Search("Felis catus")
	require.Len(t, matches, 1, "search works without synonym expansion")
	assert.Equal(t, search.MatchPrimary, matches[0].Kind)
}
