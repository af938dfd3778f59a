package cmd

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/opentaxa/taxtree/api"
	"github.com/opentaxa/taxtree/internal/config"
	"github.com/opentaxa/taxtree/internal/grouping"
	"github.com/opentaxa/taxtree/internal/ingest"
	"github.com/opentaxa/taxtree/internal/synonym"
	"github.com/opentaxa/taxtree/internal/taxtree"
)

// resolveConfig loads the HCL config (if any) and layers flag overrides
// on top.
func resolveConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if recordsPath != "" {
		cfg.Records = recordsPath
	}
	if synonymsPath != "" {
		cfg.Synonyms = synonymsPath
	}
	if rootID != 0 {
		cfg.RootID = rootID
	}
	if rootName != "" {
		cfg.RootName = rootName
	}
	if groupDepth > 0 {
		cfg.GroupDepth = groupDepth
	}
	if cfg.Records == "" {
		return cfg, fmt.Errorf("no records source: set --records or the records entry in the config file")
	}
	return cfg, nil
}

func loadRecords(cfg config.Config) ([]api.PathRecord, error) {
	if filepath.Ext(cfg.Records) == ".db" {
		return ingest.LoadRecordsSQLite(cfg.Records)
	}
	return ingest.LoadRecordsJSON(cfg.Records, cfg.RecordSelector)
}

func loadSynonyms(path string) ([]api.SynonymEntry, error) {
	if filepath.Ext(path) == ".db" {
		return ingest.LoadSynonymsSQLite(path)
	}
	return ingest.LoadSynonymsJSON(path)
}

// assemble runs the full pipeline: records in, synonym index loaded
// concurrently with tree construction, then graft and sibling reordering.
// A synonym load failure degrades to an index that never becomes ready;
// the tree is still built and returned.
func assemble(cfg config.Config) (*taxtree.Tree, *synonym.Index, int, error) {
	records, err := loadRecords(cfg)
	if err != nil {
		return nil, nil, 0, err
	}

	idx := synonym.NewIndex()
	var wg sync.WaitGroup
	if cfg.Synonyms != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			idx.LoadFrom(func() ([]api.SynonymEntry, error) {
				return loadSynonyms(cfg.Synonyms)
			})
		}()
	}

	tree := taxtree.Build(records, cfg.RootID, cfg.RootName)
	wg.Wait()

	grafted := taxtree.Graft(tree, idx, taxtree.KnownIDs(records))
	grouping.Reorder(tree.Root, cfg.GroupDepth)
	return tree, idx, grafted, nil
}
