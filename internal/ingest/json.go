package ingest

import (
	"fmt"
	"log"
	"os"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/opentaxa/taxtree/api"
)

// DefaultRecordSelector extracts every element of a top-level array.
const DefaultRecordSelector = "$[*]"

// LoadRecordsJSON reads a JSON document and extracts path records from it
// using a JSONPath selector (DefaultRecordSelector when empty). Rows that
// do not map to a record are logged and skipped.
func LoadRecordsJSON(path, selector string) ([]api.PathRecord, error) {
	values, err := queryJSONFile(path, selector)
	if err != nil {
		return nil, err
	}

	records := make([]api.PathRecord, 0, len(values))
	skipped := 0
	for _, v := range values {
		rec, ok := RecordFromValue(v)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if skipped > 0 {
		log.Printf("ingest: %s: skipped %d rows without a usable id path", path, skipped)
	}
	return records, nil
}

// LoadSynonymsJSON reads a JSON document holding synonym entries, either
// as a top-level array or under a "synonyms" key.
func LoadSynonymsJSON(path string) ([]api.SynonymEntry, error) {
	values, err := queryJSONFile(path, "$[*]")
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		if values, err = queryJSONFile(path, "$.synonyms[*]"); err != nil {
			return nil, err
		}
	}

	entries := make([]api.SynonymEntry, 0, len(values))
	for _, v := range values {
		if entry, ok := EntryFromValue(v); ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func queryJSONFile(path, selector string) ([]any, error) {
	if selector == "" {
		selector = DefaultRecordSelector
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := oj.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse json %s: %w", path, err)
	}
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath %q: %w", selector, err)
	}
	return x.Get(doc), nil
}
