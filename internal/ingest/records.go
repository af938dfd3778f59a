// Package ingest loads path records and synonym entries from external
// sources: JSON documents (records extracted via JSONPath) and SQLite
// stores holding one JSON blob per row. Malformed rows are logged and
// skipped; loading is never fatal for a single bad record.
package ingest

import (
	"strconv"
	"strings"

	"github.com/opentaxa/taxtree/api"
	"github.com/opentaxa/taxtree/internal/pathcodec"
)

// field key spellings seen across upstream exports
var (
	idPathKeys   = []string{"path_ids", "taxonomy_ids", "ids"}
	namePathKeys = []string{"path_names", "taxonomy_names", "names"}
)

// RecordFromValue maps one decoded JSON value to a PathRecord. The id and
// name path fields go through pathcodec, so any of the supported raw
// encodings is accepted. Unknown fields are preserved in Extra. Returns
// false when the value is not an object or yields no ids.
func RecordFromValue(v any) (api.PathRecord, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return api.PathRecord{}, false
	}

	var rec api.PathRecord
	usedID, usedName := "", ""
	for _, k := range idPathKeys {
		if raw, present := m[k]; present {
			rec.IDs = pathcodec.ParseIDPath(raw)
			usedID = k
			break
		}
	}
	for _, k := range namePathKeys {
		if raw, present := m[k]; present {
			rec.Names = pathcodec.ParseNamePath(raw)
			usedName = k
			break
		}
	}
	if len(rec.IDs) == 0 {
		return api.PathRecord{}, false
	}

	for k, val := range m {
		if k == usedID || k == usedName {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]any)
		}
		rec.Extra[k] = val
	}
	return rec, true
}

// EntryFromValue maps one decoded JSON value to a SynonymEntry.
func EntryFromValue(v any) (api.SynonymEntry, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return api.SynonymEntry{}, false
	}

	entry := api.SynonymEntry{
		ValidID:     intField(m, "valid_id", "validId", "tsn"),
		ValidName:   strField(m, "valid_name", "validName"),
		TaxaGroupID: intField(m, "taxagroupid", "taxa_group_id"),
	}
	if entry.ValidID == 0 {
		return api.SynonymEntry{}, false
	}

	raw, _ := m["synonyms"].([]any)
	for _, sv := range raw {
		sm, ok := sv.(map[string]any)
		if !ok {
			continue
		}
		syn := api.Synonym{
			InvalidID:          intField(sm, "invalid_id", "invalidId", "tsn"),
			InvalidName:        strField(sm, "invalid_name", "invalidName"),
			SynonymType:        strField(sm, "synonym_type", "synonymType"),
			RecordModifiedDate: strField(sm, "record_modified_date", "recordModifiedDate"),
		}
		if syn.InvalidID == 0 {
			continue
		}
		entry.Synonyms = append(entry.Synonyms, syn)
	}
	return entry, true
}

func intField(m map[string]any, keys ...string) int64 {
	for _, k := range keys {
		switch v := m[k].(type) {
		case int64:
			return v
		case int:
			return int64(v)
		case float64:
			return int64(v)
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				return n
			}
		}
	}
	return 0
}

func strField(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
