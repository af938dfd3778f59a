package ingest

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/ohler55/ojg/oj"
	"github.com/opentaxa/taxtree/api"
	_ "modernc.org/sqlite"
)

// StreamRecordsSQLite iterates over all path records in a SQLite store,
// calling fn for each one. Rows hold one JSON object each in the records
// table; only one parsed record is alive at a time. Rows that fail to
// parse or map are logged and skipped.
func StreamRecordsSQLite(dbPath string, fn func(api.PathRecord) error) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }() // safe to ignore

	rows, err := db.Query("SELECT id, record FROM records")
	if err != nil {
		return fmt.Errorf("query records: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
		parsed, err := oj.ParseString(raw)
		if err != nil {
			log.Printf("ingest: record %s: bad json, skipped: %v", id, err)
			continue
		}
		rec, ok := RecordFromValue(parsed)
		if !ok {
			log.Printf("ingest: record %s: no usable id path, skipped", id)
			continue
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return rows.Err()
}

// LoadRecordsSQLite reads the whole records table into a slice. Prefer
// StreamRecordsSQLite for large stores.
func LoadRecordsSQLite(dbPath string) ([]api.PathRecord, error) {
	var records []api.PathRecord
	err := StreamRecordsSQLite(dbPath, func(rec api.PathRecord) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// LoadSynonymsSQLite reads all synonym entries from the synonyms table of
// a SQLite store, one JSON object per row.
func LoadSynonymsSQLite(dbPath string) ([]api.SynonymEntry, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }() // safe to ignore

	rows, err := db.Query("SELECT record FROM synonyms")
	if err != nil {
		return nil, fmt.Errorf("query synonyms: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	var entries []api.SynonymEntry
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		parsed, err := oj.ParseString(raw)
		if err != nil {
			log.Printf("ingest: synonym row: bad json, skipped: %v", err)
			continue
		}
		if entry, ok := EntryFromValue(parsed); ok {
			entries = append(entries, entry)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return entries, nil
}
