package api

// PathRecord is one flat taxonomy row: the full ancestor chain from the
// configured root down to a single taxon, root-first. IDs and Names are
// index-aligned and the same length. Fields the core does not understand
// are carried in Extra untouched.
type PathRecord struct {
	IDs   []int64        `json:"path_ids"`
	Names []string       `json:"path_names"`
	Extra map[string]any `json:"-"`
}

// Leaf returns the terminal (id, name) pair of the record, or (0, "")
// for an empty record.
func (r PathRecord) Leaf() (int64, string) {
	if len(r.IDs) == 0 {
		return 0, ""
	}
	name := ""
	if len(r.Names) == len(r.IDs) {
		name = r.Names[len(r.Names)-1]
	}
	return r.IDs[len(r.IDs)-1], name
}

// Synonym is one deprecated identity attached to a valid taxon.
type Synonym struct {
	InvalidID          int64  `json:"invalid_id"`
	InvalidName        string `json:"invalid_name"`
	SynonymType        string `json:"synonym_type,omitempty"`
	RecordModifiedDate string `json:"record_modified_date,omitempty"`
}

// SynonymEntry maps one valid taxon to the set of invalid identities
// that resolve to it.
type SynonymEntry struct {
	ValidID     int64     `json:"valid_id"`
	ValidName   string    `json:"valid_name"`
	TaxaGroupID int64     `json:"taxagroupid,omitempty"`
	Synonyms    []Synonym `json:"synonyms,omitempty"`
}
