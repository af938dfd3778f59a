// Package config loads the taxtree HCL configuration file. Every field is
// optional; flags on the CLI override anything set here.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Config is the on-disk configuration shape (taxtree.hcl).
type Config struct {
	RootID         int64  `hcl:"root_id,optional"`
	RootName       string `hcl:"root_name,optional"`
	GroupDepth     int    `hcl:"group_depth,optional"`
	Records        string `hcl:"records,optional"`
	Synonyms       string `hcl:"synonyms,optional"`
	RecordSelector string `hcl:"record_selector,optional"`
}

// Default returns the built-in configuration: the Mammalia subtree with
// the standard family-level group depth.
func Default() Config {
	return Config{
		RootID:         179913,
		RootName:       "Mammalia",
		GroupDepth:     4,
		RecordSelector: "$[*]",
	}
}

// Load reads an HCL config file over the defaults. A missing path returns
// the defaults unchanged; a present but unparsable file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, fmt.Errorf("stat config: %w", err)
	}
	var file Config
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if file.RootID != 0 {
		cfg.RootID = file.RootID
	}
	if file.RootName != "" {
		cfg.RootName = file.RootName
	}
	if file.GroupDepth > 0 {
		cfg.GroupDepth = file.GroupDepth
	}
	if file.Records != "" {
		cfg.Records = file.Records
	}
	if file.Synonyms != "" {
		cfg.Synonyms = file.Synonyms
	}
	if file.RecordSelector != "" {
		cfg.RecordSelector = file.RecordSelector
	}
	return cfg, nil
}
