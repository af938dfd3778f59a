// Package grouping derives family-level grouping labels for leaves and
// reorders sibling nodes so leaves cluster by group, the standard
// crossing-minimization heuristic for radial layouts.
package grouping

import "strings"

// DefaultGroupDepth is the fixed-depth fallback used when a path carries
// no family-suffix name.
const DefaultGroupDepth = 4

// familySuffix is the zoological family-name convention ("Felidae",
// "Canidae", ...). Suffix detection outranks the fixed-depth fallback
// because taxonomic depth to family level is inconsistent across lineages.
const familySuffix = "idae"

// GroupKey derives the grouping label for a leaf from its root-to-leaf
// name path. Resolution order: first family-suffix name scanning from leaf
// toward root; else the name at groupDepth when the path is deep enough;
// else the second-to-last name; else the only name; "Unknown" for an
// empty path.
func GroupKey(pathNames []string, groupDepth int) string {
	if len(pathNames) == 0 {
		return "Unknown"
	}
	for i := len(pathNames) - 1; i >= 0; i-- {
		if strings.HasSuffix(strings.ToLower(pathNames[i]), familySuffix) {
			return pathNames[i]
		}
	}
	if groupDepth >= 0 && len(pathNames) > groupDepth {
		return pathNames[groupDepth]
	}
	if len(pathNames) >= 2 {
		return pathNames[len(pathNames)-2]
	}
	return pathNames[0]
}
