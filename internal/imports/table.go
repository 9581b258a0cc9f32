package imports

import (
	"path"
	"strings"
)

// Mapping is one alias pattern with its target directory patterns, as
// written in the configuration. Patterns may carry a trailing `/*`
// wildcard; targets are resolved against the base directory.
type Mapping struct {
	Alias   string
	Targets []string
}

// Entry maps one absolute target directory back to its alias prefix.
// Neither field carries a wildcard marker.
type Entry struct {
	TargetDir string
	Prefix    string
}

// Table is an ordered collection of entries. Insertion order follows
// configuration order; duplicates are kept and the resolver evaluates
// every entry. A Table is never mutated after construction, so it can
// be shared freely between concurrent analyses.
type Table []Entry

// BuildTable normalizes the raw alias mapping into a lookup table.
// One entry is emitted per (alias, target) pair, so an alias with
// several targets yields several entries with the same prefix.
//
// An empty mapping yields an empty table, which makes the whole
// engine a no-op. That is an expected outcome, not an error.
func BuildTable(baseDir string, mappings []Mapping) Table {
	var table Table
	for _, m := range mappings {
		prefix := trimWildcard(m.Alias)
		for _, target := range m.Targets {
			dir := trimWildcard(target)
			if !path.IsAbs(dir) {
				dir = path.Join(baseDir, dir)
			}
			table = append(table, Entry{
				TargetDir: path.Clean(dir),
				Prefix:    prefix,
			})
		}
	}
	return table
}

func trimWildcard(pattern string) string {
	if strings.HasSuffix(pattern, "/*") {
		return pattern[:len(pattern)-2]
	}
	return strings.TrimSuffix(pattern, "*")
}
