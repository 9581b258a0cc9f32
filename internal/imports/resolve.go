package imports

import (
	"path"
	"strings"
)

// Options carries the policy constants of the resolver: which file
// extensions are considered equivalent and strippable (in priority
// order), and the base name of an index file, importing which is the
// same as importing its directory.
type Options struct {
	Extensions []string
	IndexBase  string
}

// DefaultOptions returns the conventional TypeScript/JavaScript setup.
func DefaultOptions() Options {
	return Options{
		Extensions: []string{".ts", ".tsx", ".js", ".jsx"},
		IndexBase:  "index",
	}
}

// IsRelative reports whether spec is a relative specifier. A leading
// dot covers both the `./` and `../` forms; everything else, scoped
// package names included, is aliased-or-external.
func IsRelative(spec string) bool {
	return strings.HasPrefix(spec, ".")
}

// SegmentCount counts the slash-delimited segments of a specifier.
// A single leading `./` is stripped, empty and `.` segments are
// discarded, and `..` segments are kept. A bare token counts as 1.
func SegmentCount(spec string) int {
	spec = strings.TrimPrefix(spec, "./")
	n := 0
	for _, seg := range strings.Split(spec, "/") {
		if seg == "" || seg == "." {
			continue
		}
		n++
	}
	return n
}

// AliasCandidate computes the best aliased form for a relative
// specifier written in a file under fileDir. It returns false when no
// table entry covers the path the specifier denotes.
//
// Every entry whose target directory is a segment-boundary prefix of
// the resolved path produces a candidate; the one with the fewest
// segments wins, and on a segment tie the first-built entry wins.
func AliasCandidate(table Table, fileDir, spec string, opts Options) (Form, bool) {
	abs := path.Join(fileDir, spec)
	abs = stripExtension(abs, opts)

	var best Form
	found := false
	for _, e := range table {
		remainder, ok := pathWithin(e.TargetDir, abs)
		if !ok {
			continue
		}
		candidate := e.Prefix
		if remainder != "" {
			candidate = e.Prefix + "/" + remainder
		}
		candidate = stripIndex(candidate, opts)
		if n := SegmentCount(candidate); !found || n < best.Segments {
			best = Form{Text: candidate, Segments: n, Kind: KindAliased}
			found = true
		}
	}
	return best, found
}

// RelativeCandidate computes the best relative form for an aliased
// specifier written in a file under fileDir. Specifiers matching no
// configured prefix, plain external package names included, yield no
// candidate, and so does an alias resolving to fileDir itself: a bare
// "." carries zero segments and is never offered as a replacement.
// The tie-break mirrors AliasCandidate: fewest segments, first-built
// entry on a tie.
func RelativeCandidate(table Table, fileDir, spec string, opts Options) (Form, bool) {
	var best Form
	found := false
	for _, e := range table {
		remainder, ok := prefixMatch(e.Prefix, spec)
		if !ok {
			continue
		}
		abs := e.TargetDir
		if remainder != "" {
			abs = e.TargetDir + "/" + remainder
		}
		rel := relativePath(fileDir, abs)
		rel = stripExtension(rel, opts)
		rel = stripIndex(rel, opts)
		if !strings.HasPrefix(rel, ".") {
			rel = "./" + rel
		}
		n := SegmentCount(rel)
		if n < 1 {
			continue
		}
		if !found || n < best.Segments {
			best = Form{Text: rel, Segments: n, Kind: KindRelative}
			found = true
		}
	}
	return best, found
}

// pathWithin reports whether p lies inside dir, matching on whole
// path segments rather than raw substrings. The returned remainder is
// empty when p is dir itself.
func pathWithin(dir, p string) (string, bool) {
	if p == dir {
		return "", true
	}
	if strings.HasPrefix(p, dir+"/") {
		return p[len(dir)+1:], true
	}
	return "", false
}

// prefixMatch reports whether spec starts with the alias prefix on a
// segment boundary and returns the remainder after it.
func prefixMatch(prefix, spec string) (string, bool) {
	if prefix == "" {
		return spec, spec != ""
	}
	if spec == prefix {
		return "", true
	}
	if strings.HasPrefix(spec, prefix+"/") {
		return spec[len(prefix)+1:], true
	}
	return "", false
}

func stripExtension(p string, opts Options) string {
	for _, ext := range opts.Extensions {
		if strings.HasSuffix(p, ext) {
			return p[:len(p)-len(ext)]
		}
	}
	return p
}

// stripIndex drops a trailing index segment: importing a directory's
// index file and importing the directory are equivalent.
func stripIndex(spec string, opts Options) string {
	if opts.IndexBase == "" {
		return spec
	}
	return strings.TrimSuffix(spec, "/"+opts.IndexBase)
}

// relativePath computes the slash-separated relative path from the
// directory `from` to the target `to`. Both must be absolute. This is
// pure segment arithmetic; specifiers always use forward slashes, so
// the platform path package has no say here.
func relativePath(from, to string) string {
	fromSegs := splitSegments(from)
	toSegs := splitSegments(to)

	common := 0
	for common < len(fromSegs) && common < len(toSegs) && fromSegs[common] == toSegs[common] {
		common++
	}

	var parts []string
	for i := common; i < len(fromSegs); i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, toSegs[common:]...)
	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}

func splitSegments(p string) []string {
	var segs []string
	for _, seg := range strings.Split(path.Clean(p), "/") {
		if seg == "" || seg == "." {
			continue
		}
		segs = append(segs, seg)
	}
	return segs
}
