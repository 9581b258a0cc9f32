package lints

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/implint/implint/internal/imports"
	tt "github.com/implint/implint/internal/types"
)

// DetectShortestImport flags import specifiers for which a shorter,
// semantically equivalent spelling exists under the alias table:
// relative paths that an alias would shorten, and aliased paths that
// a relative path would shorten. An empty table makes this a no-op.
func DetectShortestImport(
	filename string,
	src []byte,
	table imports.Table,
	opts imports.Options,
	policy imports.Policy,
) ([]tt.Issue, error) {
	if len(table) == 0 {
		return nil, nil
	}

	// the table holds absolute directories, so the file's directory
	// must be absolute too even when the caller passed a relative path
	abs := filename
	if !filepath.IsAbs(abs) {
		if a, err := filepath.Abs(abs); err == nil {
			abs = a
		}
	}
	fileDir := path.Dir(filepath.ToSlash(abs))
	var issues []tt.Issue
	for _, spec := range ScanSpecifiers(src) {
		original := imports.NewForm(spec.Text)

		var alt *imports.Form
		if original.Kind == imports.KindRelative {
			if form, ok := imports.AliasCandidate(table, fileDir, spec.Text, opts); ok {
				alt = &form
			}
		} else {
			if form, ok := imports.RelativeCandidate(table, fileDir, spec.Text, opts); ok {
				alt = &form
			}
		}

		verdict := imports.Decide(original, alt, policy)
		if !verdict.Replace {
			continue
		}

		issues = append(issues, tt.Issue{
			Rule:     "shortest-import",
			Category: "imports",
			Filename: filename,
			Message: fmt.Sprintf(
				"import %q can be written as %q (%d segments instead of %d)",
				spec.Text, verdict.Alternative.Text,
				verdict.Alternative.Segments, original.Segments,
			),
			Suggestion: verdict.Alternative.Text,
			Start:      spec.Start,
			End:        spec.End,
			Confidence: 1.0,
		})
	}
	return issues, nil
}
