package lints

import (
	"fmt"
	"path"
	"strings"

	"github.com/implint/implint/internal/imports"
	tt "github.com/implint/implint/internal/types"
)

// DetectUselessPathSegments flags relative specifiers that clean to
// a shorter form once `.`/`..` detours and trailing slashes are
// removed, e.g. `./foo/../bar` for `./bar`. Aliased and external
// specifiers are left alone.
func DetectUselessPathSegments(filename string, src []byte) ([]tt.Issue, error) {
	var issues []tt.Issue
	for _, spec := range ScanSpecifiers(src) {
		if !imports.IsRelative(spec.Text) {
			continue
		}

		cleaned := path.Clean(spec.Text)
		if !strings.HasPrefix(cleaned, ".") {
			cleaned = "./" + cleaned
		}
		if cleaned == spec.Text {
			continue
		}

		issues = append(issues, tt.Issue{
			Rule:     "useless-path-segments",
			Category: "imports",
			Filename: filename,
			Message: fmt.Sprintf(
				"import %q has useless path segments, use %q",
				spec.Text, cleaned,
			),
			Suggestion: cleaned,
			Start:      spec.Start,
			End:        spec.End,
			Confidence: 1.0,
		})
	}
	return issues, nil
}
