package fixer

import (
	"fmt"
	"os"
	"sort"

	tt "github.com/implint/implint/internal/types"
)

// Fixer rewrites import specifiers in place. Each issue's span covers
// the quoted literal; the fix splices in the suggestion between the
// original quote characters, so quoting style survives the rewrite.
type Fixer struct {
	DryRun        bool
	MinConfidence float64 // threshold for fixing issues
}

func New(dryRun bool, threshold float64) *Fixer {
	return &Fixer{
		DryRun:        dryRun,
		MinConfidence: threshold,
	}
}

// Fix applies every applicable suggestion to the file. Issues are
// applied from the highest offset down so earlier spans stay valid.
func (f *Fixer) Fix(filename string, issues []tt.Issue) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	sort.Slice(issues, func(i, j int) bool {
		return issues[i].Start.Offset > issues[j].Start.Offset
	})

	fixed := 0
	for _, issue := range issues {
		if issue.Confidence < f.MinConfidence || issue.Suggestion == "" {
			continue
		}

		if f.DryRun {
			fmt.Printf("Would fix issue in %s at line %d: %s\n", filename, issue.Start.Line, issue.Message)
			fmt.Printf("Suggestion: %s\n", issue.Suggestion)
			continue
		}

		replaced, ok := spliceSpecifier(content, issue.Start.Offset, issue.End.Offset, issue.Suggestion)
		if !ok {
			continue // the span no longer holds a quoted literal
		}
		content = replaced
		fixed++
	}

	if f.DryRun {
		return nil
	}

	if err := os.WriteFile(filename, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if fixed > 0 {
		fmt.Printf("Fixed %d issues in %s\n", fixed, filename)
	}
	return nil
}

// spliceSpecifier replaces the quoted literal at [start, end) with
// the suggestion wrapped in the original quote character.
func spliceSpecifier(content []byte, start, end int, suggestion string) ([]byte, bool) {
	if start < 0 || end > len(content) || end-start < 2 {
		return nil, false
	}
	quote := content[start]
	if (quote != '"' && quote != '\'') || content[end-1] != quote {
		return nil, false
	}

	replacement := string(quote) + suggestion + string(quote)
	out := make([]byte, 0, len(content)-(end-start)+len(replacement))
	out = append(out, content[:start]...)
	out = append(out, replacement...)
	out = append(out, content[end:]...)
	return out, true
}
