package imports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentCount(t *testing.T) {
	t.Parallel()
	tests := []struct {
		spec     string
		expected int
	}{
		{"./foo", 1},
		{"../bar/baz", 3},
		{"@components/Button", 2},
		{"@/components/Button", 3},
		{"@utils", 1},
		{"a/b/c", 3},
		{"./foo/bar", 2},
		{"../../utils/helpers", 4},
		{"./", 0},
		{"react", 1},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.expected, SegmentCount(tt.spec))
		})
	}
}

func TestIsRelative(t *testing.T) {
	t.Parallel()
	assert.True(t, IsRelative("./foo"))
	assert.True(t, IsRelative("../foo"))
	assert.False(t, IsRelative("@utils/foo"))
	assert.False(t, IsRelative("react"))
	assert.False(t, IsRelative("@scope/pkg"))
}

func TestAliasCandidate(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()

	tests := []struct {
		name     string
		table    Table
		fileDir  string
		spec     string
		expected string
		found    bool
	}{
		{
			name:     "deep relative import maps onto alias",
			table:    BuildTable("/src", []Mapping{{Alias: "@utils/*", Targets: []string{"./utils/*"}}}),
			fileDir:  "/src/features/auth",
			spec:     "../../utils/helpers",
			expected: "@utils/helpers",
			found:    true,
		},
		{
			name:     "sibling import outside any target",
			table:    BuildTable("/src", []Mapping{{Alias: "@utils/*", Targets: []string{"./utils/*"}}}),
			fileDir:  "/src/components",
			spec:     "./Button",
			found:    false,
		},
		{
			name:     "extension is stripped before matching",
			table:    BuildTable("/src", []Mapping{{Alias: "@utils/*", Targets: []string{"./utils/*"}}}),
			fileDir:  "/src/app",
			spec:     "../utils/format.ts",
			expected: "@utils/format",
			found:    true,
		},
		{
			name:     "trailing index segment collapses",
			table:    BuildTable("/src", []Mapping{{Alias: "@utils/*", Targets: []string{"./utils/*"}}}),
			fileDir:  "/src/app",
			spec:     "../utils/date/index",
			expected: "@utils/date",
			found:    true,
		},
		{
			name:     "import of the target directory itself",
			table:    BuildTable("/src", []Mapping{{Alias: "@utils/*", Targets: []string{"./utils/*"}}}),
			fileDir:  "/src/app",
			spec:     "../utils",
			expected: "@utils",
			found:    true,
		},
		{
			name: "fewest segments wins across entries",
			table: BuildTable("/src", []Mapping{
				{Alias: "@/*", Targets: []string{"./*"}},
				{Alias: "@utils/*", Targets: []string{"./utils/*"}},
			}),
			fileDir:  "/src/app",
			spec:     "../utils/helpers",
			expected: "@utils/helpers",
			found:    true,
		},
		{
			name: "first-built entry wins a segment tie",
			table: BuildTable("/src", []Mapping{
				{Alias: "@first/*", Targets: []string{"./shared/*"}},
				{Alias: "@second/*", Targets: []string{"./shared/*"}},
			}),
			fileDir:  "/src/app",
			spec:     "../shared/thing",
			expected: "@first/thing",
			found:    true,
		},
		{
			name:     "segment boundary, not substring",
			table:    BuildTable("/src", []Mapping{{Alias: "@utils/*", Targets: []string{"./utils/*"}}}),
			fileDir:  "/src/app",
			spec:     "../utilsExtra/helpers",
			found:    false,
		},
		{
			name:    "empty table never matches",
			table:   nil,
			fileDir: "/src/app",
			spec:    "../utils/helpers",
			found:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form, ok := AliasCandidate(tt.table, tt.fileDir, tt.spec, opts)
			require.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.expected, form.Text)
				assert.Equal(t, KindAliased, form.Kind)
				assert.Equal(t, SegmentCount(tt.expected), form.Segments)
			}
		})
	}
}

func TestRelativeCandidate(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()

	tests := []struct {
		name     string
		table    Table
		fileDir  string
		spec     string
		expected string
		found    bool
	}{
		{
			name:     "alias resolving into a sibling",
			table:    BuildTable("/src", []Mapping{{Alias: "@/*", Targets: []string{"./*"}}}),
			fileDir:  "/src/components",
			spec:     "@/components/Button",
			expected: "./Button",
			found:    true,
		},
		{
			name:     "alias resolving to a parent walk",
			table:    BuildTable("/src", []Mapping{{Alias: "@utils/*", Targets: []string{"./utils/*"}}}),
			fileDir:  "/src/features/auth",
			spec:     "@utils/helpers",
			expected: "../../utils/helpers",
			found:    true,
		},
		{
			name:    "external package matches nothing",
			table:   BuildTable("/src", []Mapping{{Alias: "@utils/*", Targets: []string{"./utils/*"}}}),
			fileDir: "/src/app",
			spec:    "react",
			found:   false,
		},
		{
			name:    "scoped package matches nothing",
			table:   BuildTable("/src", []Mapping{{Alias: "@utils/*", Targets: []string{"./utils/*"}}}),
			fileDir: "/src/app",
			spec:    "@angular/core",
			found:   false,
		},
		{
			name:     "bare alias resolves to the target directory",
			table:    BuildTable("/src", []Mapping{{Alias: "@utils/*", Targets: []string{"./utils/*"}}}),
			fileDir:  "/src",
			spec:     "@utils",
			expected: "./utils",
			found:    true,
		},
		{
			name:     "index segment collapses in the relative form",
			table:    BuildTable("/src", []Mapping{{Alias: "@utils/*", Targets: []string{"./utils/*"}}}),
			fileDir:  "/src/app",
			spec:     "@utils/date/index",
			expected: "../utils/date",
			found:    true,
		},
		{
			name: "fewest segments wins across targets",
			table: BuildTable("/src", []Mapping{
				{Alias: "@shared/*", Targets: []string{"./far/away/shared/*", "./app/shared/*"}},
			}),
			fileDir:  "/src/app",
			spec:     "@shared/thing",
			expected: "./shared/thing",
			found:    true,
		},
		{
			name:    "prefix match respects segment boundary",
			table:   BuildTable("/src", []Mapping{{Alias: "@utils/*", Targets: []string{"./utils/*"}}}),
			fileDir: "/src/app",
			spec:    "@utilsExtra/helpers",
			found:   false,
		},
		{
			name:    "file inside the target directory yields nothing",
			table:   BuildTable("/src", []Mapping{{Alias: "@utils/*", Targets: []string{"./utils/*"}}}),
			fileDir: "/src/utils",
			spec:    "@utils",
			found:   false,
		},
		{
			name:     "file below the target directory walks up one level",
			table:    BuildTable("/src", []Mapping{{Alias: "@utils/*", Targets: []string{"./utils/*"}}}),
			fileDir:  "/src/utils/date",
			spec:     "@utils",
			expected: "..",
			found:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form, ok := RelativeCandidate(tt.table, tt.fileDir, tt.spec, opts)
			require.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.expected, form.Text)
				assert.Equal(t, KindRelative, form.Kind)
			}
		})
	}
}

// Resolving the same absolute location through either form must offer
// the opposite form whenever the table covers it.
func TestCandidateSymmetry(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()
	table := BuildTable("/src", []Mapping{{Alias: "@utils/*", Targets: []string{"./utils/*"}}})
	fileDir := "/src/features/auth"

	aliased, ok := AliasCandidate(table, fileDir, "../../utils/helpers", opts)
	require.True(t, ok)
	assert.Equal(t, "@utils/helpers", aliased.Text)

	relative, ok := RelativeCandidate(table, fileDir, aliased.Text, opts)
	require.True(t, ok)
	assert.Equal(t, "../../utils/helpers", relative.Text)
}

func TestRelativePath(t *testing.T) {
	t.Parallel()
	tests := []struct {
		from     string
		to       string
		expected string
	}{
		{"/src/components", "/src/components/Button", "Button"},
		{"/src/features/auth", "/src/utils/helpers", "../../utils/helpers"},
		{"/src", "/src", "."},
		{"/src/a", "/other/b", "../../other/b"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, relativePath(tt.from, tt.to))
		})
	}
}
