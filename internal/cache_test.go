package internal

import (
	"os"
	"path/filepath"
	"testing"

	tt "github.com/implint/implint/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCacheRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	source := filepath.Join(dir, "app.ts")
	writeFile(t, source, `import x from "./foo/../bar";`)

	cache, err := NewCache(filepath.Join(dir, ".cache"), nil)
	require.NoError(t, err)

	_, ok := cache.Get(source)
	assert.False(t, ok)

	issues := []tt.Issue{{Rule: "useless-path-segments", Filename: source}}
	require.NoError(t, cache.Set(source, issues))

	got, ok := cache.Get(source)
	require.True(t, ok)
	assert.Equal(t, issues, got)
}

func TestCacheInvalidatesOnFileChange(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	source := filepath.Join(dir, "app.ts")
	writeFile(t, source, `import x from "./a";`)

	cache, err := NewCache(filepath.Join(dir, ".cache"), nil)
	require.NoError(t, err)
	require.NoError(t, cache.Set(source, []tt.Issue{{Rule: "shortest-import"}}))

	writeFile(t, source, `import x from "./b";`)

	_, ok := cache.Get(source)
	assert.False(t, ok)
}

func TestCacheSurvivesReload(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, ".cache")
	source := filepath.Join(dir, "app.ts")
	writeFile(t, source, `import x from "./a";`)

	cache, err := NewCache(cacheDir, nil)
	require.NoError(t, err)
	require.NoError(t, cache.Set(source, []tt.Issue{{Rule: "shortest-import"}}))

	reloaded, err := NewCache(cacheDir, nil)
	require.NoError(t, err)
	got, ok := reloaded.Get(source)
	require.True(t, ok)
	assert.Equal(t, "shortest-import", got[0].Rule)
}

func TestCacheInvalidatesOnConfigChange(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, ".cache")
	config := filepath.Join(dir, "tsconfig.json")
	source := filepath.Join(dir, "app.ts")
	writeFile(t, config, `{"compilerOptions":{"paths":{"@/*":["./src/*"]}}}`)
	writeFile(t, source, `import x from "./a";`)

	cache, err := NewCache(cacheDir, []string{config})
	require.NoError(t, err)
	require.NoError(t, cache.Set(source, []tt.Issue{{Rule: "shortest-import"}}))

	// same config: entries survive a reload
	cache, err = NewCache(cacheDir, []string{config})
	require.NoError(t, err)
	_, ok := cache.Get(source)
	require.True(t, ok)
	require.NoError(t, cache.Set(source, []tt.Issue{{Rule: "shortest-import"}}))

	// changed config: every verdict was computed against a dead table
	writeFile(t, config, `{"compilerOptions":{"paths":{"@/*":["./lib/*"]}}}`)
	cache, err = NewCache(cacheDir, []string{config})
	require.NoError(t, err)
	_, ok = cache.Get(source)
	assert.False(t, ok)
}

func TestCacheInvalidateAll(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	source := filepath.Join(dir, "app.ts")
	writeFile(t, source, `import x from "./a";`)

	cache, err := NewCache(filepath.Join(dir, ".cache"), nil)
	require.NoError(t, err)
	require.NoError(t, cache.Set(source, []tt.Issue{{Rule: "shortest-import"}}))

	cache.InvalidateAll()
	_, ok := cache.Get(source)
	assert.False(t, ok)
}
