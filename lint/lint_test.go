package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/implint/implint/internal/imports"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestConfigUnmarshal(t *testing.T) {
	t.Parallel()
	raw := `
name: implint
base-url: ./src
tie-break: prefer-alias
extensions: [".ts", ".tsx"]
index-base: index
paths:
  "@utils/*": ["./utils/*"]
  "@/*": "./*"
rules:
  useless-path-segments:
    severity: off
`
	var config Config
	require.NoError(t, yaml.Unmarshal([]byte(raw), &config))

	assert.Equal(t, "implint", config.Name)
	assert.Equal(t, "./src", config.BaseURL)
	assert.Equal(t, imports.PreferAlias, config.TieBreak)
	assert.Equal(t, []string{".ts", ".tsx"}, config.Extensions)

	require.Len(t, config.Paths, 2)
	assert.Equal(t, "@utils/*", config.Paths[0].Alias)
	assert.Equal(t, []string{"./utils/*"}, config.Paths[0].Targets)
	// a scalar target is accepted as a one-element list
	assert.Equal(t, []string{"./*"}, config.Paths[1].Targets)
}

func TestConfigRoundTrip(t *testing.T) {
	t.Parallel()
	config := Config{
		Name: "implint",
		Paths: PathMappings{
			{Alias: "@utils/*", Targets: []string{"./utils/*"}},
			{Alias: "@/*", Targets: []string{"./*"}},
		},
	}

	raw, err := yaml.Marshal(config)
	require.NoError(t, err)

	var reread Config
	require.NoError(t, yaml.Unmarshal(raw, &reread))
	assert.Equal(t, config.Paths, reread.Paths)
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("yaml config provides the table", func(t *testing.T) {
		dir := t.TempDir()
		cfg := write(t, dir, ".implint.yaml", `
base-url: ./src
paths:
  "@utils/*": ["./utils/*"]
`)
		engine, err := New(dir, cfg)
		require.NoError(t, err)
		require.Len(t, engine.Table(), 1)
		assert.Equal(t, "@utils", engine.Table()[0].Prefix)
	})

	t.Run("tsconfig fallback", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "tsconfig.json",
			`{"compilerOptions":{"baseUrl":".","paths":{"@/*":["./src/*"]}}}`)

		engine, err := New(dir, "")
		require.NoError(t, err)
		require.Len(t, engine.Table(), 1)
	})

	t.Run("no configuration at all degrades to a no-op", func(t *testing.T) {
		dir := t.TempDir()
		engine, err := New(dir, "")
		require.NoError(t, err)
		assert.Empty(t, engine.Table())

		issues, err := engine.RunSource([]byte(`import x from "../../utils/helpers";`))
		require.NoError(t, err)
		assert.Empty(t, issues)
	})

	t.Run("missing config path is tolerated", func(t *testing.T) {
		dir := t.TempDir()
		_, err := New(dir, filepath.Join(dir, "absent.yaml"))
		require.NoError(t, err)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		dir := t.TempDir()
		cfg := write(t, dir, ".implint.yaml", "paths: [broken")
		_, err := New(dir, cfg)
		require.Error(t, err)
	})
}

func TestProcessPath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	write(t, dir, "tsconfig.json",
		`{"compilerOptions":{"baseUrl":".","paths":{"@utils/*":["./utils/*"]}}}`)
	write(t, dir, "features/auth/login.ts",
		`import { helpers } from "../../utils/helpers";`)
	write(t, dir, "features/auth/clean.ts",
		`import { other } from "@utils/other";`)
	write(t, dir, "notes.txt", "not a source file")

	engine, err := New(dir, "")
	require.NoError(t, err)

	issues, err := ProcessPath(context.Background(), nil, engine, dir, ProcessFile)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "shortest-import", issues[0].Rule)
	assert.Equal(t, "@utils/helpers", issues[0].Suggestion)
}

func TestProcessPathConfiguredExtensions(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg := write(t, dir, ".implint.yaml", `
base-url: .
extensions: [".mts", ".mjs"]
paths:
  "@utils/*": ["./utils/*"]
`)
	write(t, dir, "features/auth/login.mts",
		`import { helpers } from "../../utils/helpers";`)
	plainTS := write(t, dir, "app.ts", `import x from "./foo/../bar";`)

	engine, err := New(dir, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{".mts", ".mjs"}, engine.Extensions())

	// only the configured extensions are enumerated
	issues, err := ProcessPath(context.Background(), nil, engine, dir, ProcessFile)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "shortest-import", issues[0].Rule)
	assert.Equal(t, "@utils/helpers", issues[0].Suggestion)

	// a single-file argument outside the configured set is skipped too
	issues, err = ProcessPath(context.Background(), nil, engine, plainTS, ProcessFile)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestProcessFilesSingleFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	write(t, dir, "tsconfig.json",
		`{"compilerOptions":{"baseUrl":".","paths":{"@utils/*":["./utils/*"]}}}`)
	file := write(t, dir, "app.ts", `import x from "./foo/../bar";`)

	engine, err := New(dir, "")
	require.NoError(t, err)

	issues, err := ProcessFiles(context.Background(), nil, engine, []string{file}, ProcessFile)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "useless-path-segments", issues[0].Rule)
}

func TestConfigFiles(t *testing.T) {
	t.Parallel()
	files := ConfigFiles("/project", "/project/.implint.yaml")
	assert.Contains(t, files, "/project/.implint.yaml")
	assert.Contains(t, files, filepath.Join("/project", "tsconfig.json"))
	assert.Contains(t, files, filepath.Join("/project", "jsconfig.json"))
}
