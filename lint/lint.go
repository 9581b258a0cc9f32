package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/implint/implint/internal"
	"github.com/implint/implint/internal/imports"
	tt "github.com/implint/implint/internal/types"
)

// LintEngine is the surface the runner needs from an engine.
type LintEngine interface {
	Run(filePath string) ([]tt.Issue, error)
	RunSource(source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
	Extensions() []string
}

// Config represents the overall configuration with a name and a slice of rules.
type Config struct {
	Name       string                   `yaml:"name"`
	Rules      map[string]tt.ConfigRule `yaml:"rules"`
	BaseURL    string                   `yaml:"base-url"`
	Paths      PathMappings             `yaml:"paths"`
	Extensions []string                 `yaml:"extensions"`
	IndexBase  string                   `yaml:"index-base"`
	TieBreak   imports.Policy           `yaml:"tie-break"`
}

// PathMappings is the ordered alias mapping from the configuration
// file. yaml mapping order is configuration order, and that order is
// the resolver's declared tie-break, so a plain map won't do.
type PathMappings []imports.Mapping

func (p *PathMappings) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("paths must be a mapping of alias patterns to targets")
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		alias := value.Content[i].Value
		targetNode := value.Content[i+1]

		var targets []string
		if targetNode.Kind == yaml.ScalarNode {
			targets = []string{targetNode.Value}
		} else if err := targetNode.Decode(&targets); err != nil {
			return fmt.Errorf("targets of %q: %w", alias, err)
		}
		*p = append(*p, imports.Mapping{Alias: alias, Targets: targets})
	}
	return nil
}

func (p PathMappings) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, m := range p {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: m.Alias}
		var val yaml.Node
		if err := val.Encode(m.Targets); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, &val)
	}
	return node, nil
}

// New builds a lint engine for rootDir. The configuration file is
// optional; without one (or without path mappings in it) the alias
// table falls back to the compiler configuration in rootDir, and
// without that too the engine runs with an empty table and the
// shortest-import rule never fires. Missing configuration is a
// degraded mode, never an error.
func New(rootDir string, configurationPath string) (*internal.Engine, error) {
	config, err := loadConfiguration(configurationPath)
	if err != nil {
		return nil, err
	}

	table, err := buildTable(rootDir, config)
	if err != nil {
		return nil, err
	}

	return internal.NewEngine(table, options(config), config.TieBreak, config.Rules)
}

func loadConfiguration(configurationPath string) (Config, error) {
	var config Config
	if configurationPath == "" {
		return config, nil
	}

	f, err := os.Open(configurationPath)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("parsing %s: %w", configurationPath, err)
	}
	return config, nil
}

func buildTable(rootDir string, config Config) (imports.Table, error) {
	if len(config.Paths) > 0 {
		base := config.BaseURL
		if base == "" {
			base = "."
		}
		if !filepath.IsAbs(base) {
			base = filepath.Join(rootDir, base)
		}
		return imports.BuildTable(filepath.ToSlash(base), config.Paths), nil
	}

	tsconfig, err := imports.FindTSConfig(rootDir)
	if err != nil {
		return nil, err
	}
	return tsconfig.Table(rootDir), nil
}

func options(config Config) imports.Options {
	opts := imports.DefaultOptions()
	if len(config.Extensions) > 0 {
		opts.Extensions = config.Extensions
	}
	if config.IndexBase != "" {
		opts.IndexBase = config.IndexBase
	}
	return opts
}

// ConfigFiles lists the configuration files a run's verdicts depend
// on, for cache invalidation.
func ConfigFiles(rootDir, configurationPath string) []string {
	files := []string{}
	if configurationPath != "" {
		files = append(files, configurationPath)
	}
	for _, name := range imports.ConfigFileNames {
		files = append(files, filepath.Join(rootDir, name))
	}
	return files
}

// ProcessFiles lints every given path with the engine.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

// ProcessPath lints one file, or every lintable file under one
// directory. Directory entries run on a bounded worker pool; results
// are collected in arbitrary order.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	extensions := engine.Extensions()

	if !info.IsDir() {
		if !hasExtension(extensions, path) {
			return nil, nil
		}
		return processor(engine, path)
	}

	var files []string
	err = filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fileInfo.IsDir() && hasExtension(extensions, filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", path, err)
	}

	resultChan := make(chan []tt.Issue, len(files))
	errorChan := make(chan error, len(files))

	// limit the number of workers
	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
			go func(fp string) {
				defer func() { <-sem }()

				fileIssues, err := processor(engine, fp)
				if err != nil {
					if logger != nil {
						logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
					}
					errorChan <- err
					resultChan <- nil
				} else {
					resultChan <- fileIssues
					errorChan <- nil
				}
				bar.Add(1)
			}(filePath)
		}
	}

	var issues []tt.Issue
	for range files {
		err := <-errorChan
		result := <-resultChan
		if err != nil {
			continue
		}
		issues = append(issues, result...)
	}

	fmt.Println()
	return issues, nil
}

// ProcessFile is the plain per-file processor.
func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

// ProcessSource lints in-memory source.
func ProcessSource(engine LintEngine, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(source)
}

func hasExtension(extensions []string, path string) bool {
	ext := filepath.Ext(path)
	for _, want := range extensions {
		if ext == want {
			return true
		}
	}
	return false
}
