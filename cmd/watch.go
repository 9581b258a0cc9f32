package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/implint/implint/formatter"
	"github.com/implint/implint/internal"
	"github.com/implint/implint/lint"
	"github.com/implint/implint/scanner"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-lint files as they change",
	Run: func(cmd *cobra.Command, args []string) {
		root := rootDir
		if len(args) > 0 {
			root = args[0]
		}

		if err := runWatch(root); err != nil {
			logger.Fatal("watch failed", zap.Error(err))
		}
	},
}

func runWatch(root string) error {
	engine, err := lint.New(rootDir, cfgFile)
	if err != nil {
		return err
	}

	// initial pass over everything currently on disk
	files, err := scanner.New(root, engine.Extensions()...).Scan()
	if err != nil {
		return err
	}
	for _, file := range files {
		reportFile(engine, file.Path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error adding directory to watcher: %w", err)
	}

	logger.Info("watching for changes", zap.String("root", root))
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write != fsnotify.Write {
				continue
			}
			// wait for a while after file change to consider multiple changes as one
			time.Sleep(100 * time.Millisecond)

			if isConfigFile(event.Name) {
				// the alias table the old engine held is stale now;
				// build a fresh engine and swap it in whole
				fresh, err := lint.New(rootDir, cfgFile)
				if err != nil {
					logger.Error("failed to reload configuration", zap.Error(err))
					continue
				}
				engine = fresh
				logger.Info("configuration changed, alias table rebuilt")
				continue
			}
			if hasSourceExtension(engine.Extensions(), event.Name) {
				reportFile(engine, event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", zap.Error(err))
		}
	}
}

func reportFile(engine lint.LintEngine, filename string) {
	issues, err := engine.Run(filename)
	if err != nil {
		logger.Error("error linting file", zap.String("file", filename), zap.Error(err))
		return
	}
	if len(issues) == 0 {
		return
	}

	sourceCode, err := internal.ReadSourceCode(filename)
	if err != nil {
		logger.Error("error reading source file", zap.String("file", filename), zap.Error(err))
		return
	}
	fmt.Println(formatter.GenerateFormattedIssue(issues, sourceCode))
}

func isConfigFile(path string) bool {
	base := filepath.Base(path)
	if base == filepath.Base(cfgFile) {
		return true
	}
	return base == "tsconfig.json" || base == "jsconfig.json"
}

func hasSourceExtension(extensions []string, path string) bool {
	ext := filepath.Ext(path)
	for _, want := range extensions {
		if ext == want {
			return true
		}
	}
	return false
}
