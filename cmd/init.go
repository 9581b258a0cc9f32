package cmd

import (
	"fmt"

	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/implint/implint/internal/imports"
	tt "github.com/implint/implint/internal/types"
	"github.com/implint/implint/lint"
)

// initCmd: implint init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new linter configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("Configuration file created/updated: %s\n", cfgFile)
	},
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = ".implint.yaml"
	}

	// Create a yaml file with rules
	config := lint.Config{
		Name: "implint",
		Rules: map[string]tt.ConfigRule{
			"shortest-import":       {Severity: tt.SeverityWarning},
			"useless-path-segments": {Severity: tt.SeverityWarning},
		},
		BaseURL: "./src",
		Paths: lint.PathMappings{
			{Alias: "@/*", Targets: []string{"./*"}},
		},
		TieBreak: imports.KeepOriginal,
	}
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	if err != nil {
		return err
	}

	return nil
}
