// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/evmanproj/evman/internal/config"
	"github.com/evmanproj/evman/internal/extract"
)

const defaultConfigPath = "evman.toml"

// commandContext carries the persistent flags and lazily built
// collaborators shared by all subcommands.
type commandContext struct {
	evidenceFlag *string
	configFlag   *string
	verboseFlag  *bool

	logger *zap.Logger
}

func newCommandContext(evidence, configPath *string, verbose *bool) *commandContext {
	return &commandContext{
		evidenceFlag: evidence,
		configFlag:   configPath,
		verboseFlag:  verbose,
	}
}

func (c *commandContext) ensureLogger() (*zap.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg := zap.NewProductionConfig()
	// stdout stays clean for report output and the MCP transport.
	cfg.OutputPaths = []string{"stderr"}
	if *c.verboseFlag {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	c.logger = logger
	return logger, nil
}

func (c *commandContext) heuristics() (extract.Heuristics, error) {
	path := *c.configFlag
	if path == "" {
		path = defaultConfigPath
	}
	return config.Load(path)
}

func newRootCommand() *cobra.Command {
	var evidenceFlag string
	var configFlag string
	var verboseFlag bool

	ctx := newCommandContext(&evidenceFlag, &configFlag, &verboseFlag)

	rootCmd := &cobra.Command{
		Use:           "evman",
		Short:         "Evidence manifest generator and consistency checker",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&evidenceFlag, "evidence", "docs/evidence", "Evidence directory")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Heuristics configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newGenerateCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newValidateCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
