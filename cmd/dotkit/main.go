// Package main is the entry point for the dotkit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dotkit/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global flags
var (
	cfgPath string
	verbose bool
)

// Per-invocation state, built in PersistentPreRunE.
var (
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dotkit",
	Short: "dotkit - personal configuration engine",
	Long: `dotkit models, validates, renders, and synchronizes a personal
configuration set: editor plugin manifests, the shell initialization
script, and the dotfiles tree itself.

Run it from the configuration repository, or point --config at its
dotkit.toml. Settings can also be supplied as DOTKIT_* environment
variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// version only reports build metadata; it must not fail on a
		// broken configuration file.
		if cmd.Name() == "version" {
			return nil
		}

		var opts []config.Option
		if cfgPath != "" {
			opts = append(opts, config.WithPath(cfgPath))
		}
		cfg = config.New(opts...)
		if err := cfg.Load(); err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}

		level := cfg.Logging().Level
		if verbose {
			level = "debug"
		}
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(parsed)
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// versionCmd reports build metadata
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dotkit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Path to dotkit.toml (default: ./dotkit.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	// Add commands to root
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(manifestCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(clCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
