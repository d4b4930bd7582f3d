// Package main provides the CLI entrypoint for source-composer.
//
// source-composer reads per-file declaration streams produced by a syntax
// parser and composes them into one canonical type graph:
//   - merges primary declarations with their extensions
//   - resolves typealiases and protocol compositions
//   - links every type reference to its declaration
//   - flattens protocol members into conforming types
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "source-composer",
	Short:        "Compose parsed source declarations into a linked type graph",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(flattenCmd)

	rootCmd.PersistentFlags().String("config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().Bool("verbose", false, "log pipeline stages to stderr")
	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	rootCmd.PersistentFlags().Int("jobs", -1, "parallel file normalization (0=auto, default from config)")
	rootCmd.PersistentFlags().String("cache-dir", "", "cache parsed declaration files in this directory")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
