// Package commands implements the labelbot CLI commands.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd is the base command for the labelbot CLI.
var rootCmd = &cobra.Command{
	Use:   "labelbot",
	Short: "Rule-based auto-labeling for GitHub issues",
	Long: `labelbot classifies GitHub issues by matching regular-expression rules
against their title and body, then applies the matching labels. Missing
labels can be created on the fly. Rules come from a YAML config file,
from the built-in catalog, or both.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default: .github/labelbot.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
