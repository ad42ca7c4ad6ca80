package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fern",
		Short: "A minimal component runtime for Go",
		Long: `Fern renders component trees built in Go against a host tree,
re-rendering only what changed.

  • Components as plain Go functions with hook state
  • Diff-based updates against any host adapter
  • In-memory host tree with HTML serialization
  • Dev server with live browser preview`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
