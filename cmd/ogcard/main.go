package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/ogcard"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "ogcard",
	Short: "ogcard renders Open Graph cards as scalable SVG",
	Long: `ogcard renders Open Graph preview cards from templates, props and fonts,
using a satori-compatible layout engine for drawing.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the ogcard version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ogcard %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().String("engine", ogcard.EnvOr("OGCARD_ENGINE_URL", "http://localhost:3001"), "Layout engine endpoint (http(s):// or unix://)")
	rootCmd.PersistentFlags().String("db", ogcard.EnvOr("OGCARD_DATABASE_PATH", "data/ogcard.db"), "SQLite font registry path")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
