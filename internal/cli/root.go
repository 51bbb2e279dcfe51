package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
)

// rootCmd represents the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "mcpscan",
	Short: "Discover MCP server capabilities by static analysis",
	Long: `mcpscan scans a directory of MCP server source files (Python and
TypeScript/JavaScript) and produces a catalog of the tools, prompts, and
resources they declare, without executing any of the scanned code.`,
	SilenceUsage: true,
}

// Execute runs the root command. Any error exits with status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: .mcpscan.yml in the scanned directory)")
}

// newLogger builds the stderr logger used across commands, honoring the
// global verbosity flag.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
