package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmaher/mcpscan/internal/config"
	"github.com/dmaher/mcpscan/internal/output"
	"github.com/dmaher/mcpscan/internal/scanner"
	"github.com/dmaher/mcpscan/internal/scanner/capability"
)

var (
	outputFlag string
	formatFlag string
	quietFlag  bool
	watchFlag  bool
)

// scanCmd represents the scan command.
var scanCmd = &cobra.Command{
	Use:   "scan <directory>",
	Short: "Scan a directory tree for MCP capability declarations",
	Long: `Scan walks a directory of MCP server sources and catalogs every tool,
prompt, and resource declaration it can detect.

Python files go through a three-tier pipeline (tree-sitter structural
parse, framework literal matching, regex fallback); TypeScript and
JavaScript files go through eight regex detectors. Candidates are
validated and deduplicated by name before output.

Examples:
  # Scan a server checkout and print the catalog as JSON
  mcpscan scan /path/to/mcp/server

  # Render a table into a file
  mcpscan scan /path/to/mcp/server --format table -o catalog.txt

  # Keep rescanning as files change
  mcpscan scan /path/to/mcp/server -o catalog.json --watch
`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file path (default: stdout)")
	scanCmd.Flags().StringVar(&formatFlag, "format", "", "Output format: json, table, or list")
	scanCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress output")
	scanCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for file changes and rescan")
}

func runScan(cmd *cobra.Command, args []string) error {
	rootDir := args[0]

	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	extensions, err := parseExtensions(cfg.Scan.Extensions)
	if err != nil {
		return err
	}

	formatName := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		formatName = formatFlag
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}

	logger := newLogger()

	// The progress bar shares stderr with the logger; suppress it when
	// quiet or when debug logging would interleave with it.
	progress := newScanProgress(quietFlag || verbose)

	s, err := scanner.New(rootDir, scanner.Options{
		ExcludedDirs:   cfg.Scan.ExcludeDirs,
		IgnorePatterns: cfg.Scan.Ignore,
		Extensions:     extensions,
		Logger:         logger,
		Progress:       progress,
	})
	if err != nil {
		return err
	}

	catalog, err := s.Scan()
	if err != nil {
		return err
	}

	if err := writeCatalog(catalog, format); err != nil {
		return err
	}

	if !watchFlag {
		return nil
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	watcher, err := scanner.NewWatcher(s, rootDir, func(catalog []capability.Entry) {
		if err := writeCatalog(catalog, format); err != nil {
			logger.Error("writing catalog", "err", err)
		}
	})
	if err != nil {
		return err
	}
	watcher.Start(ctx)
	defer watcher.Stop()

	logger.Info("watching for changes", "dir", rootDir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}
	return nil
}

// loadConfig honors the global --config flag, falling back to the
// per-directory lookup.
func loadConfig(rootDir string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.LoadFromDir(rootDir)
}

// parseExtensions resolves the configured extension -> language bindings
// to extractor families.
func parseExtensions(bindings map[string]string) (map[string]scanner.Family, error) {
	if len(bindings) == 0 {
		return nil, nil
	}

	extensions := make(map[string]scanner.Family, len(bindings))
	for ext, language := range bindings {
		family, err := scanner.ParseFamily(language)
		if err != nil {
			return nil, fmt.Errorf("scan.extensions[%s]: %w", ext, err)
		}
		extensions[ext] = family
	}
	return extensions, nil
}

// writeCatalog renders the catalog to the selected destination.
func writeCatalog(catalog []capability.Entry, format output.Format) error {
	if outputFlag == "" {
		return output.Write(os.Stdout, catalog, format)
	}

	f, err := os.Create(outputFlag)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	return output.Write(f, catalog, format)
}
