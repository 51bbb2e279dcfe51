// Package scanner wires the capability discovery pipeline: walk a
// directory tree, dispatch each file to its language family's extractor,
// validate the candidates, and merge them into one catalog keyed by
// capability name.
package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dmaher/mcpscan/internal/scanner/capability"
	"github.com/dmaher/mcpscan/internal/scanner/extractors"
)

// ProgressReporter receives scan lifecycle events. Implementations must
// tolerate being called from the scan goroutine only; the scanner is
// strictly sequential.
type ProgressReporter interface {
	OnDiscoveryStart()
	OnDiscoveryComplete(fileCount int)
	OnFileScanned(path string, entries int)
	OnScanComplete(totalEntries int)
}

// noopProgress discards all events.
type noopProgress struct{}

func (noopProgress) OnDiscoveryStart()         {}
func (noopProgress) OnDiscoveryComplete(int)   {}
func (noopProgress) OnFileScanned(string, int) {}
func (noopProgress) OnScanComplete(int)        {}

// Options configures a Scanner.
type Options struct {
	// ExcludedDirs extends the built-in pruned directory set.
	ExcludedDirs []string
	// IgnorePatterns are glob patterns for paths to skip.
	IgnorePatterns []string
	// Extensions maps extra file extensions (with leading dot) to the
	// family that scans them, e.g. ".tsx" -> FamilyPattern.
	Extensions map[string]Family
	// Logger defaults to a stderr logger at the package default level.
	Logger *log.Logger
	// Progress defaults to a no-op reporter.
	Progress ProgressReporter
}

// Scanner scans a directory tree for MCP capability declarations. Files
// are processed one at a time; a failure in one file never aborts the
// walk over the rest.
type Scanner struct {
	walker     *FileWalker
	structural Extractor
	pattern    Extractor
	extensions map[string]Family
	logger     *log.Logger
	progress   ProgressReporter
}

// New creates a scanner rooted at rootDir. The root is only checked when
// Scan runs, so a scanner can be built ahead of the directory existing
// (watch mode relies on this).
func New(rootDir string, opts Options) (*Scanner, error) {
	extraExtensions := make([]string, 0, len(opts.Extensions))
	for ext := range opts.Extensions {
		extraExtensions = append(extraExtensions, ext)
	}

	walker, err := NewFileWalker(rootDir, opts.ExcludedDirs, opts.IgnorePatterns, extraExtensions)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	progress := opts.Progress
	if progress == nil {
		progress = noopProgress{}
	}

	return &Scanner{
		walker:     walker,
		structural: extractors.NewPythonExtractor(),
		pattern:    extractors.NewTypeScriptExtractor(),
		extensions: opts.Extensions,
		logger:     logger,
		progress:   progress,
	}, nil
}

// familyFor applies the configured extension overrides before the
// built-in routing.
func (s *Scanner) familyFor(path string) Family {
	if family, ok := s.extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return family
	}
	return FamilyFor(path)
}

// Scan walks the tree and returns the deduplicated, validated catalog.
// The only fatal error is a missing or non-directory root; per-file
// failures are logged and contribute zero entries.
func (s *Scanner) Scan() ([]capability.Entry, error) {
	s.progress.OnDiscoveryStart()

	files, err := s.walker.Files()
	if err != nil {
		return nil, err
	}
	s.progress.OnDiscoveryComplete(len(files))

	// Catalog accumulator: one entry per name, first-appearance order.
	order := []string{}
	byName := map[string]capability.Entry{}

	for _, path := range files {
		entries := s.scanFile(path)
		if len(entries) > 0 {
			s.logger.Info("found capabilities", "file", path, "count", len(entries))
		}

		for _, entry := range entries {
			existing, ok := byName[entry.Name]
			if !ok {
				order = append(order, entry.Name)
				byName[entry.Name] = entry
				continue
			}
			byName[entry.Name] = capability.SelectBest([]capability.Entry{existing, entry})
		}

		s.progress.OnFileScanned(path, len(entries))
	}

	catalog := make([]capability.Entry, 0, len(order))
	for _, name := range order {
		catalog = append(catalog, byName[name])
	}

	s.progress.OnScanComplete(len(catalog))
	s.logger.Info("scan complete", "files", len(files), "capabilities", len(catalog))
	return catalog, nil
}

// scanFile runs one file through its family's pipeline and the
// validator. Read failures and extractor panics are contained here.
func (s *Scanner) scanFile(path string) (entries []capability.Entry) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("extractor failure", "file", path, "panic", r)
			entries = nil
		}
	}()

	family := s.familyFor(path)
	if family == FamilyNone {
		return nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warn("cannot read file", "file", path, "err", err)
		return nil
	}

	var raw []capability.Entry
	switch family {
	case FamilyStructural:
		raw = s.structural.Extract(path, source)
	case FamilyPattern:
		raw = s.pattern.Extract(path, source)
	}

	valid := Validate(raw)
	if dropped := len(raw) - len(valid); dropped > 0 {
		s.logger.Debug("dropped invalid candidates", "file", path, "count", dropped)
	}
	return valid
}
