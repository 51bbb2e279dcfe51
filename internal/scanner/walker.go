package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// ErrNotDirectory is returned when the scan root does not exist or is
// not a directory. It is fatal for the whole run.
var ErrNotDirectory = errors.New("not a directory")

// defaultExcludedDirs are well-known non-source subtrees that are pruned
// before descent: dependency caches, VCS metadata, build output, and
// isolated environments.
var defaultExcludedDirs = []string{
	"node_modules",
	".git",
	"__pycache__",
	"dist",
	"build",
	".venv",
}

// supportedExtensions covers the two language families the extractors
// understand.
var supportedExtensions = map[string]bool{
	".py":  true,
	".ts":  true,
	".js":  true,
	".mts": true,
	".mjs": true,
}

// compiledPattern holds both the pattern string and its compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileWalker enumerates candidate source files under a root directory.
// Walks are stateless with respect to the walker, so the same walker can
// be reused across rescans.
type FileWalker struct {
	rootDir        string
	excludedDirs   map[string]bool
	extensions     map[string]bool
	ignorePatterns []compiledPattern
}

// NewFileWalker creates a walker for rootDir. extraExcludedDirs extends
// the built-in pruned directory set; ignorePatterns are glob patterns
// matched against slash-normalized paths relative to the root;
// extraExtensions extends the built-in extension filter.
func NewFileWalker(rootDir string, extraExcludedDirs, ignorePatterns, extraExtensions []string) (*FileWalker, error) {
	excluded := make(map[string]bool, len(defaultExcludedDirs)+len(extraExcludedDirs))
	for _, dir := range defaultExcludedDirs {
		excluded[dir] = true
	}
	for _, dir := range extraExcludedDirs {
		excluded[dir] = true
	}

	extensions := make(map[string]bool, len(supportedExtensions)+len(extraExtensions))
	for ext := range supportedExtensions {
		extensions[ext] = true
	}
	for _, ext := range extraExtensions {
		extensions[strings.ToLower(ext)] = true
	}

	w := &FileWalker{
		rootDir:      rootDir,
		excludedDirs: excluded,
		extensions:   extensions,
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compiling ignore pattern %q: %w", pattern, err)
		}
		w.ignorePatterns = append(w.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return w, nil
}

// Walk yields each supported file path to fn in directory order. A
// non-nil error from fn aborts the walk. The root failing the directory
// check returns ErrNotDirectory wrapped with the offending path.
func (w *FileWalker) Walk(fn func(path string) error) error {
	info, err := os.Stat(w.rootDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%s: %w", w.rootDir, ErrNotDirectory)
	}

	return filepath.WalkDir(w.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != w.rootDir && w.excludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !w.extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		if w.ignored(path) {
			return nil
		}

		return fn(path)
	})
}

// Files collects the walk into a slice.
func (w *FileWalker) Files() ([]string, error) {
	files := []string{}
	err := w.Walk(func(path string) error {
		files = append(files, path)
		return nil
	})
	return files, err
}

// ignored checks the user ignore patterns against the relative path.
func (w *FileWalker) ignored(path string) bool {
	if len(w.ignorePatterns) == 0 {
		return false
	}

	relPath, err := filepath.Rel(w.rootDir, path)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	for _, cp := range w.ignorePatterns {
		if cp.glob.Match(relPath) {
			return true
		}
	}
	return false
}
