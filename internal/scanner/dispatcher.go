package scanner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmaher/mcpscan/internal/scanner/capability"
)

// Extractor is one language family's detection pipeline over a single
// file's raw content.
type Extractor interface {
	Extract(filePath string, source []byte) []capability.Entry
}

// Family identifies which detection pipeline handles a file.
type Family int

const (
	FamilyNone Family = iota
	FamilyStructural
	FamilyPattern
)

// FamilyFor routes an extension to its extractor family. Unknown
// extensions map to FamilyNone: the file is skipped, never an error.
func FamilyFor(path string) Family {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return FamilyStructural
	case ".ts", ".js", ".mts", ".mjs":
		return FamilyPattern
	default:
		return FamilyNone
	}
}

// ParseFamily maps a configured language name to its extractor family.
// Used when the config binds extra file extensions to a language.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(s) {
	case "python":
		return FamilyStructural, nil
	case "typescript", "javascript":
		return FamilyPattern, nil
	default:
		return FamilyNone, fmt.Errorf("unknown language %q (want python, typescript, or javascript)", s)
	}
}
