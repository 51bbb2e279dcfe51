package scanner

import (
	"strings"

	"github.com/dmaher/mcpscan/internal/scanner/capability"
)

// relaxedStrategies are high-confidence detections that are kept even
// with an empty description; everything else must carry a real one.
var relaxedStrategies = map[string]bool{
	capability.StrategyASTToolCtor:      true,
	capability.StrategyASTPromptCtor:    true,
	capability.StrategyASTResourceCtor:  true,
	capability.StrategyASTToolList:      true,
	capability.StrategyASTPromptList:    true,
	capability.StrategyASTResourceList:  true,
	capability.StrategyFastMCPDecorator: true,
	capability.StrategyTSRequestHandler: true,
}

const minDescriptionLength = 3

// Validate filters out entries that fail the name or description
// well-formedness checks, regardless of which family produced them.
func Validate(entries []capability.Entry) []capability.Entry {
	valid := make([]capability.Entry, 0, len(entries))
	for _, entry := range entries {
		if IsValid(entry) {
			valid = append(valid, entry)
		}
	}
	return valid
}

// IsValid reports whether a single entry satisfies the catalog
// invariants: a well-formed, non-numeric name, and (outside the relaxed
// strategies) a description of at least three non-space characters.
func IsValid(entry capability.Entry) bool {
	name := strings.TrimSpace(entry.Name)
	if name == "" || !capability.ValidName(name) {
		return false
	}

	if relaxedStrategies[entry.DetectedBy] {
		return true
	}

	return len(strings.TrimSpace(entry.Description)) >= minDescriptionLength
}
