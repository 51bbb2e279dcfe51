package extractors

import (
	"regexp"
	"strings"

	"github.com/dmaher/mcpscan/internal/scanner/capability"
)

// FastMCP declares tools entirely inside the decorator call, so the
// literal form is recoverable without a parse tree. The self-qualified
// receiver covers class-based servers.
var fastMCPDecoratorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`@app\.tool\s*\(\s*name\s*=\s*["']([^"']+)["']\s*(?:,\s*description\s*=\s*["']([^"']*)["'])?\s*\)`),
	regexp.MustCompile(`@self\.app\.tool\s*\(\s*name\s*=\s*["']([^"']+)["']\s*(?:,\s*description\s*=\s*["']([^"']*)["'])?\s*\)`),
}

var (
	docstringToolsBlock = regexp.MustCompile(`"""[^"]*Available Tools:([^"]*?)"""`)
	docstringToolItem   = regexp.MustCompile(`-\s+([a-zA-Z_]\w*)\s*:\s*([^\n]+)`)
)

// extractFrameworkLiterals is the second Python tier: FastMCP decorator
// literals plus the "Available Tools:" docstring convention.
func extractFrameworkLiterals(filePath, content string) []capability.Entry {
	var entries []capability.Entry

	for _, pattern := range fastMCPDecoratorPatterns {
		for _, match := range pattern.FindAllStringSubmatchIndex(content, -1) {
			name := submatch(content, match, 1)
			entries = append(entries, capability.Entry{
				Name:        name,
				Description: submatch(content, match, 2),
				Kind:        capability.KindTool,
				File:        filePath,
				Line:        lineAt(content, match[0]),
				DetectedBy:  capability.StrategyFastMCPDecorator,
			})
		}
	}

	entries = append(entries, extractDocstringToolsList(filePath, content)...)
	return entries
}

// extractDocstringToolsList parses bullet items out of triple-quoted
// blocks that carry an "Available Tools:" heading.
func extractDocstringToolsList(filePath, content string) []capability.Entry {
	var entries []capability.Entry

	for _, block := range docstringToolsBlock.FindAllStringSubmatchIndex(content, -1) {
		blockText := submatch(content, block, 1)
		blockLine := lineAt(content, block[0])

		for _, item := range docstringToolItem.FindAllStringSubmatchIndex(blockText, -1) {
			entries = append(entries, capability.Entry{
				Name:        submatch(blockText, item, 1),
				Description: strings.TrimSpace(submatch(blockText, item, 2)),
				Kind:        capability.KindTool,
				File:        filePath,
				Line:        blockLine + strings.Count(blockText[:item[0]], "\n"),
				DetectedBy:  capability.StrategyDocstringToolsList,
			})
		}
	}

	return entries
}

// lineAt returns the 1-indexed line number of a byte offset.
func lineAt(content string, offset int) int {
	return strings.Count(content[:offset], "\n") + 1
}

// submatch returns submatch i of a FindAllStringSubmatchIndex result, or
// "" when the group did not participate in the match.
func submatch(content string, match []int, i int) string {
	start, end := match[2*i], match[2*i+1]
	if start < 0 || end < 0 {
		return ""
	}
	return content[start:end]
}
