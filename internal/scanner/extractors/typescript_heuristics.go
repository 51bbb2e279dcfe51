package extractors

import (
	"regexp"
	"strings"

	"github.com/dmaher/mcpscan/internal/scanner/capability"
)

var asyncFunctionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`async\s+function\s+([a-zA-Z_]\w*)`),
	regexp.MustCompile(`const\s+([a-zA-Z_]\w*)\s*=\s*async`),
	regexp.MustCompile(`([a-zA-Z_]\w*)\s*:\s*async\s+\(`),
}

var tsToolCallPattern = regexp.MustCompile(`(?s)server\.tool\s*\(\s*["']([^"']+)["']\s*,\s*["']([^"']*)["']`)

// excludedFunctionNames are infrastructure and helper functions commonly
// found in MCP servers that are never capabilities themselves.
var excludedFunctionNames = map[string]bool{
	"main": true, "init": true, "setup": true, "start": true, "run": true,
	"handleListTools": true, "handleCallTool": true, "listTools": true,
	"callTool": true, "connect": true, "disconnect": true, "close": true,
	"open": true, "create": true, "update": true, "delete": true,
	"get": true, "set": true, "fetch": true, "send": true, "receive": true,
	"process": true, "handle": true, "execute": true, "validate": true,
	"parse": true, "format": true, "transform": true, "convert": true,
	"load": true, "save": true, "read": true, "write": true, "check": true,
	"test": true, "verify": true, "authenticate": true, "authorize": true,
	"login": true, "logout": true, "register": true, "unregister": true,
	"subscribe": true, "unsubscribe": true, "publish": true, "emit": true,
	"listen": true, "watch": true, "monitor": true, "log": true,
	"debug": true, "error": true, "warn": true, "info": true,
	"trace": true, "cleanup": true, "dispose": true, "destroy": true,
	"validatePath": true, "getFileStats": true,
	"readFileAsBase64Stream": true, "runServer": true,
	"updateAllowedDirectoriesFromRoots": true, "tailFile": true,
	"headFile": true, "constructBaseScanUrl": true,
	"generateSessionId": true, "postMetric": true,
	"getMorphoVaults": true, "detectStandardAndTransferNft": true,
	"getRawTextString": true, "getHtmlString": true,
	"getMarkdownStringFromHtmlByTD":  true,
	"getMarkdownStringFromHtmlByNHM": true,
}

var functionToolKeywords = []string{"tool", "command", "action", "operation", "task", "job", "work"}

// toolNameIndicators are verb-like fragments that suggest an identifier
// names an operation rather than internal plumbing.
var toolNameIndicators = []string{
	"get", "set", "create", "delete", "update", "fetch", "send", "read",
	"write", "search", "find", "list", "show", "display", "generate",
	"process", "execute", "run", "start", "stop", "check", "validate",
	"parse", "format", "convert", "calculate", "compute", "analyze",
	"scan", "monitor", "track", "log",
}

var helperContextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)helper\s+method`),
	regexp.MustCompile(`(?i)utility\s+function`),
	regexp.MustCompile(`(?i)internal\s+function`),
	regexp.MustCompile(`(?i)private\s+function`),
	regexp.MustCompile(`(?i)//\s*helper`),
	regexp.MustCompile(`(?i)/\*\*\s*helper`),
	regexp.MustCompile(`(?i)export\s+async\s+function.*helper`),
	regexp.MustCompile(`(?i)function.*helper`),
}

var helperNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^.*helper.*$`),
	regexp.MustCompile(`(?i)^.*util.*$`),
	regexp.MustCompile(`(?i)^.*internal.*$`),
	regexp.MustCompile(`(?i)^get.*string$`),
	regexp.MustCompile(`(?i)^.*from.*by.*$`),
}

// extractFunctionCandidates mines server.tool() calls and async function
// names that look like operations. The function-name heuristic is the
// weakest detector, so it filters aggressively.
func extractFunctionCandidates(filePath, content string) []capability.Entry {
	var entries []capability.Entry

	for _, match := range tsToolCallPattern.FindAllStringSubmatchIndex(content, -1) {
		entries = append(entries, capability.Entry{
			Name:        submatch(content, match, 1),
			Description: submatch(content, match, 2),
			Kind:        capability.KindTool,
			File:        filePath,
			Line:        lineAt(content, match[0]),
			DetectedBy:  capability.StrategyTSToolCall,
		})
	}

	for _, pattern := range asyncFunctionPatterns {
		for _, match := range pattern.FindAllStringSubmatchIndex(content, -1) {
			name := submatch(content, match, 1)

			if excludedFunctionNames[name] || strings.HasPrefix(name, "_") {
				continue
			}
			if !looksLikeToolName(name) {
				continue
			}

			contextStart := max(0, match[0]-200)
			contextEnd := min(len(content), match[1]+200)
			context := strings.ToLower(content[contextStart:contextEnd])

			if isHelperFunction(name, context) {
				continue
			}

			description := findNearbyComment(content, match[0])
			hasToolContext := containsAny(context, functionToolKeywords)
			hasMeaningfulDescription := len(strings.TrimSpace(description)) > 10

			if !hasToolContext && !hasMeaningfulDescription {
				continue
			}

			entries = append(entries, capability.Entry{
				Name:        name,
				Description: description,
				Kind:        capability.KindTool,
				File:        filePath,
				Line:        lineAt(content, match[0]),
				DetectedBy:  capability.StrategyTSFunction,
			})
		}
	}

	return entries
}

// looksLikeToolName reports whether an identifier plausibly names an
// operation: it contains a verb-like fragment or is longer than 5 chars.
func looksLikeToolName(name string) bool {
	lower := strings.ToLower(name)
	for _, indicator := range toolNameIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return len(name) > 5
}

// isHelperFunction rejects names and contexts that mark internal helpers.
func isHelperFunction(name, context string) bool {
	for _, pattern := range helperContextPatterns {
		if pattern.MatchString(context) {
			return true
		}
	}
	for _, pattern := range helperNamePatterns {
		if pattern.MatchString(name) {
			return true
		}
	}
	return false
}

// findNearbyComment returns the closest line or block comment in the few
// lines above a position, stripped of comment markers.
func findNearbyComment(content string, position int) string {
	lines := strings.Split(content[:position], "\n")

	for i := len(lines) - 1; i >= max(0, len(lines)-5); i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "//") {
			return strings.TrimSpace(strings.TrimLeft(line, "/"))
		}
		if strings.HasPrefix(line, "/*") && strings.HasSuffix(line, "*/") {
			line = strings.TrimSuffix(strings.TrimPrefix(line, "/*"), "*/")
			return strings.TrimSpace(strings.Trim(line, "*"))
		}
	}
	return ""
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// isDigits reports whether s consists only of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isIdentifierLike reports whether s is alphanumeric once underscores
// and hyphens are removed.
func isIdentifierLike(s string) bool {
	stripped := strings.NewReplacer("_", "", "-", "").Replace(s)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
