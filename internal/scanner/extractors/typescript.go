package extractors

import (
	"regexp"
	"strings"

	"github.com/dmaher/mcpscan/internal/scanner/capability"
)

// TypeScriptExtractor extracts capability declarations from TypeScript
// and JavaScript MCP servers. No structural parse tree is available for
// this family, so eight independent regex detectors run over the raw
// text and their candidates are merged by strategy priority.
type TypeScriptExtractor struct{}

// NewTypeScriptExtractor creates a TypeScript/JavaScript extractor.
func NewTypeScriptExtractor() *TypeScriptExtractor {
	return &TypeScriptExtractor{}
}

// Extract runs every detector and deduplicates the combined candidates.
func (e *TypeScriptExtractor) Extract(filePath string, source []byte) []capability.Entry {
	content := string(source)

	var entries []capability.Entry
	entries = append(entries, extractToolsArrays(filePath, content)...)
	entries = append(entries, extractSwitchCases(filePath, content)...)
	entries = append(entries, extractToolObjects(filePath, content)...)
	entries = append(entries, extractFunctionCandidates(filePath, content)...)
	entries = append(entries, extractRequestHandlers(filePath, content)...)
	entries = append(entries, extractSchemaReferences(filePath, content)...)
	entries = append(entries, extractCreateActionDecorators(filePath, content)...)
	entries = append(entries, extractToolConstants(filePath, content)...)

	return capability.DeduplicateByName(entries)
}

var toolsArrayPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)tools\s*:\s*\[(.*?)\]`),
	regexp.MustCompile(`(?s)const\s+tools\s*=\s*\[(.*?)\]`),
	regexp.MustCompile(`(?s)return\s*\{\s*tools\s*:\s*\[(.*?)\]`),
	regexp.MustCompile(`(?s)ListToolsRequestSchema[^{]*\{\s*return\s*\{\s*tools\s*:\s*\[(.*?)\]`),
}

// extractToolsArrays mines tool array literals in their common forms.
func extractToolsArrays(filePath, content string) []capability.Entry {
	var entries []capability.Entry

	for _, pattern := range toolsArrayPatterns {
		for _, match := range pattern.FindAllStringSubmatchIndex(content, -1) {
			body := submatch(content, match, 1)
			baseLine := lineAt(content, match[0])
			entries = append(entries, parseToolObjects(body, filePath, baseLine, capability.StrategyTSToolsArray)...)
		}
	}

	return entries
}

var tsToolObjectPattern = regexp.MustCompile(`(?s)\{\s*name\s*:\s*["']([^"']+)["']\s*,\s*description\s*:\s*["']([^"']*)["']`)

// extractToolObjects mines single inline {name, description} objects.
func extractToolObjects(filePath, content string) []capability.Entry {
	var entries []capability.Entry

	for _, match := range tsToolObjectPattern.FindAllStringSubmatchIndex(content, -1) {
		entries = append(entries, capability.Entry{
			Name:        submatch(content, match, 1),
			Description: submatch(content, match, 2),
			Kind:        capability.KindTool,
			File:        filePath,
			Line:        lineAt(content, match[0]),
			DetectedBy:  capability.StrategyTSToolObject,
		})
	}

	return entries
}

var switchCasePattern = regexp.MustCompile(`case\s+["']([^"']*)["']:`)

// excludedCaseLabels are generic labels that appear in switch statements
// for reasons unrelated to tool dispatch.
var excludedCaseLabels = map[string]bool{
	"default": true, "error": true, "success": true, "fail": true,
	"init": true, "start": true, "stop": true, "pause": true,
	"resume": true, "reset": true, "clear": true, "update": true,
	"refresh": true, "reload": true, "get": true, "set": true,
	"add": true, "remove": true, "delete": true, "create": true,
	"destroy": true, "open": true, "close": true, "connect": true,
	"disconnect": true, "login": true, "logout": true, "true": true,
	"false": true, "yes": true, "no": true, "on": true, "off": true,
	"0": true, "1": true,
}

var toolContextKeywords = []string{"tool", "mcp", "request", "handler", "call"}

// extractSwitchCases mines case labels from tool-dispatch switches.
func extractSwitchCases(filePath, content string) []capability.Entry {
	var entries []capability.Entry

	for _, match := range switchCasePattern.FindAllStringSubmatchIndex(content, -1) {
		name := submatch(content, match, 1)

		if excludedCaseLabels[strings.ToLower(name)] ||
			len(name) < 2 ||
			isDigits(name) ||
			!isIdentifierLike(name) {
			continue
		}

		// Require tool-handling context within 500 chars either side.
		contextStart := max(0, match[0]-500)
		contextEnd := min(len(content), match[1]+500)
		context := strings.ToLower(content[contextStart:contextEnd])
		if !containsAny(context, toolContextKeywords) {
			continue
		}

		description := findNearbyComment(content, match[0])
		if description == "" && !looksLikeToolName(name) {
			continue
		}

		entries = append(entries, capability.Entry{
			Name:        name,
			Description: description,
			Kind:        capability.KindTool,
			File:        filePath,
			Line:        lineAt(content, match[0]),
			DetectedBy:  capability.StrategyTSSwitchCase,
		})
	}

	return entries
}

var createActionPattern = regexp.MustCompile(`(?s)@CreateAction\s*\(\s*\{\s*name:\s*["']([^"']+)["']\s*,\s*description:\s*["']([^"']*)["']`)

// extractCreateActionDecorators mines @CreateAction decorator literals.
func extractCreateActionDecorators(filePath, content string) []capability.Entry {
	var entries []capability.Entry

	for _, match := range createActionPattern.FindAllStringSubmatchIndex(content, -1) {
		entries = append(entries, capability.Entry{
			Name:        submatch(content, match, 1),
			Description: submatch(content, match, 2),
			Kind:        capability.KindTool,
			File:        filePath,
			Line:        lineAt(content, match[0]),
			DetectedBy:  capability.StrategyTSCreateAction,
		})
	}

	return entries
}

var (
	setRequestHandlerPattern = regexp.MustCompile(`(?s)server\.setRequestHandler\s*\(\s*ListToolsRequestSchema\s*,\s*async\s*\([^)]*\)\s*=>\s*\{([^}]*?tools\s*:\s*\[([^\]]*)\])?[^}]*\}`)
	simpleToolsReturnPattern = regexp.MustCompile(`(?s)return\s*\{\s*tools\s*:\s*\[([^\]]*)\]`)
)

// extractRequestHandlers mines setRequestHandler bodies and bare
// return { tools: [...] } blocks.
func extractRequestHandlers(filePath, content string) []capability.Entry {
	var entries []capability.Entry

	for _, match := range setRequestHandlerPattern.FindAllStringSubmatchIndex(content, -1) {
		body := submatch(content, match, 2)
		if body == "" {
			continue
		}
		baseLine := lineAt(content, match[0])
		entries = append(entries, parseToolObjects(body, filePath, baseLine, capability.StrategyTSRequestHandler)...)
	}

	for _, match := range simpleToolsReturnPattern.FindAllStringSubmatchIndex(content, -1) {
		body := submatch(content, match, 1)
		baseLine := lineAt(content, match[0])
		entries = append(entries, parseToolObjects(body, filePath, baseLine, capability.StrategyTSSimpleReturn)...)
	}

	return entries
}

var schemaReferencePattern = regexp.MustCompile(`(?s)\{\s*name\s*:\s*["']([^"']+)["']\s*,\s*description\s*:\s*["']([^"']*)["'][^}]*inputSchema\s*:[^}]*\}`)

// extractSchemaReferences mines tool objects that bind an inputSchema.
func extractSchemaReferences(filePath, content string) []capability.Entry {
	var entries []capability.Entry

	for _, match := range schemaReferencePattern.FindAllStringSubmatchIndex(content, -1) {
		entries = append(entries, capability.Entry{
			Name:        submatch(content, match, 1),
			Description: submatch(content, match, 2),
			Kind:        capability.KindTool,
			File:        filePath,
			Line:        lineAt(content, match[0]),
			DetectedBy:  capability.StrategyTSSchemaReference,
		})
	}

	return entries
}

var toolConstantPattern = regexp.MustCompile(`(?s)const\s+(\w*TOOL\w*)\s*:\s*Tool\s*=\s*\{\s*name\s*:\s*["']([^"']+)["'].*?description\s*:\s*["']([^"']*?)["']`)

// extractToolConstants mines typed tool constants like
// const SEARCH_TOOL: Tool = { name: "...", description: "..." }.
func extractToolConstants(filePath, content string) []capability.Entry {
	var entries []capability.Entry

	for _, match := range toolConstantPattern.FindAllStringSubmatchIndex(content, -1) {
		entries = append(entries, capability.Entry{
			Name:        submatch(content, match, 2),
			Description: submatch(content, match, 3),
			Kind:        capability.KindTool,
			File:        filePath,
			Line:        lineAt(content, match[0]),
			DetectedBy:  capability.StrategyTSToolConstant,
		})
	}

	return entries
}

// toolObjectSplitPattern splits concatenated object literals on "},{".
var toolObjectSplitPattern = regexp.MustCompile(`\},\s*\{`)

var (
	objectNamePattern = regexp.MustCompile(`name\s*:\s*["']([^"']+)["']`)
	objectDescPattern = regexp.MustCompile(`description\s*:\s*["']([^"']*)["']`)
)

// parseToolObjects parses the objects inside an array body, attributing
// each to the given detection strategy.
func parseToolObjects(body, filePath string, baseLine int, strategy string) []capability.Entry {
	var entries []capability.Entry

	consumed := 0
	for _, object := range toolObjectSplitPattern.Split(body, -1) {
		objectOffset := consumed
		consumed += len(object) + 1

		nameMatch := objectNamePattern.FindStringSubmatchIndex(object)
		if nameMatch == nil {
			continue
		}

		description := ""
		if descMatch := objectDescPattern.FindStringSubmatch(object); descMatch != nil {
			description = descMatch[1]
		}

		entries = append(entries, capability.Entry{
			Name:        submatch(object, nameMatch, 1),
			Description: description,
			Kind:        capability.KindTool,
			File:        filePath,
			Line:        baseLine + strings.Count(body[:min(objectOffset+nameMatch[0], len(body))], "\n"),
			DetectedBy:  strategy,
		})
	}

	return entries
}
