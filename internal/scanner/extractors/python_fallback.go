package extractors

import (
	"regexp"
	"strings"

	"github.com/dmaher/mcpscan/internal/scanner/capability"
)

// decoratorShape pairs a decorator-form regex with the tag recorded when
// it fires. The table is ordered roughly by specificity; only the first
// matching shape per line is used.
type decoratorShape struct {
	re  *regexp.Regexp
	tag string
}

var fallbackDecoratorShapes = []decoratorShape{
	// Decorator forms over the known receivers.
	{regexp.MustCompile(`@server\.tool\(\s*\)`), "server_tool_decorator"},
	{regexp.MustCompile(`@server\.tool\(\s*name\s*=`), "server_tool_decorator_with_name"},
	{regexp.MustCompile(`@server\.tool\(\s*description\s*=`), "server_tool_decorator_with_desc"},
	{regexp.MustCompile(`@app\.tool\(\s*\)`), "app_tool_decorator"},
	{regexp.MustCompile(`@app\.tool\(\s*name\s*=`), "app_tool_decorator_with_name"},
	{regexp.MustCompile(`@mcp\.tool\(\s*\)`), "mcp_tool_decorator"},
	{regexp.MustCompile(`@mcp\.tool\(\s*name\s*=`), "mcp_tool_decorator_with_name"},
	// Bare @tool only with explicit arguments, to avoid unrelated
	// decorators that happen to share the name.
	{regexp.MustCompile(`@tool\(\s*name\s*=`), "tool_decorator_with_name"},
	{regexp.MustCompile(`@tool\(\s*description\s*=`), "tool_decorator_with_desc"},

	// Handler decorators.
	{regexp.MustCompile(`@server\.list_tools\(\s*\)`), "list_tools_handler"},
	{regexp.MustCompile(`@server\.call_tool\(\s*\)`), "call_tool_handler"},
	{regexp.MustCompile(`@server\.list_prompts\(\s*\)`), "list_prompts_handler"},
	{regexp.MustCompile(`@server\.get_prompt\(\s*\)`), "get_prompt_handler"},
	{regexp.MustCompile(`@server\.list_resources\(\s*\)`), "list_resources_handler"},
	{regexp.MustCompile(`@server\.read_resource\(\s*\)`), "read_resource_handler"},

	// Request schema references.
	{regexp.MustCompile(`ListToolsRequestSchema`), "list_tools_schema"},
	{regexp.MustCompile(`CallToolRequestSchema`), "call_tool_schema"},
	{regexp.MustCompile(`ListPromptsRequestSchema`), "list_prompts_schema"},
	{regexp.MustCompile(`GetPromptRequestSchema`), "get_prompt_schema"},
	{regexp.MustCompile(`ListResourcesRequestSchema`), "list_resources_schema"},
	{regexp.MustCompile(`ReadResourceRequestSchema`), "read_resource_schema"},

	// Imperative registration.
	{regexp.MustCompile(`server\.add_tool\(\s*["']\w+["']`), "server_add_tool"},
	{regexp.MustCompile(`app\.add_tool\(\s*["']\w+["']`), "app_add_tool"},
	{regexp.MustCompile(`register_tool\(\s*["']\w+["']`), "register_tool"},

	// setRequestHandler forms occasionally seen in Python ports.
	{regexp.MustCompile(`server\.setRequestHandler\(\s*ListToolsRequestSchema`), "set_request_handler_list_tools"},
	{regexp.MustCompile(`server\.setRequestHandler\(\s*CallToolRequestSchema`), "set_request_handler_call_tool"},
}

var pythonToolCallPatterns = []*regexp.Regexp{
	regexp.MustCompile(`server\.tool\s*\(\s*["']([^"']+)["']\s*,\s*["']([^"']*)["']`),
	regexp.MustCompile(`app\.tool\s*\(\s*["']([^"']+)["']\s*,\s*["']([^"']*)["']`),
	regexp.MustCompile(`mcp\.tool\s*\(\s*["']([^"']+)["']\s*,\s*["']([^"']*)["']`),
}

var pythonToolListPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)"tools":\s*\[([^\]]*)\]`),
	regexp.MustCompile(`(?s)tools\s*=\s*\[([^\]]*)\]`),
	regexp.MustCompile(`(?s)return\s*\{\s*"tools":\s*\[([^\]]*)\]`),
}

// toolObjectPattern matches {name: "...", description: "..."} object
// literals with quoted or bare keys.
var toolObjectPattern = regexp.MustCompile(`(?s)\{\s*["']?name["']?\s*:\s*["']([^"']*)["']\s*,?\s*["']?description["']?\s*:\s*["']([^"']*)["']\s*\}`)

var pythonDefPattern = regexp.MustCompile(`^\s*def\s+([a-zA-Z_]\w*)`)

// handlerFuncNames are the handler functions themselves; a decorator
// match followed by one of these is the handler, not a capability.
var handlerFuncNames = map[string]bool{
	"list_tools":  true,
	"call_tool":   true,
	"handle_tool": true,
}

// extractPythonFallback is the third Python tier: a line-window scan for
// decorator shapes, call forms, and list literals. It recovers entries
// from files the structural parser could not handle.
func extractPythonFallback(filePath, content string) []capability.Entry {
	var entries []capability.Entry
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		for _, shape := range fallbackDecoratorShapes {
			if !shape.re.MatchString(line) {
				continue
			}
			// Look ahead up to 10 lines for the decorated function.
			for j := i + 1; j < min(i+10, len(lines)); j++ {
				defMatch := pythonDefPattern.FindStringSubmatch(lines[j])
				if defMatch == nil {
					continue
				}
				name := defMatch[1]
				if handlerFuncNames[name] {
					break
				}
				entries = append(entries, capability.Entry{
					Name:        name,
					Description: docstringFromLines(lines, j),
					Kind:        capability.KindTool,
					File:        filePath,
					Line:        j + 1,
					DetectedBy:  "regex_" + shape.tag,
				})
				break
			}
			break
		}
	}

	entries = append(entries, extractPythonToolCalls(filePath, content)...)
	entries = append(entries, extractPythonToolLists(filePath, content)...)

	return entries
}

// extractPythonToolCalls matches receiver.tool("name", "description")
// call forms.
func extractPythonToolCalls(filePath, content string) []capability.Entry {
	var entries []capability.Entry

	for _, pattern := range pythonToolCallPatterns {
		for _, match := range pattern.FindAllStringSubmatchIndex(content, -1) {
			entries = append(entries, capability.Entry{
				Name:        submatch(content, match, 1),
				Description: submatch(content, match, 2),
				Kind:        capability.KindTool,
				File:        filePath,
				Line:        lineAt(content, match[0]),
				DetectedBy:  capability.StrategyPythonToolCall,
			})
		}
	}

	return entries
}

// extractPythonToolLists matches tools = [...] and return {"tools": [...]}
// bodies and parses the object literals inside.
func extractPythonToolLists(filePath, content string) []capability.Entry {
	var entries []capability.Entry

	for _, pattern := range pythonToolListPatterns {
		for _, match := range pattern.FindAllStringSubmatchIndex(content, -1) {
			body := submatch(content, match, 1)
			baseLine := lineAt(content, match[0])

			for _, object := range toolObjectPattern.FindAllStringSubmatchIndex(body, -1) {
				entries = append(entries, capability.Entry{
					Name:        submatch(body, object, 1),
					Description: submatch(body, object, 2),
					Kind:        capability.KindTool,
					File:        filePath,
					Line:        baseLine + strings.Count(body[:object[0]], "\n"),
					DetectedBy:  capability.StrategyRegexToolsList,
				})
			}
		}
	}

	return entries
}

// docstringFromLines scans the lines after a def for a triple-quoted
// docstring, handling both the single-line and multi-line forms.
func docstringFromLines(lines []string, defLine int) string {
	for i := defLine + 1; i < min(defLine+10, len(lines)); i++ {
		line := strings.TrimSpace(lines[i])
		quote := ""
		switch {
		case strings.HasPrefix(line, `"""`):
			quote = `"""`
		case strings.HasPrefix(line, "'''"):
			quote = "'''"
		default:
			continue
		}

		// Single-line docstring.
		if strings.Count(line, quote) >= 2 {
			return strings.TrimSpace(strings.Trim(line, quote))
		}

		// Multi-line: accumulate until the closing quote.
		docLines := []string{strings.TrimPrefix(line, quote)}
		for j := i + 1; j < min(i+20, len(lines)); j++ {
			docLine := strings.TrimSpace(lines[j])
			if strings.HasSuffix(docLine, quote) {
				docLines = append(docLines, strings.TrimSuffix(docLine, quote))
				return strings.TrimSpace(strings.Join(docLines, "\n"))
			}
			docLines = append(docLines, docLine)
		}
		return strings.TrimSpace(strings.Join(docLines, "\n"))
	}
	return ""
}
