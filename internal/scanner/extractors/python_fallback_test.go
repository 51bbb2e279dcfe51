package extractors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaher/mcpscan/internal/scanner/capability"
)

// Test Plan for the Python regex tiers:
// - FastMCP decorator literals with and without description
// - Self-qualified FastMCP receiver
// - "Available Tools:" docstring bullet lists
// - Fallback decorator shapes with function lookahead
// - Single-line and multi-line docstring recovery
// - Handler function names excluded from lookahead results
// - receiver.tool("name", "description") call forms
// - Tool list literals with quoted and bare keys

func TestFrameworkLiterals_FastMCPDecorator(t *testing.T) {
	t.Parallel()

	content := `
@app.tool(name="translate_text", description="Translate text between languages")
def _impl():
    pass

@self.app.tool(name="detect_language")
def _impl2():
    pass
`
	entries := extractFrameworkLiterals("app.py", content)

	require.Len(t, entries, 2)

	translate := findEntry(t, entries, "translate_text")
	assert.Equal(t, "Translate text between languages", translate.Description)
	assert.Equal(t, capability.StrategyFastMCPDecorator, translate.DetectedBy)
	assert.Equal(t, 2, translate.Line)

	detect := findEntry(t, entries, "detect_language")
	assert.Empty(t, detect.Description)
}

func TestFrameworkLiterals_DocstringToolsList(t *testing.T) {
	t.Parallel()

	content := `"""Todo MCP server.

Available Tools:
- add_todo: Add a new todo with rich features
- list_todos: List all pending todos
"""
`
	entries := extractFrameworkLiterals("todo.py", content)

	require.Len(t, entries, 2)
	addTodo := findEntry(t, entries, "add_todo")
	assert.Equal(t, "Add a new todo with rich features", addTodo.Description)
	assert.Equal(t, capability.StrategyDocstringToolsList, addTodo.DetectedBy)
}

func TestPythonFallback_DecoratorLookahead(t *testing.T) {
	t.Parallel()

	content := `
@server.tool()
def get_forecast(city):
    """Get the forecast for a city."""
    return lookup(city)
`
	entries := extractPythonFallback("server.py", content)

	require.Len(t, entries, 1)
	assert.Equal(t, "get_forecast", entries[0].Name)
	assert.Equal(t, "Get the forecast for a city.", entries[0].Description)
	assert.Equal(t, "regex_server_tool_decorator", entries[0].DetectedBy)
	assert.Equal(t, 3, entries[0].Line)
}

func TestPythonFallback_MultilineDocstring(t *testing.T) {
	t.Parallel()

	content := `
@mcp.tool()
def analyze_logs(path):
    """Analyze a log file.

    Returns a summary of errors found.
    """
    pass
`
	entries := extractPythonFallback("logs.py", content)

	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Description, "Analyze a log file.")
	assert.Contains(t, entries[0].Description, "Returns a summary of errors found.")
}

func TestPythonFallback_SkipsHandlerFunctions(t *testing.T) {
	t.Parallel()

	content := `
@server.list_tools()
def list_tools():
    """Not a capability."""
    return []
`
	entries := extractPythonFallback("server.py", content)
	assert.Empty(t, entries)
}

func TestPythonFallback_ToolCallForm(t *testing.T) {
	t.Parallel()

	content := `mcp.tool("ping_host", "Ping a host and report latency")`
	entries := extractPythonFallback("net.py", content)

	require.Len(t, entries, 1)
	assert.Equal(t, "ping_host", entries[0].Name)
	assert.Equal(t, "Ping a host and report latency", entries[0].Description)
	assert.Equal(t, capability.StrategyPythonToolCall, entries[0].DetectedBy)
}

func TestPythonFallback_ToolListLiteral(t *testing.T) {
	t.Parallel()

	content := `
tools = [
    {"name": "search", "description": "Searches the web"},
    {"name": "scrape", "description": "Scrape a page"},
]
`
	entries := extractPythonFallback("tools.py", content)

	require.Len(t, entries, 2)
	search := findEntry(t, entries, "search")
	assert.Equal(t, "Searches the web", search.Description)
	assert.Equal(t, capability.StrategyRegexToolsList, search.DetectedBy)
	findEntry(t, entries, "scrape")
}

func TestPythonFallback_NoMatches(t *testing.T) {
	t.Parallel()

	entries := extractPythonFallback("plain.py", "x = 1\nprint(x)\n")
	assert.Empty(t, entries)
}
