package extractors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmaher/mcpscan/internal/scanner/capability"
)

// Test Plan for TypeScriptExtractor:
// - Mine tools array literals across their common forms
// - Mine single inline tool objects
// - Accept switch cases only with tool context and a plausible name
// - Reject single-character and generic case labels
// - Mine server.tool() calls and async function candidates
// - Reject helper-shaped function names
// - Mine @CreateAction decorator literals
// - Mine setRequestHandler bodies and bare tools returns
// - Mine schema-reference objects and typed tool constants
// - Priority dedup keeps the most specific detection per name

func TestTypeScriptExtractor_ToolsArray(t *testing.T) {
	t.Parallel()

	source := `
const tools = [
  { name: "search_web", description: "Search the web for pages" },
  { name: "fetch_page", description: "Fetch a page by URL" },
];
`
	entries := NewTypeScriptExtractor().Extract("index.ts", []byte(source))

	search := findEntry(t, entries, "search_web")
	assert.Equal(t, "Search the web for pages", search.Description)
	findEntry(t, entries, "fetch_page")
}

func TestTypeScriptExtractor_SwitchCaseWithComment(t *testing.T) {
	t.Parallel()

	source := `
async function handleToolCall(request) {
  switch (request.params.name) {
    // Resize an image to the given dimensions
    case "resize_image":
      return resize(request);
    case "x":
      return tiny(request);
    case "default":
      return fallback(request);
  }
}
`
	entries := NewTypeScriptExtractor().Extract("handler.ts", []byte(source))

	resize := findEntry(t, entries, "resize_image")
	assert.Equal(t, capability.StrategyTSSwitchCase, resize.DetectedBy)
	assert.Equal(t, "Resize an image to the given dimensions", resize.Description)

	// Single-character labels never survive, comments or not.
	for _, entry := range entries {
		assert.NotEqual(t, "x", entry.Name)
		assert.NotEqual(t, "default", entry.Name)
	}
}

func TestTypeScriptExtractor_ServerToolCall(t *testing.T) {
	t.Parallel()

	source := `server.tool("echo_text", "Echo the provided text back");`
	entries := NewTypeScriptExtractor().Extract("echo.ts", []byte(source))

	echo := findEntry(t, entries, "echo_text")
	assert.Equal(t, "Echo the provided text back", echo.Description)
	assert.Equal(t, capability.StrategyTSToolCall, echo.DetectedBy)
}

func TestTypeScriptExtractor_AsyncFunctionHeuristic(t *testing.T) {
	t.Parallel()

	source := `
// Generate a thumbnail for the given image tool input
async function generateThumbnail(input) {
  return render(input);
}

async function getRawTextString(html) {
  return html;
}
`
	entries := NewTypeScriptExtractor().Extract("images.ts", []byte(source))

	thumb := findEntry(t, entries, "generateThumbnail")
	assert.Equal(t, capability.StrategyTSFunction, thumb.DetectedBy)

	// getXxxString is a helper shape and must not be reported.
	for _, entry := range entries {
		assert.NotEqual(t, "getRawTextString", entry.Name)
	}
}

func TestTypeScriptExtractor_CreateActionBeatsFunctionHeuristic(t *testing.T) {
	t.Parallel()

	source := `
@CreateAction({name: "fetchData", description: "Fetches data from API"})
async function fetchData(args) {
  // tool entry point
  return api.fetch(args);
}
`
	entries := NewTypeScriptExtractor().Extract("actions.ts", []byte(source))

	fetch := findEntry(t, entries, "fetchData")
	assert.Equal(t, capability.StrategyTSCreateAction, fetch.DetectedBy)
	assert.Equal(t, "Fetches data from API", fetch.Description)
}

func TestTypeScriptExtractor_RequestHandlerReturn(t *testing.T) {
	t.Parallel()

	source := `
server.setRequestHandler(ListToolsRequestSchema, async (request) => {
  return { tools: [{ name: "list_files", description: "List directory contents" }] };
});
`
	entries := NewTypeScriptExtractor().Extract("server.ts", []byte(source))

	listFiles := findEntry(t, entries, "list_files")
	assert.Equal(t, "List directory contents", listFiles.Description)
}

func TestTypeScriptExtractor_SchemaReference(t *testing.T) {
	t.Parallel()

	source := `
const definitions = [
  {
    name: "read_text_file",
    description: "Read a text file from disk",
    inputSchema: zodToJsonSchema(ReadTextFileArgsSchema),
  },
];
`
	entries := NewTypeScriptExtractor().Extract("fs.ts", []byte(source))

	read := findEntry(t, entries, "read_text_file")
	assert.Equal(t, "Read a text file from disk", read.Description)
}

func TestTypeScriptExtractor_ToolConstant(t *testing.T) {
	t.Parallel()

	source := `
const SEQUENTIAL_THINKING_TOOL: Tool = {
  name: "sequential_thinking",
  description: "Break a problem into ordered thinking steps",
  inputSchema: schema,
};
`
	entries := NewTypeScriptExtractor().Extract("think.ts", []byte(source))

	think := findEntry(t, entries, "sequential_thinking")
	assert.Equal(t, capability.StrategyTSToolConstant, think.DetectedBy)
	assert.Equal(t, "Break a problem into ordered thinking steps", think.Description)
}

func TestTypeScriptExtractor_DeduplicatesAcrossDetectors(t *testing.T) {
	t.Parallel()

	// The same tool appears as an array element and as an inline object;
	// one entry must survive.
	source := `
const tools = [
  { name: "convert_csv", description: "Convert CSV to JSON" },
];
`
	entries := NewTypeScriptExtractor().Extract("csv.ts", []byte(source))

	seen := 0
	for _, entry := range entries {
		if entry.Name == "convert_csv" {
			seen++
		}
	}
	assert.Equal(t, 1, seen)
}

func TestLooksLikeToolName(t *testing.T) {
	t.Parallel()

	assert.True(t, looksLikeToolName("fetchData"))
	assert.True(t, looksLikeToolName("summarize"), "length > 5")
	assert.False(t, looksLikeToolName("x"))
	assert.False(t, looksLikeToolName("abc"))
}

func TestIsHelperFunction(t *testing.T) {
	t.Parallel()

	assert.True(t, isHelperFunction("stringUtilThing", ""))
	assert.True(t, isHelperFunction("getMarkdownStringFromHtmlByTD", ""))
	assert.True(t, isHelperFunction("anything", "// helper for parsing"))
	assert.False(t, isHelperFunction("searchWeb", "calls the tool api"))
}
