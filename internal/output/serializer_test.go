package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaher/mcpscan/internal/scanner/capability"
)

// Test Plan for the serializer:
// - ParseFormat accepts the three formats and rejects everything else
// - JSON output uses the catalog's wire field names
// - An empty catalog renders as [] in JSON, not null
// - The table renders a header, a rule, and truncated descriptions
// - The list renders "- name: description" lines
// - Empty catalogs in human formats say so

var sampleCatalog = []capability.Entry{
	{
		Name:        "search_web",
		Description: "Search the web for pages",
		Kind:        capability.KindTool,
		File:        "servers/search.py",
		Line:        12,
		DetectedBy:  capability.StrategyASTDecorator,
	},
	{
		Name:        "code_review",
		Description: "Review code changes and flag style and correctness problems in them",
		Kind:        capability.KindPrompt,
		File:        "servers/review.py",
		Line:        40,
		DetectedBy:  capability.StrategyASTPromptCtor,
	},
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"json", "table", "list"} {
		format, err := ParseFormat(valid)
		require.NoError(t, err)
		assert.Equal(t, Format(valid), format)
	}

	_, err := ParseFormat("yaml")
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleCatalog, FormatJSON))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	first := decoded[0]
	assert.Equal(t, "search_web", first["name"])
	assert.Equal(t, "Search the web for pages", first["description"])
	assert.Equal(t, "tool", first["type"])
	assert.Equal(t, "servers/search.py", first["file"])
	assert.Equal(t, float64(12), first["line"])
	assert.Equal(t, "ast_decorator", first["detected_by"])
}

func TestWriteJSON_EmptyCatalog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, FormatJSON))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleCatalog, FormatTable))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Contains(t, lines[0], "Name")
	assert.Contains(t, lines[0], "Description")
	assert.Equal(t, strings.Repeat("-", 146), lines[1])
	assert.Contains(t, lines[2], "search_web")
	assert.Contains(t, lines[2], "tool")

	// The long prompt description is cut at the column width.
	assert.Contains(t, lines[3], "Review code changes and flag style and correctn...")
	assert.NotContains(t, lines[3], "problems in them")
}

func TestWriteTable_EmptyCatalog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, FormatTable))
	assert.Equal(t, "No capabilities found.\n", buf.String())
}

func TestWriteList(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleCatalog, FormatList))

	want := "- search_web: Search the web for pages\n" +
		"- code_review: Review code changes and flag style and correctness problems in them\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteList_EmptyCatalog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, FormatList))
	assert.Equal(t, "No capabilities found.\n", buf.String())
}

func TestTruncateDescription(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncateDescription("short"))

	exact := strings.Repeat("x", 50)
	assert.Equal(t, exact, truncateDescription(exact))

	long := strings.Repeat("x", 51)
	assert.Equal(t, strings.Repeat("x", 47)+"...", truncateDescription(long))
}
