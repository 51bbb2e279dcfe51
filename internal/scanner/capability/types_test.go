package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for the data model:
// - ValidName accepts identifier-style names between 2 and 100 chars
// - ValidName rejects empty, one-char, overlong, numeric, and spaced names
// - Kind helpers map to the right constructor names and plural keys

func TestValidName(t *testing.T) {
	t.Parallel()

	valid := []string{"search_web", "fetch-page", "Tool2", "ab"}
	for _, name := range valid {
		assert.True(t, ValidName(name), name)
	}

	invalid := []string{"", "a", "12345", "has space", "naïve", string(make([]byte, 101))}
	for _, name := range invalid {
		assert.False(t, ValidName(name), name)
	}
}

func TestKindHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Tool", KindTool.ConstructorName())
	assert.Equal(t, "Prompt", KindPrompt.ConstructorName())
	assert.Equal(t, "Resource", KindResource.ConstructorName())

	assert.Equal(t, "tools", KindTool.PluralKey())
	assert.Equal(t, "prompts", KindPrompt.PluralKey())
	assert.Equal(t, "resources", KindResource.PluralKey())

	assert.Equal(t, StrategyASTToolList, KindTool.ListStrategy())
	assert.Equal(t, StrategyASTPromptCtor, KindPrompt.CtorStrategy())
	assert.Equal(t, StrategyASTResourceCtor, KindResource.CtorStrategy())
}
