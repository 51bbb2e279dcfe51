// Package capability defines the data model shared by every detector:
// the capability entry itself, the kinds of capability an MCP server can
// declare, and the strategy tags that identify which detector produced an
// entry. Strategy tags are used only for dedup priority and diagnostics.
package capability

import "regexp"

// Kind classifies a capability entry.
type Kind string

const (
	KindTool     Kind = "tool"
	KindPrompt   Kind = "prompt"
	KindResource Kind = "resource"
)

// Entry is a single discovered capability declaration.
type Entry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Kind        Kind   `json:"type"`
	File        string `json:"file"`
	Line        int    `json:"line"`
	DetectedBy  string `json:"detected_by"`
}

// Detection strategy tags. The vocabulary is shared between the Python
// tiers and the TypeScript detectors so one ranking table covers both.
const (
	StrategyASTDecorator       = "ast_decorator"
	StrategyASTRegistration    = "ast_registration"
	StrategyASTToolList        = "ast_list_tools"
	StrategyASTPromptList      = "ast_list_prompts"
	StrategyASTResourceList    = "ast_list_resources"
	StrategyASTToolCtor        = "ast_tool_constructor"
	StrategyASTPromptCtor      = "ast_prompt_constructor"
	StrategyASTResourceCtor    = "ast_resource_constructor"
	StrategyFastMCPDecorator   = "fastmcp_decorator"
	StrategyDocstringToolsList = "docstring_tools_list"
	StrategyPythonToolCall     = "python_server_tool_call"
	StrategyRegexToolsList     = "regex_tools_list"
	StrategyTSToolsArray       = "ts_tools_array"
	StrategyTSToolObject       = "ts_tool_object"
	StrategyTSSwitchCase       = "ts_switch_case"
	StrategyTSFunction         = "ts_function"
	StrategyTSToolCall         = "ts_server_tool_call"
	StrategyTSCreateAction     = "ts_create_action_decorator"
	StrategyTSRequestHandler   = "ts_set_request_handler"
	StrategyTSSimpleReturn     = "ts_simple_return"
	StrategyTSSchemaReference  = "ts_schema_reference"
	StrategyTSToolConstant     = "ts_tool_constant"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{2,100}$`)
var numericPattern = regexp.MustCompile(`^[0-9]+$`)

// ValidName reports whether a name satisfies the catalog's naming
// invariant: 2-100 chars of [A-Za-z0-9_-], not purely numeric.
func ValidName(name string) bool {
	return namePattern.MatchString(name) && !numericPattern.MatchString(name)
}

// ConstructorName maps a kind to the constructor identifier used by
// MCP SDKs when building handler return values.
func (k Kind) ConstructorName() string {
	switch k {
	case KindPrompt:
		return "Prompt"
	case KindResource:
		return "Resource"
	default:
		return "Tool"
	}
}

// PluralKey maps a kind to the dictionary key handlers return it under.
func (k Kind) PluralKey() string {
	switch k {
	case KindPrompt:
		return "prompts"
	case KindResource:
		return "resources"
	default:
		return "tools"
	}
}

// ListStrategy returns the strategy tag for entries mined out of a
// handler's returned list for this kind.
func (k Kind) ListStrategy() string {
	switch k {
	case KindPrompt:
		return StrategyASTPromptList
	case KindResource:
		return StrategyASTResourceList
	default:
		return StrategyASTToolList
	}
}

// CtorStrategy returns the strategy tag for entries built from a
// constructor call for this kind.
func (k Kind) CtorStrategy() string {
	switch k {
	case KindPrompt:
		return StrategyASTPromptCtor
	case KindResource:
		return StrategyASTResourceCtor
	default:
		return StrategyASTToolCtor
	}
}
