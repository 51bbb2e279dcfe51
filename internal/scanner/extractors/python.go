package extractors

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/dmaher/mcpscan/internal/scanner/capability"
)

// handlerKinds maps the reserved MCP handler decorator names to the kind
// of capability their return values declare.
var handlerKinds = map[string]capability.Kind{
	"list_tools":     capability.KindTool,
	"call_tool":      capability.KindTool,
	"list_prompts":   capability.KindPrompt,
	"get_prompt":     capability.KindPrompt,
	"list_resources": capability.KindResource,
	"read_resource":  capability.KindResource,
}

// registrationNames are call targets that register a tool imperatively.
var registrationNames = map[string]bool{
	"add_tool":      true,
	"register_tool": true,
}

// PythonExtractor extracts capability declarations from Python MCP
// servers. It layers three tiers: a tree-sitter structural pass, FastMCP
// framework literal matching, and a line-window regex fallback. Later
// tiers only contribute names the earlier tiers missed.
type PythonExtractor struct {
	language *sitter.Language
}

// NewPythonExtractor creates a Python extractor with the tree-sitter
// Python grammar loaded.
func NewPythonExtractor() *PythonExtractor {
	return &PythonExtractor{
		language: sitter.NewLanguage(python.Language()),
	}
}

// Extract runs all three tiers over one file's content. A structural
// parse failure skips tier 1 only; the regex tiers still run.
func (e *PythonExtractor) Extract(filePath string, source []byte) []capability.Entry {
	entries := e.structuralPass(filePath, source)

	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		seen[entry.Name] = true
	}

	for _, entry := range extractFrameworkLiterals(filePath, string(source)) {
		if !seen[entry.Name] {
			seen[entry.Name] = true
			entries = append(entries, entry)
		}
	}

	for _, entry := range extractPythonFallback(filePath, string(source)) {
		if !seen[entry.Name] {
			seen[entry.Name] = true
			entries = append(entries, entry)
		}
	}

	return entries
}

// structuralPass walks the parse tree for decorated functions, MCP
// handlers, and imperative registration calls.
func (e *PythonExtractor) structuralPass(filePath string, source []byte) []capability.Entry {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(e.language); err != nil {
		return nil
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	var entries []capability.Entry
	walkTree(tree.RootNode(), func(n *sitter.Node) bool {
		switch n.Kind() {
		case "function_definition":
			if entry, ok := e.checkDecorators(n, filePath, source); ok {
				entries = append(entries, entry)
			}
			if kind, ok := e.handlerKind(n, source); ok {
				entries = append(entries, e.extractFromHandler(n, filePath, source, kind)...)
			}
		case "call":
			if entry, ok := e.checkRegistration(n, filePath, source); ok {
				entries = append(entries, entry)
			}
		}
		return true
	})

	return entries
}

// decoratorsOf returns the decorator nodes attached to a function. In the
// Python grammar a decorated function is wrapped in decorated_definition
// with the decorators as siblings of the definition.
func decoratorsOf(fn *sitter.Node) []*sitter.Node {
	parent := fn.Parent()
	if parent == nil || parent.Kind() != "decorated_definition" {
		return nil
	}
	return findChildrenByType(parent, "decorator")
}

// decoratorCallee resolves the name a decorator expression refers to:
// @tool(), @server.tool() and @tool all resolve to "tool".
func decoratorCallee(decorator *sitter.Node, source []byte) string {
	expr := firstNamedChild(decorator)
	if expr == nil {
		return ""
	}

	switch expr.Kind() {
	case "call":
		return calleeName(expr, source)
	case "identifier":
		return extractNodeText(expr, source)
	case "attribute":
		return extractNodeText(expr.ChildByFieldName("attribute"), source)
	}
	return ""
}

// calleeName resolves the trailing identifier of a call's function
// expression: foo(...) -> "foo", a.b.foo(...) -> "foo".
func calleeName(call *sitter.Node, source []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}

	switch fn.Kind() {
	case "identifier":
		return extractNodeText(fn, source)
	case "attribute":
		return extractNodeText(fn.ChildByFieldName("attribute"), source)
	}
	return ""
}

// checkDecorators reports an entry when the function carries a capability
// declaration decorator (bare @tool, @tool(), or @receiver.tool()).
func (e *PythonExtractor) checkDecorators(fn *sitter.Node, filePath string, source []byte) (capability.Entry, bool) {
	for _, decorator := range decoratorsOf(fn) {
		if decoratorCallee(decorator, source) != "tool" {
			continue
		}

		name := extractNodeText(fn.ChildByFieldName("name"), source)
		if name == "" {
			continue
		}

		return capability.Entry{
			Name:        name,
			Description: docstringOf(fn, source),
			Kind:        capability.KindTool,
			File:        filePath,
			Line:        nodeLine(fn),
			DetectedBy:  capability.StrategyASTDecorator,
		}, true
	}
	return capability.Entry{}, false
}

// handlerKind reports the capability kind when the function is decorated
// as one of the six reserved MCP handlers.
func (e *PythonExtractor) handlerKind(fn *sitter.Node, source []byte) (capability.Kind, bool) {
	for _, decorator := range decoratorsOf(fn) {
		expr := firstNamedChild(decorator)
		if expr == nil || expr.Kind() != "call" {
			continue
		}
		if kind, ok := handlerKinds[calleeName(expr, source)]; ok {
			return kind, true
		}
	}
	return capability.KindTool, false
}

// extractFromHandler walks the handler's return statements and parses the
// capability lists they build.
func (e *PythonExtractor) extractFromHandler(fn *sitter.Node, filePath string, source []byte, kind capability.Kind) []capability.Entry {
	var entries []capability.Entry

	walkTree(fn, func(n *sitter.Node) bool {
		if n.Kind() != "return_statement" {
			return true
		}

		value := firstNamedChild(n)
		if value == nil {
			return true
		}

		switch value.Kind() {
		case "list":
			entries = append(entries, e.parseItemList(value, filePath, source, kind)...)
		case "dictionary":
			// A handler may return {"tools": [...]}; parse the list
			// under whichever plural key is present.
			for _, pair := range findChildrenByType(value, "pair") {
				key := stringLiteralValue(pair.ChildByFieldName("key"), source)
				listNode := pair.ChildByFieldName("value")
				if listNode == nil || listNode.Kind() != "list" {
					continue
				}
				switch key {
				case "tools":
					entries = append(entries, e.parseItemList(listNode, filePath, source, capability.KindTool)...)
				case "prompts":
					entries = append(entries, e.parseItemList(listNode, filePath, source, capability.KindPrompt)...)
				case "resources":
					entries = append(entries, e.parseItemList(listNode, filePath, source, capability.KindResource)...)
				}
			}
		}
		return true
	})

	return entries
}

// parseItemList parses the elements of a returned list literal as either
// mapping literals with name/description keys or constructor calls.
func (e *PythonExtractor) parseItemList(list *sitter.Node, filePath string, source []byte, kind capability.Kind) []capability.Entry {
	var entries []capability.Entry

	for i := 0; i < int(list.NamedChildCount()); i++ {
		item := list.NamedChild(uint(i))
		switch item.Kind() {
		case "dictionary":
			if entry, ok := e.entryFromDict(item, filePath, source, kind); ok {
				entries = append(entries, entry)
			}
		case "call":
			if entry, ok := e.entryFromConstructor(item, filePath, source, kind); ok {
				entries = append(entries, entry)
			}
		}
	}

	return entries
}

// entryFromDict extracts name/description from a mapping literal.
func (e *PythonExtractor) entryFromDict(dict *sitter.Node, filePath string, source []byte, kind capability.Kind) (capability.Entry, bool) {
	var name, description string

	for _, pair := range findChildrenByType(dict, "pair") {
		key := stringLiteralValue(pair.ChildByFieldName("key"), source)
		value := stringLiteralValue(pair.ChildByFieldName("value"), source)
		switch key {
		case "name":
			name = value
		case "description":
			description = value
		}
	}

	if name == "" {
		return capability.Entry{}, false
	}
	return capability.Entry{
		Name:        name,
		Description: description,
		Kind:        kind,
		File:        filePath,
		Line:        nodeLine(dict),
		DetectedBy:  kind.ListStrategy(),
	}, true
}

// entryFromConstructor extracts name/description from a Tool/Prompt/
// Resource constructor call, preferring keyword arguments and falling
// back to the first positional argument for the name.
func (e *PythonExtractor) entryFromConstructor(call *sitter.Node, filePath string, source []byte, kind capability.Kind) (capability.Entry, bool) {
	if calleeName(call, source) != kind.ConstructorName() {
		return capability.Entry{}, false
	}

	positional, keywords := callArguments(call, source)

	name := keywords["name"]
	if name == "" && len(positional) > 0 {
		name = positional[0]
	}
	if name == "" {
		return capability.Entry{}, false
	}

	return capability.Entry{
		Name:        name,
		Description: keywords["description"],
		Kind:        kind,
		File:        filePath,
		Line:        nodeLine(call),
		DetectedBy:  kind.CtorStrategy(),
	}, true
}

// checkRegistration reports an entry for add_tool/register_tool calls.
func (e *PythonExtractor) checkRegistration(call *sitter.Node, filePath string, source []byte) (capability.Entry, bool) {
	if !registrationNames[calleeName(call, source)] {
		return capability.Entry{}, false
	}

	positional, keywords := callArguments(call, source)

	name := keywords["name"]
	if name == "" && len(positional) > 0 {
		name = positional[0]
	}
	if name == "" {
		return capability.Entry{}, false
	}

	description := keywords["description"]
	if description == "" && len(positional) > 1 {
		description = positional[1]
	}

	return capability.Entry{
		Name:        name,
		Description: description,
		Kind:        capability.KindTool,
		File:        filePath,
		Line:        nodeLine(call),
		DetectedBy:  capability.StrategyASTRegistration,
	}, true
}

// callArguments collects the string-literal positional arguments and
// keyword arguments of a call. Non-literal arguments are ignored.
func callArguments(call *sitter.Node, source []byte) (positional []string, keywords map[string]string) {
	keywords = make(map[string]string)

	args := call.ChildByFieldName("arguments")
	if args == nil {
		return positional, keywords
	}

	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(uint(i))
		switch arg.Kind() {
		case "string":
			positional = append(positional, stringLiteralValue(arg, source))
		case "keyword_argument":
			key := extractNodeText(arg.ChildByFieldName("name"), source)
			value := stringLiteralValue(arg.ChildByFieldName("value"), source)
			if key != "" {
				keywords[key] = value
			}
		}
	}
	return positional, keywords
}

// docstringOf returns the trimmed leading string-literal statement of a
// function body, or "".
func docstringOf(fn *sitter.Node, source []byte) string {
	body := fn.ChildByFieldName("body")
	if body == nil {
		return ""
	}

	first := firstNamedChild(body)
	if first == nil || first.Kind() != "expression_statement" {
		return ""
	}

	str := firstNamedChild(first)
	if str == nil || str.Kind() != "string" {
		return ""
	}
	return strings.TrimSpace(stringLiteralValue(str, source))
}
