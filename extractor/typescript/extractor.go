package typescript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/viant/archmap/graph"
	"github.com/viant/archmap/tag"
)

// Extractor parses TypeScript sources with tree-sitter and produces per-file
// extraction records: comment blocks, exported code items and structural
// component references from TSX markup.
type Extractor struct {
	config *graph.Config
}

// New creates a TypeScript extractor with the provided configuration.
func New(config *graph.Config) *Extractor {
	if config == nil {
		config = graph.DefaultConfig()
	}
	return &Extractor{config: config}
}

// ExtractFile reads and parses a TypeScript source file.
func (e *Extractor) ExtractFile(path string) (*graph.FileExtraction, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return e.ExtractSource(src, path)
}

// ExtractSource parses TypeScript source code from a byte slice. A syntax
// failure is recorded on the returned record, not returned as an error, so
// one bad file never aborts a run.
func (e *Extractor) ExtractSource(src []byte, path string) (*graph.FileExtraction, error) {
	parser := sitter.NewParser()
	if strings.EqualFold(filepath.Ext(path), ".tsx") {
		parser.SetLanguage(tsx.GetLanguage())
	} else {
		parser.SetLanguage(typescript.GetLanguage())
	}

	record := &graph.FileExtraction{Path: path}
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		record.ParseError = err.Error()
		return record, nil
	}

	root := tree.RootNode()
	if root.HasError() {
		record.ParseError = fmt.Sprintf("syntax error in %s", path)
		return record, nil
	}
	e.processTopLevel(root, src, record, false)
	collectElementReferences(root, src, record)
	return record, nil
}

// processTopLevel walks the direct children of a module (or an export
// statement's declaration), pairing each declaration with the comment that
// precedes it. Every top-level comment also becomes a raw comment block for
// tag extraction.
func (e *Extractor) processTopLevel(root *sitter.Node, src []byte, record *graph.FileExtraction, exported bool) {
	pendingDoc := ""
	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		switch node.Type() {
		case "comment":
			cleaned := tag.CleanComment(node.Content(src))
			record.AddCommentBlock(cleaned)
			pendingDoc = cleaned
			continue
		case "export_statement":
			if declaration := node.ChildByFieldName("declaration"); declaration != nil {
				e.processDeclaration(declaration, src, record, true, pendingDoc)
			}
		default:
			e.processDeclaration(node, src, record, exported, pendingDoc)
		}
		pendingDoc = ""
	}
}

// processDeclaration turns one declaration node into code items.
func (e *Extractor) processDeclaration(node *sitter.Node, src []byte, record *graph.FileExtraction, exported bool, doc string) {
	switch node.Type() {
	case "function_declaration", "generator_function_declaration":
		if item, ok := functionItem(node, src, exported, doc); ok {
			record.AddCodeItem(item)
		}
	case "class_declaration", "abstract_class_declaration":
		e.processClass(node, src, record, exported, doc)
	case "lexical_declaration", "variable_declaration":
		e.processArrowFunctions(node, src, record, exported, doc)
	case "interface_declaration", "type_alias_declaration", "enum_declaration":
		if name := node.ChildByFieldName("name"); name != nil {
			record.AddCodeItem(graph.RawCodeItem{
				Name:       name.Content(src),
				Kind:       "type",
				Line:       int(node.StartPoint().Row) + 1,
				Signature:  firstLineOf(node.Content(src)),
				Doc:        doc,
				IsExported: exported,
			})
		}
	}
}

// processClass emits the class itself plus one item per method.
func (e *Extractor) processClass(node *sitter.Node, src []byte, record *graph.FileExtraction, exported bool, doc string) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	className := nameNode.Content(src)
	record.AddCodeItem(graph.RawCodeItem{
		Name:       className,
		Kind:       "class",
		Line:       int(node.StartPoint().Row) + 1,
		Signature:  "class " + className,
		Doc:        doc,
		IsExported: exported,
	})

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	methodDoc := ""
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "comment":
			methodDoc = tag.CleanComment(member.Content(src))
			continue
		case "method_definition":
			methodName := member.ChildByFieldName("name")
			if methodName == nil {
				break
			}
			name := methodName.Content(src)
			if name == "constructor" {
				break
			}
			record.AddCodeItem(graph.RawCodeItem{
				Name:       className + "." + name,
				Kind:       "method",
				Line:       int(member.StartPoint().Row) + 1,
				Signature:  signatureOf(member, src),
				Doc:        methodDoc,
				ReturnType: returnTypeOf(member, src),
				IsAsync:    isAsync(member),
				IsExported: exported && !strings.HasPrefix(name, "#"),
				Body:       bodyOf(member, src),
			})
		}
		methodDoc = ""
	}
}

// processArrowFunctions extracts const Name = (...) => {...} style functions.
func (e *Extractor) processArrowFunctions(node *sitter.Node, src []byte, record *graph.FileExtraction, exported bool, doc string) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		declarator := node.NamedChild(i)
		if declarator.Type() != "variable_declarator" {
			continue
		}
		value := declarator.ChildByFieldName("value")
		nameNode := declarator.ChildByFieldName("name")
		if value == nil || nameNode == nil {
			continue
		}
		if value.Type() != "arrow_function" && value.Type() != "function_expression" && value.Type() != "function" {
			continue
		}
		record.AddCodeItem(graph.RawCodeItem{
			Name:       nameNode.Content(src),
			Kind:       "function",
			Line:       int(declarator.StartPoint().Row) + 1,
			Signature:  signatureOf(value, src),
			Doc:        doc,
			ReturnType: returnTypeOf(value, src),
			IsAsync:    isAsync(value),
			IsExported: exported,
			Body:       bodyOf(value, src),
		})
	}
}

// functionItem builds a code item from a function declaration node.
func functionItem(node *sitter.Node, src []byte, exported bool, doc string) (graph.RawCodeItem, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return graph.RawCodeItem{}, false
	}
	return graph.RawCodeItem{
		Name:       nameNode.Content(src),
		Kind:       "function",
		Line:       int(node.StartPoint().Row) + 1,
		Signature:  signatureOf(node, src),
		Doc:        doc,
		ReturnType: returnTypeOf(node, src),
		IsAsync:    isAsync(node),
		IsExported: exported,
		Body:       bodyOf(node, src),
	}, true
}

// signatureOf returns the declaration text up to the body.
func signatureOf(node *sitter.Node, src []byte) string {
	body := node.ChildByFieldName("body")
	if body == nil || body.StartByte() <= node.StartByte() {
		return firstLineOf(node.Content(src))
	}
	return strings.TrimSpace(string(src[node.StartByte():body.StartByte()]))
}

// bodyOf returns the body text of a function-like node.
func bodyOf(node *sitter.Node, src []byte) string {
	body := node.ChildByFieldName("body")
	if body == nil {
		return ""
	}
	return body.Content(src)
}

// returnTypeOf returns the annotated return type without the leading colon.
func returnTypeOf(node *sitter.Node, src []byte) string {
	returnType := node.ChildByFieldName("return_type")
	if returnType == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(returnType.Content(src), ":"))
}

// isAsync reports whether a function-like node carries the async modifier.
func isAsync(node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "async" {
			return true
		}
		// Modifiers precede the name/parameters; stop once past them.
		if child.Type() == "formal_parameters" || child.Type() == "statement_block" {
			break
		}
	}
	return false
}

// collectElementReferences records capitalized TSX element names as
// structural component references.
func collectElementReferences(node *sitter.Node, src []byte, record *graph.FileExtraction) {
	switch node.Type() {
	case "jsx_opening_element", "jsx_self_closing_element":
		if name := node.ChildByFieldName("name"); name != nil {
			text := name.Content(src)
			if isComponentReference(text) && !containsString(record.References, text) {
				record.References = append(record.References, text)
			}
		}
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		collectElementReferences(node.NamedChild(i), src, record)
	}
}

// isComponentReference reports whether an element name looks like a
// component: a capitalized simple identifier, not an html tag or a member
// expression.
func isComponentReference(name string) bool {
	if name == "" || strings.Contains(name, ".") {
		return false
	}
	return unicode.IsUpper(rune(name[0]))
}

func firstLineOf(text string) string {
	if idx := strings.Index(text, "\n"); idx >= 0 {
		return strings.TrimSpace(text[:idx])
	}
	return strings.TrimSpace(text)
}

func containsString(items []string, value string) bool {
	for _, item := range items {
		if item == value {
			return true
		}
	}
	return false
}
