package javascript

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/viant/archmap/graph"
	"github.com/viant/archmap/tag"
)

// Extractor parses JavaScript and JSX sources with tree-sitter. The grammar
// handles JSX natively so .js, .jsx and .mjs all share one front end.
type Extractor struct {
	config *graph.Config
}

// New creates a JavaScript extractor with the provided configuration.
func New(config *graph.Config) *Extractor {
	if config == nil {
		config = graph.DefaultConfig()
	}
	return &Extractor{config: config}
}

// ExtractFile reads and parses a JavaScript source file.
func (e *Extractor) ExtractFile(path string) (*graph.FileExtraction, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return e.ExtractSource(src, path)
}

// ExtractSource parses JavaScript source code from a byte slice. Parse
// failures are recorded on the result so a broken file never aborts a run.
func (e *Extractor) ExtractSource(src []byte, path string) (*graph.FileExtraction, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

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
	e.processTopLevel(root, src, record)
	collectElementReferences(root, src, record)
	return record, nil
}

// processTopLevel walks the direct children of the program node, pairing
// declarations with the comment immediately above them. Comments without
// exported declarations still surface as raw blocks for tag extraction.
func (e *Extractor) processTopLevel(root *sitter.Node, src []byte, record *graph.FileExtraction) {
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
			e.processDeclaration(node, src, record, false, pendingDoc)
		}
		pendingDoc = ""
	}
}

func (e *Extractor) processDeclaration(node *sitter.Node, src []byte, record *graph.FileExtraction, exported bool, doc string) {
	switch node.Type() {
	case "function_declaration", "generator_function_declaration":
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil {
			return
		}
		record.AddCodeItem(graph.RawCodeItem{
			Name:       nameNode.Content(src),
			Kind:       "function",
			Line:       int(node.StartPoint().Row) + 1,
			Signature:  signatureOf(node, src),
			Doc:        doc,
			IsAsync:    isAsync(node),
			IsExported: exported,
			Body:       bodyOf(node, src),
		})
	case "class_declaration":
		e.processClass(node, src, record, exported, doc)
	case "lexical_declaration", "variable_declaration":
		e.processArrowFunctions(node, src, record, exported, doc)
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
			IsAsync:    isAsync(value),
			IsExported: exported,
			Body:       bodyOf(value, src),
		})
	}
}

// signatureOf returns the declaration text up to the body.
func signatureOf(node *sitter.Node, src []byte) string {
	body := node.ChildByFieldName("body")
	if body == nil || body.StartByte() <= node.StartByte() {
		text := node.Content(src)
		if idx := strings.Index(text, "\n"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(string(src[node.StartByte():body.StartByte()]))
}

func bodyOf(node *sitter.Node, src []byte) string {
	body := node.ChildByFieldName("body")
	if body == nil {
		return ""
	}
	return body.Content(src)
}

// isAsync reports whether a function-like node carries the async modifier.
func isAsync(node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "async" {
			return true
		}
		if child.Type() == "formal_parameters" || child.Type() == "statement_block" {
			break
		}
	}
	return false
}

// collectElementReferences records capitalized JSX element names as
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

func isComponentReference(name string) bool {
	if name == "" || strings.Contains(name, ".") {
		return false
	}
	return unicode.IsUpper(rune(name[0]))
}

func containsString(items []string, value string) bool {
	for _, item := range items {
		if item == value {
			return true
		}
	}
	return false
}
