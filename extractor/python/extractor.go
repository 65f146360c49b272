package python

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/viant/archmap/graph"
	"github.com/viant/archmap/tag"
)

// Extractor parses Python sources with tree-sitter. Module and definition
// docstrings feed tag extraction; leading "#" comment runs are treated the
// same way.
type Extractor struct {
	config *graph.Config
}

// New creates a Python extractor with the provided configuration.
func New(config *graph.Config) *Extractor {
	if config == nil {
		config = graph.DefaultConfig()
	}
	return &Extractor{config: config}
}

// ExtractFile reads and parses a Python source file.
func (e *Extractor) ExtractFile(path string) (*graph.FileExtraction, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return e.ExtractSource(src, path)
}

// ExtractSource parses Python source code from a byte slice. Parse failures
// are recorded on the result so a broken file never aborts a run.
func (e *Extractor) ExtractSource(src []byte, path string) (*graph.FileExtraction, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

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
	e.processModule(root, src, record)
	return record, nil
}

// processModule walks the module's direct children. The module docstring and
// top-level comment runs become raw comment blocks; function and class
// definitions become code items.
func (e *Extractor) processModule(root *sitter.Node, src []byte, record *graph.FileExtraction) {
	pendingDoc := ""
	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		switch node.Type() {
		case "comment":
			cleaned := tag.CleanComment(node.Content(src))
			record.AddCommentBlock(cleaned)
			pendingDoc = cleaned
			continue
		case "expression_statement":
			if text, ok := docstringOf(node, src); ok {
				record.AddCommentBlock(text)
			}
		case "function_definition":
			e.processFunction(node, src, record, "", pendingDoc)
		case "decorated_definition":
			if definition := node.ChildByFieldName("definition"); definition != nil {
				switch definition.Type() {
				case "function_definition":
					e.processFunction(definition, src, record, "", pendingDoc)
				case "class_definition":
					e.processClass(definition, src, record, pendingDoc)
				}
			}
		case "class_definition":
			e.processClass(node, src, record, pendingDoc)
		}
		pendingDoc = ""
	}
}

// processFunction emits one code item for a def. When owner is non-empty the
// function is a method and named Owner.name.
func (e *Extractor) processFunction(node *sitter.Node, src []byte, record *graph.FileExtraction, owner, doc string) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nameNode.Content(src)
	itemName := name
	kind := "function"
	if owner != "" {
		itemName = owner + "." + name
		kind = "method"
	}
	if docstring, ok := bodyDocstring(node, src); ok {
		doc = docstring
	}
	record.AddCodeItem(graph.RawCodeItem{
		Name:       itemName,
		Kind:       kind,
		Line:       int(node.StartPoint().Row) + 1,
		Signature:  signatureOf(node, src),
		Doc:        doc,
		ReturnType: returnTypeOf(node, src),
		IsAsync:    isAsync(node),
		IsExported: !strings.HasPrefix(name, "_"),
		Body:       bodyOf(node, src),
	})
}

// processClass emits the class plus one item per method defined in its body.
func (e *Extractor) processClass(node *sitter.Node, src []byte, record *graph.FileExtraction, doc string) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	className := nameNode.Content(src)
	if docstring, ok := bodyDocstring(node, src); ok {
		doc = docstring
	}
	record.AddCodeItem(graph.RawCodeItem{
		Name:       className,
		Kind:       "class",
		Line:       int(node.StartPoint().Row) + 1,
		Signature:  "class " + className,
		Doc:        doc,
		IsExported: !strings.HasPrefix(className, "_"),
	})

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "function_definition":
			e.processFunction(member, src, record, className, "")
		case "decorated_definition":
			if definition := member.ChildByFieldName("definition"); definition != nil && definition.Type() == "function_definition" {
				e.processFunction(definition, src, record, className, "")
			}
		}
	}
}

// docstringOf unwraps an expression statement holding a bare string literal.
func docstringOf(node *sitter.Node, src []byte) (string, bool) {
	if node.NamedChildCount() != 1 {
		return "", false
	}
	child := node.NamedChild(0)
	if child.Type() != "string" {
		return "", false
	}
	return tag.CleanDocstring(child.Content(src)), true
}

// bodyDocstring returns the docstring of a function or class body, if any.
func bodyDocstring(node *sitter.Node, src []byte) (string, bool) {
	body := node.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() == 0 {
		return "", false
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" {
		return "", false
	}
	return docstringOf(first, src)
}

// signatureOf returns the def line up to (and excluding) the body.
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

// returnTypeOf returns the annotated return type, if any.
func returnTypeOf(node *sitter.Node, src []byte) string {
	returnType := node.ChildByFieldName("return_type")
	if returnType == nil {
		return ""
	}
	return strings.TrimSpace(returnType.Content(src))
}

// isAsync reports whether a def carries the async keyword.
func isAsync(node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "async" {
			return true
		}
		if child.Type() == "def" {
			break
		}
	}
	return false
}
