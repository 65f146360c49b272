package golang

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strings"

	"github.com/viant/archmap/graph"
)

// Extractor parses Go sources with the standard go/parser. Comment groups
// feed tag extraction and declarations become code items.
type Extractor struct {
	config *graph.Config
}

// New creates a Go extractor with the provided configuration.
func New(config *graph.Config) *Extractor {
	if config == nil {
		config = graph.DefaultConfig()
	}
	return &Extractor{config: config}
}

// ExtractFile reads and parses a Go source file.
func (e *Extractor) ExtractFile(path string) (*graph.FileExtraction, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return e.ExtractSource(src, path)
}

// ExtractSource parses Go source code from a byte slice. Parse failures are
// recorded on the result so a broken file never aborts a run.
func (e *Extractor) ExtractSource(src []byte, path string) (*graph.FileExtraction, error) {
	record := &graph.FileExtraction{Path: path}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		record.ParseError = err.Error()
		return record, nil
	}

	for _, group := range file.Comments {
		record.AddCommentBlock(strings.TrimSpace(group.Text()))
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			e.processFunc(fset, src, d, record)
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := typeSpec.Doc.Text()
				if doc == "" {
					doc = d.Doc.Text()
				}
				record.AddCodeItem(graph.RawCodeItem{
					Name:       typeSpec.Name.Name,
					Kind:       "type",
					Line:       fset.Position(typeSpec.Pos()).Line,
					Signature:  "type " + typeSpec.Name.Name,
					Doc:        strings.TrimSpace(doc),
					IsExported: ast.IsExported(typeSpec.Name.Name),
				})
			}
		}
	}
	return record, nil
}

func (e *Extractor) processFunc(fset *token.FileSet, src []byte, decl *ast.FuncDecl, record *graph.FileExtraction) {
	name := decl.Name.Name
	kind := "function"
	if decl.Recv != nil && len(decl.Recv.List) > 0 {
		kind = "method"
		if receiver := receiverTypeName(decl.Recv.List[0].Type); receiver != "" {
			name = receiver + "." + name
		}
	}

	signature := sliceSource(fset, src, decl.Pos(), decl.Type.End())
	body := ""
	if decl.Body != nil {
		signature = sliceSource(fset, src, decl.Pos(), decl.Body.Pos())
		body = sliceSource(fset, src, decl.Body.Pos(), decl.Body.End())
	}
	returnType := ""
	if results := decl.Type.Results; results != nil {
		returnType = sliceSource(fset, src, results.Pos(), results.End())
	}

	record.AddCodeItem(graph.RawCodeItem{
		Name:       name,
		Kind:       kind,
		Line:       fset.Position(decl.Pos()).Line,
		Signature:  strings.TrimSpace(signature),
		Doc:        strings.TrimSpace(decl.Doc.Text()),
		ReturnType: strings.TrimSpace(returnType),
		IsExported: ast.IsExported(decl.Name.Name),
		Body:       body,
	})
}

// receiverTypeName resolves the base identifier of a receiver type,
// unwrapping pointers and type parameters.
func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	}
	return ""
}

func sliceSource(fset *token.FileSet, src []byte, from, to token.Pos) string {
	start := fset.Position(from).Offset
	end := fset.Position(to).Offset
	if start < 0 || end > len(src) || start >= end {
		return ""
	}
	return string(src[start:end])
}
