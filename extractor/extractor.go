package extractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/archmap/extractor/golang"
	"github.com/viant/archmap/extractor/javascript"
	"github.com/viant/archmap/extractor/python"
	"github.com/viant/archmap/extractor/typescript"
	"github.com/viant/archmap/graph"
)

// Extractor parses one source file into a per-file extraction record.
type Extractor interface {
	// ExtractSource parses source code from a byte slice.
	ExtractSource(src []byte, path string) (*graph.FileExtraction, error)

	// ExtractFile reads and parses a source file.
	ExtractFile(path string) (*graph.FileExtraction, error)
}

// Factory creates appropriate extractors based on language.
type Factory struct {
	config *graph.Config
}

// NewFactory creates a new extractor factory with the given config.
func NewFactory(config *graph.Config) *Factory {
	if config == nil {
		config = graph.DefaultConfig()
	}
	return &Factory{config: config}
}

// GetExtractor returns an appropriate extractor based on file extension.
func (f *Factory) GetExtractor(filename string) (Extractor, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ts", ".tsx", ".mts":
		return typescript.New(f.config), nil
	case ".js", ".jsx", ".mjs":
		return javascript.New(f.config), nil
	case ".py":
		return python.New(f.config), nil
	case ".go":
		return golang.New(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
}

// Supported reports whether a file extension has a registered front end.
func (f *Factory) Supported(filename string) bool {
	_, err := f.GetExtractor(filename)
	return err == nil
}

// ExtractFile is a convenience method that gets the appropriate extractor
// and extracts the file.
func (f *Factory) ExtractFile(filename string) (*graph.FileExtraction, error) {
	extractor, err := f.GetExtractor(filename)
	if err != nil {
		return nil, err
	}
	return extractor.ExtractFile(filename)
}
