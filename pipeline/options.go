package pipeline

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/viant/archmap/graph"
)

// Options configures one extraction run. Extraction settings are inlined so a
// single YAML document drives both the scanner and the aggregator.
type Options struct {
	// Root is the directory to scan.
	Root string `yaml:"root"`

	// Include restricts scanning to paths matching any of these glob
	// patterns, relative to Root. Empty means everything.
	Include []string `yaml:"include"`

	// Exclude removes matching paths after Include is applied.
	Exclude []string `yaml:"exclude"`

	// Output is the JSON destination; empty writes to stdout.
	Output string `yaml:"output"`

	// Indent pretty-prints the emitted JSON.
	Indent bool `yaml:"indent"`

	// Concurrency bounds parallel file extraction; zero uses NumCPU.
	Concurrency int `yaml:"concurrency"`

	graph.Config `yaml:",inline"`
}

// DefaultOptions returns a run over the current directory with extraction
// defaults.
func DefaultOptions() *Options {
	return &Options{
		Root:   ".",
		Indent: true,
		Config: *graph.DefaultConfig(),
	}
}

// LoadOptions reads a YAML options document and overlays it on the defaults.
func LoadOptions(ctx context.Context, URL string) (*Options, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read options %s: %w", URL, err)
	}
	options := DefaultOptions()
	if err := yaml.Unmarshal(data, options); err != nil {
		return nil, fmt.Errorf("failed to parse options %s: %w", URL, err)
	}
	if options.Root == "" {
		options.Root = "."
	}
	return options, nil
}
