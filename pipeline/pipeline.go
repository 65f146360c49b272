package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/viant/archmap/extractor"
	"github.com/viant/archmap/graph"
	"github.com/viant/archmap/manifest"
)

// Pipeline drives one end to end run: discover manifests, scan sources,
// extract files in parallel and fold the records into an architecture graph.
type Pipeline struct {
	options  *Options
	factory  *extractor.Factory
	detector *manifest.Detector
	logger   *slog.Logger
}

// New creates a pipeline for the given options.
func New(options *Options, logger *slog.Logger) *Pipeline {
	if options == nil {
		options = DefaultOptions()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		options:  options,
		factory:  extractor.NewFactory(&options.Config),
		detector: manifest.NewDetector(),
		logger:   logger,
	}
}

// Run builds the architecture graph for the configured root. Per-file parse
// failures surface in the diagnostics, not as an error.
func (p *Pipeline) Run(ctx context.Context) (*graph.ArchitectureGraph, *graph.Diagnostics, error) {
	manifests, err := p.detector.Discover(ctx, p.options.Root)
	if err != nil {
		return nil, nil, fmt.Errorf("manifest discovery failed: %w", err)
	}

	fileScanner, err := newScanner(p.factory, p.options)
	if err != nil {
		return nil, nil, err
	}
	files, err := fileScanner.scan(p.options.Root)
	if err != nil {
		return nil, nil, fmt.Errorf("scan failed: %w", err)
	}

	aggregator := graph.NewAggregator(&p.options.Config, manifests)

	concurrency := p.options.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	var mutex sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)
	for _, file := range files {
		file := file
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			record, err := p.factory.ExtractFile(file)
			if err != nil {
				// A vanished or unreadable file is skipped, never fatal.
				record = &graph.FileExtraction{Path: file, ParseError: err.Error()}
			}
			mutex.Lock()
			aggregator.Add(record)
			mutex.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	result := aggregator.Build()
	diagnostics := aggregator.Diagnostics()

	p.logger.Info("extraction completed",
		"root", p.options.Root,
		"files", len(files),
		"manifests", len(manifests),
		"containers", len(result.Containers),
		"components", len(result.Components),
		"codeItems", len(result.CodeItems),
		"actors", len(result.Actors),
		"relationships", len(result.Relationships),
		"skippedFiles", len(diagnostics.SkippedFiles),
		"droppedTags", len(diagnostics.DroppedTags),
		"unresolvedUses", len(diagnostics.UnresolvedUses))
	for _, skipped := range diagnostics.SkippedFiles {
		p.logger.Warn("file skipped", "path", skipped.Path, "reason", skipped.Reason)
	}
	for _, unresolved := range diagnostics.UnresolvedUses {
		p.logger.Warn("unresolved uses target", "declaration", unresolved)
	}
	return result, diagnostics, nil
}

// Execute runs the pipeline and writes the emitted JSON to the configured
// output, or stdout when none is set.
func (p *Pipeline) Execute(ctx context.Context) error {
	result, _, err := p.Run(ctx)
	if err != nil {
		return err
	}
	emitter := &graph.JSONEmitter{Indent: p.options.Indent}
	data, err := emitter.Emit(result)
	if err != nil {
		return fmt.Errorf("emit failed: %w", err)
	}
	if p.options.Output == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(p.options.Output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", p.options.Output, err)
	}
	p.logger.Info("graph written", "output", p.options.Output, "bytes", len(data))
	return nil
}
