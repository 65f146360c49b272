package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/viant/archmap/pipeline"
)

var (
	flagConfig      string
	flagRoot        string
	flagOutput      string
	flagSystemName  string
	flagInclude     []string
	flagExclude     []string
	flagIndent      bool
	flagUnexported  bool
	flagWithTests   bool
	flagConcurrency int
	flagVerbose     bool
)

var rootCmd = &cobra.Command{
	Use:           "archmap",
	Short:         "Extracts an architecture graph from annotated source code",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var extractCmd = &cobra.Command{
	Use:   "extract [root]",
	Short: "Scan a source tree and emit the architecture graph as JSON",
	Long: `Scans a source tree for architecture annotations (@component, @module,
@namespace, @actor, @uses) in comments and docstrings, resolves container
boundaries from packaging manifests and emits the merged graph as JSON.

Examples:
  archmap extract ./services --output graph.json
  archmap extract --config archmap.yaml
  archmap extract . --include 'src/**' --exclude '**/generated/**'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		options, err := resolveOptions(cmd, args)
		if err != nil {
			return err
		}
		logger := newLogger(flagVerbose)
		return pipeline.New(options, logger).Execute(cmd.Context())
	},
}

// resolveOptions layers flags over the optional YAML config file. A flag the
// user set explicitly always wins.
func resolveOptions(cmd *cobra.Command, args []string) (*pipeline.Options, error) {
	options := pipeline.DefaultOptions()
	if flagConfig != "" {
		loaded, err := pipeline.LoadOptions(cmd.Context(), flagConfig)
		if err != nil {
			return nil, err
		}
		options = loaded
	}
	if len(args) > 0 {
		options.Root = args[0]
	} else if cmd.Flags().Changed("root") {
		options.Root = flagRoot
	}
	if cmd.Flags().Changed("output") {
		options.Output = flagOutput
	}
	if cmd.Flags().Changed("system-name") {
		options.SystemName = flagSystemName
	}
	if cmd.Flags().Changed("include") {
		options.Include = flagInclude
	}
	if cmd.Flags().Changed("exclude") {
		options.Exclude = flagExclude
	}
	if cmd.Flags().Changed("indent") {
		options.Indent = flagIndent
	}
	if cmd.Flags().Changed("include-unexported") {
		options.IncludeUnexported = flagUnexported
	}
	if cmd.Flags().Changed("with-tests") {
		options.SkipTests = !flagWithTests
	}
	if cmd.Flags().Changed("concurrency") {
		options.Concurrency = flagConcurrency
	}
	return options, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func init() {
	extractCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "YAML options file")
	extractCmd.Flags().StringVar(&flagRoot, "root", ".", "directory to scan")
	extractCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "JSON output file (default stdout)")
	extractCmd.Flags().StringVar(&flagSystemName, "system-name", "", "name for the default container")
	extractCmd.Flags().StringSliceVar(&flagInclude, "include", nil, "glob patterns to include")
	extractCmd.Flags().StringSliceVar(&flagExclude, "exclude", nil, "glob patterns to exclude")
	extractCmd.Flags().BoolVar(&flagIndent, "indent", true, "pretty-print the JSON output")
	extractCmd.Flags().BoolVar(&flagUnexported, "include-unexported", false, "keep non-exported code items")
	extractCmd.Flags().BoolVar(&flagWithTests, "with-tests", false, "include test files")
	extractCmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "parallel extraction bound (0 = NumCPU)")
	extractCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(extractCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
