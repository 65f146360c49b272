package graph

// Config controls extraction and aggregation behavior.
type Config struct {
	// SystemName names the synthetic default container assigned to files no
	// manifest encloses; empty falls back to "Application".
	SystemName string `yaml:"systemName"`

	// IncludeUnexported keeps non-exported code items in the graph.
	IncludeUnexported bool `yaml:"includeUnexported"`

	// SkipTests excludes test files from extraction.
	SkipTests bool `yaml:"skipTests"`

	// EffectPatterns overrides the default effectful body patterns used by
	// the purity classifier.
	EffectPatterns []string `yaml:"effectPatterns"`
}

// DefaultConfig returns the extraction defaults.
func DefaultConfig() *Config {
	return &Config{
		IncludeUnexported: false,
		SkipTests:         true,
	}
}
