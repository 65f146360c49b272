package extractor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/archmap/extractor"
)

func TestFactory_GetExtractor(t *testing.T) {
	factory := extractor.NewFactory(nil)

	supported := []string{"a.ts", "b.tsx", "c.mts", "d.js", "e.jsx", "f.mjs", "g.py", "h.go", "DIR/UPPER.TS"}
	for _, name := range supported {
		impl, err := factory.GetExtractor(name)
		require.NoError(t, err, name)
		assert.NotNil(t, impl, name)
		assert.True(t, factory.Supported(name), name)
	}

	for _, name := range []string{"x.rb", "y.java", "Makefile", "z.css"} {
		_, err := factory.GetExtractor(name)
		assert.Error(t, err, name)
		assert.False(t, factory.Supported(name), name)
	}
}
