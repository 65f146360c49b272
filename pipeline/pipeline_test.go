package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/archmap/pipeline"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestPipeline_Run(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name": "shop-api", "version": "1.2.0"}`)
	writeFile(t, root, "src/payments.ts", `/**
 * @component Payments
 * @uses Orders confirms totals
 */
export function charge(amount: number): number {
  return amount;
}
`)
	writeFile(t, root, "src/orders.ts", `/**
 * @component Orders
 * @actor Customer {Person} {in} places orders
 */
export async function placeOrder(): Promise<void> {
  await fetch('/orders');
}
`)
	writeFile(t, root, "src/orders.test.ts", `export function placeOrderSpec(): void {}`)
	writeFile(t, root, "node_modules/lib/index.js", `export function ignored() {}`)

	options := pipeline.DefaultOptions()
	options.Root = root
	p := pipeline.New(options, nil)

	result, diagnostics, err := p.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, diagnostics.SkippedFiles)

	require.Len(t, result.Containers, 1)
	assert.Equal(t, "shop-api", result.Containers[0].ID)

	var componentIDs []string
	for _, component := range result.Components {
		componentIDs = append(componentIDs, component.ID)
	}
	assert.Contains(t, componentIDs, "shop-api::payments")
	assert.Contains(t, componentIDs, "shop-api::orders")

	require.Len(t, result.Actors, 1)
	assert.Equal(t, "customer", result.Actors[0].ID)

	var kinds []string
	for _, relationship := range result.Relationships {
		kinds = append(kinds, relationship.Kind)
	}
	assert.Contains(t, kinds, "uses")
	assert.Contains(t, kinds, "interacts")

	// test files and dependency directories never contribute items
	for _, item := range result.CodeItems {
		assert.NotContains(t, item.FilePath, "orders.test.ts")
		assert.NotContains(t, item.FilePath, "node_modules")
	}
}

func TestPipeline_IncludeExclude(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.py", `"""@component Alpha"""

def run():
    pass
`)
	writeFile(t, root, "scripts/b.py", `"""@component Beta"""

def run():
    pass
`)

	options := pipeline.DefaultOptions()
	options.Root = root
	options.Include = []string{"src/**"}
	p := pipeline.New(options, nil)

	result, _, err := p.Run(context.Background())
	require.NoError(t, err)

	var names []string
	for _, component := range result.Components {
		names = append(names, component.Name)
	}
	assert.Contains(t, names, "Alpha")
	assert.NotContains(t, names, "Beta")
}

func TestPipeline_ParseErrorSurfacesAsSkip(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "broken.py", "def broken(:\n  ???\n")
	writeFile(t, root, "ok.py", `"""@component Healthy"""

def run():
    pass
`)

	options := pipeline.DefaultOptions()
	options.Root = root
	p := pipeline.New(options, nil)

	result, diagnostics, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, diagnostics.SkippedFiles, 1)
	assert.Contains(t, diagnostics.SkippedFiles[0].Path, "broken.py")

	require.Len(t, result.Components, 1)
	assert.Equal(t, "Healthy", result.Components[0].Name)
}

func TestPipeline_UnreadableFileIsSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ok.py", `"""@component Healthy"""

def run():
    pass
`)
	// A dangling symlink passes the scan but fails the read.
	require.NoError(t, os.Symlink(filepath.Join(root, "missing.py"), filepath.Join(root, "ghost.py")))

	options := pipeline.DefaultOptions()
	options.Root = root
	p := pipeline.New(options, nil)

	result, diagnostics, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, diagnostics.SkippedFiles, 1)
	assert.Contains(t, diagnostics.SkippedFiles[0].Path, "ghost.py")

	require.Len(t, result.Components, 1)
	assert.Equal(t, "Healthy", result.Components[0].Name)
}

func TestLoadOptions(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, "archmap.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`root: ./src
systemName: Shop
include:
  - "**/*.ts"
output: graph.json
indent: false
includeUnexported: true
`), 0o644))

	options, err := pipeline.LoadOptions(context.Background(), configPath)
	require.NoError(t, err)
	assert.Equal(t, "./src", options.Root)
	assert.Equal(t, "Shop", options.SystemName)
	assert.Equal(t, []string{"**/*.ts"}, options.Include)
	assert.Equal(t, "graph.json", options.Output)
	assert.False(t, options.Indent)
	assert.True(t, options.IncludeUnexported)
	// defaults survive the overlay
	assert.True(t, options.SkipTests)
}
