package javascript_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/archmap/extractor/javascript"
)

func TestExtractor_ExtractSource(t *testing.T) {
	source := `/**
 * @component Order Service
 * @uses Inventory reserves stock
 */

/** Places an order. */
export async function placeOrder(cart) {
  const response = await fetch('/orders', { method: 'POST' });
  return response.json();
}

export class OrderRepository {
  /** Persists an order. */
  save(order) {
    this.store.set(order.id, order);
  }
}

const formatTotal = (cents) => (cents / 100).toFixed(2);
`
	extractor := javascript.New(nil)
	record, err := extractor.ExtractSource([]byte(source), "orders.js")
	require.NoError(t, err)
	require.Empty(t, record.ParseError)

	require.NotEmpty(t, record.CommentBlocks)
	assert.Contains(t, record.CommentBlocks[0], "@component Order Service")
	assert.Contains(t, record.CommentBlocks[0], "@uses Inventory")

	byName := map[string]int{}
	for i, item := range record.CodeItems {
		byName[item.Name] = i
	}

	require.Contains(t, byName, "placeOrder")
	placeOrder := record.CodeItems[byName["placeOrder"]]
	assert.Equal(t, "function", placeOrder.Kind)
	assert.True(t, placeOrder.IsAsync)
	assert.True(t, placeOrder.IsExported)
	assert.Contains(t, placeOrder.Doc, "Places an order.")
	assert.Contains(t, placeOrder.Body, "fetch('/orders'")

	require.Contains(t, byName, "OrderRepository")
	require.Contains(t, byName, "OrderRepository.save")
	save := record.CodeItems[byName["OrderRepository.save"]]
	assert.Equal(t, "method", save.Kind)
	assert.True(t, save.IsExported)

	require.Contains(t, byName, "formatTotal")
	formatTotal := record.CodeItems[byName["formatTotal"]]
	assert.False(t, formatTotal.IsExported)
	assert.False(t, formatTotal.IsAsync)
}

func TestExtractor_JSXReferences(t *testing.T) {
	source := `export function App() {
  return (
    <main>
      <Header title="shop" />
      <ProductList />
      <ProductList />
    </main>
  );
}
`
	extractor := javascript.New(nil)
	record, err := extractor.ExtractSource([]byte(source), "app.jsx")
	require.NoError(t, err)
	require.Empty(t, record.ParseError)
	assert.Equal(t, []string{"Header", "ProductList"}, record.References)
}

func TestExtractor_SyntaxErrorIsRecorded(t *testing.T) {
	extractor := javascript.New(nil)
	record, err := extractor.ExtractSource([]byte("class {{{"), "broken.js")
	require.NoError(t, err)
	assert.NotEmpty(t, record.ParseError)
}
