package golang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/archmap/extractor/golang"
)

func TestExtractor_ExtractSource(t *testing.T) {
	source := `// Package billing charges customers.
//
// @component Billing
// @uses Ledger records entries
package billing

import "context"

// Invoice is one billable document.
type Invoice struct {
	ID string
}

// Charge bills the invoice amount.
func Charge(ctx context.Context, invoice *Invoice) (string, error) {
	return gateway.Post(ctx, invoice)
}

func (i *Invoice) total() int {
	return i.cents
}
`
	extractor := golang.New(nil)
	record, err := extractor.ExtractSource([]byte(source), "billing.go")
	require.NoError(t, err)
	require.Empty(t, record.ParseError)

	require.NotEmpty(t, record.CommentBlocks)
	assert.Contains(t, record.CommentBlocks[0], "@component Billing")
	assert.Contains(t, record.CommentBlocks[0], "@uses Ledger")

	byName := map[string]int{}
	for i, item := range record.CodeItems {
		byName[item.Name] = i
	}

	require.Contains(t, byName, "Invoice")
	invoice := record.CodeItems[byName["Invoice"]]
	assert.Equal(t, "type", invoice.Kind)
	assert.True(t, invoice.IsExported)
	assert.Contains(t, invoice.Doc, "one billable document")

	require.Contains(t, byName, "Charge")
	charge := record.CodeItems[byName["Charge"]]
	assert.Equal(t, "function", charge.Kind)
	assert.True(t, charge.IsExported)
	assert.Contains(t, charge.Signature, "func Charge(ctx context.Context")
	assert.Contains(t, charge.ReturnType, "string")
	assert.Contains(t, charge.Body, "gateway.Post")

	require.Contains(t, byName, "Invoice.total")
	total := record.CodeItems[byName["Invoice.total"]]
	assert.Equal(t, "method", total.Kind)
	assert.False(t, total.IsExported)
}

func TestExtractor_SyntaxErrorIsRecorded(t *testing.T) {
	extractor := golang.New(nil)
	record, err := extractor.ExtractSource([]byte("package broken\nfunc {{{"), "broken.go")
	require.NoError(t, err)
	assert.NotEmpty(t, record.ParseError)
}
