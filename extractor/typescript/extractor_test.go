package typescript_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/archmap/extractor/typescript"
)

func TestExtractor_ExtractSource(t *testing.T) {
	source := `/**
 * @component Payment Processor
 * Handles card payments.
 */
import { api } from './api';

/** Charges a card. */
export async function charge(amount: number): Promise<Receipt> {
  return api.post('/charge', { amount });
}

export class Ledger {
  /** Records one entry. */
  record(entry: Entry): void {
    this.entries.push(entry);
  }
}

export const refund = async (id: string): Promise<void> => {
  await api.post('/refund', { id });
};

export interface Receipt {
  id: string;
}

function internalHelper(): number {
  return 42;
}
`
	extractor := typescript.New(nil)
	record, err := extractor.ExtractSource([]byte(source), "payment.ts")
	require.NoError(t, err)
	require.Empty(t, record.ParseError)

	require.NotEmpty(t, record.CommentBlocks)
	assert.Contains(t, record.CommentBlocks[0], "@component Payment Processor")

	byName := map[string]int{}
	for i, item := range record.CodeItems {
		byName[item.Name] = i
	}

	require.Contains(t, byName, "charge")
	charge := record.CodeItems[byName["charge"]]
	assert.Equal(t, "function", charge.Kind)
	assert.True(t, charge.IsAsync)
	assert.True(t, charge.IsExported)
	assert.Equal(t, "Promise<Receipt>", charge.ReturnType)
	assert.Contains(t, charge.Doc, "Charges a card.")
	assert.Contains(t, charge.Signature, "charge(amount: number)")
	assert.Contains(t, charge.Body, "api.post")

	require.Contains(t, byName, "Ledger")
	assert.Equal(t, "class", record.CodeItems[byName["Ledger"]].Kind)

	require.Contains(t, byName, "Ledger.record")
	method := record.CodeItems[byName["Ledger.record"]]
	assert.Equal(t, "method", method.Kind)
	assert.Contains(t, method.Doc, "Records one entry.")

	require.Contains(t, byName, "refund")
	refund := record.CodeItems[byName["refund"]]
	assert.Equal(t, "function", refund.Kind)
	assert.True(t, refund.IsAsync)

	require.Contains(t, byName, "Receipt")
	assert.Equal(t, "type", record.CodeItems[byName["Receipt"]].Kind)

	require.Contains(t, byName, "internalHelper")
	assert.False(t, record.CodeItems[byName["internalHelper"]].IsExported)
}

func TestExtractor_TSXReferences(t *testing.T) {
	source := `export function Checkout() {
  return (
    <div>
      <CartSummary />
      <PaymentForm onSubmit={submit}>
        <span>pay</span>
      </PaymentForm>
    </div>
  );
}
`
	extractor := typescript.New(nil)
	record, err := extractor.ExtractSource([]byte(source), "checkout.tsx")
	require.NoError(t, err)
	require.Empty(t, record.ParseError)
	assert.Equal(t, []string{"CartSummary", "PaymentForm"}, record.References)
}

func TestExtractor_SyntaxErrorIsRecorded(t *testing.T) {
	extractor := typescript.New(nil)
	record, err := extractor.ExtractSource([]byte("export function ((( {"), "broken.ts")
	require.NoError(t, err)
	assert.NotEmpty(t, record.ParseError)
	assert.Empty(t, record.CodeItems)
}
