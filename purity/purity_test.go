package purity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/archmap/purity"
)

func TestClassify(t *testing.T) {
	classifier := purity.New()

	tests := []struct {
		name       string
		isAsync    bool
		returnType string
		body       string
		expected   purity.Label
	}{
		{
			name:     "async wins before anything else",
			isAsync:  true,
			body:     "return a + b",
			expected: purity.Effectful,
		},
		{
			name:       "promise return type",
			returnType: "Promise<Receipt>",
			body:       "return compute(x)",
			expected:   purity.Effectful,
		},
		{
			name:       "generator return type",
			returnType: "Generator[int, None, None]",
			expected:   purity.Effectful,
		},
		{
			name:     "fetch call in body",
			body:     "const res = await fetch(url)",
			expected: purity.Effectful,
		},
		{
			name:     "random access",
			body:     "return Math.random() * n",
			expected: purity.Effectful,
		},
		{
			name:     "global mutation keyword",
			body:     "global counter\ncounter += 1",
			expected: purity.Effectful,
		},
		{
			name:     "plain arithmetic is pure",
			body:     "return a + b",
			expected: purity.Pure,
		},
		{
			name:       "value return type is pure",
			returnType: "number",
			body:       "return items.map(scale)",
			expected:   purity.Pure,
		},
		{
			name:     "empty body is pure",
			expected: purity.Pure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifier.Classify(tt.isAsync, tt.returnType, tt.body))
		})
	}
}

func TestClassifyCustomPatterns(t *testing.T) {
	classifier := purity.New("ledger.append(")
	assert.Equal(t, purity.Effectful, classifier.Classify(false, "", "ledger.append(entry)"))
	// The default pattern set is replaced, not extended.
	assert.Equal(t, purity.Pure, classifier.Classify(false, "", "console.log(x)"))
}

func TestReduce(t *testing.T) {
	assert.Equal(t, purity.Pure, purity.Reduce())
	assert.Equal(t, purity.Pure, purity.Reduce(purity.Pure, purity.Pure))
	assert.Equal(t, purity.Effectful, purity.Reduce(purity.Pure, purity.Effectful, purity.Pure))
}
