package tag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/archmap/tag"
)

func parseComment(t *testing.T, body string) *tag.Declarations {
	t.Helper()
	lines, leading := tag.Lex(body)
	return tag.Parse(lines, leading)
}

func TestParseComponentPriority(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
		source   tag.Kind
	}{
		{
			name:     "component beats module regardless of position",
			body:     "@module bar/baz\n@component Foo",
			expected: "Foo",
			source:   tag.KindComponent,
		},
		{
			name:     "module beats namespace",
			body:     "@namespace legacy\n@module billing",
			expected: "billing",
			source:   tag.KindModule,
		},
		{
			name:     "namespace alone",
			body:     "@namespace shared",
			expected: "shared",
			source:   tag.KindNamespace,
		},
		{
			name:     "path body keeps parent segment",
			body:     "@module authentication/oauth",
			expected: "authentication",
			source:   tag.KindModule,
		},
		{
			name:     "deep path keeps parent segment",
			body:     "@module services/auth/oauth",
			expected: "auth",
			source:   tag.KindModule,
		},
		{
			name:     "multi word component name",
			body:     "@component Payment Processor",
			expected: "Payment Processor",
			source:   tag.KindComponent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls := parseComment(t, tt.body)
			if assert.NotNil(t, decls.Component) {
				assert.Equal(t, tt.expected, decls.Component.Name)
				assert.Equal(t, tt.source, decls.Component.Source)
				assert.False(t, decls.Component.Inferred)
			}
		})
	}
}

func TestParseComponentDescription(t *testing.T) {
	decls := parseComment(t, "Processes card payments.\nRetries declined charges.\n\n@component Payments")
	if assert.NotNil(t, decls.Component) {
		assert.Equal(t, "Processes card payments.\nRetries declined charges.", decls.Component.Description)
	}
}

func TestParseActors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []tag.ActorDeclaration
		dropped  int
	}{
		{
			name: "full declaration",
			body: "@actor Database {System} {out} stores data",
			expected: []tag.ActorDeclaration{
				{Name: "Database", Kind: tag.ActorSystem, Direction: tag.DirectionOut, Description: "stores data"},
			},
		},
		{
			name: "direction defaults to both",
			body: "@actor User {Person} end user",
			expected: []tag.ActorDeclaration{
				{Name: "User", Kind: tag.ActorPerson, Direction: tag.DirectionBoth, Description: "end user"},
			},
		},
		{
			name: "name with spaces",
			body: "@actor Payment Gateway {System} {in} external PSP",
			expected: []tag.ActorDeclaration{
				{Name: "Payment Gateway", Kind: tag.ActorSystem, Direction: tag.DirectionIn, Description: "external PSP"},
			},
		},
		{
			name:    "missing braces dropped",
			body:    "@actor User Person in",
			dropped: 1,
		},
		{
			name:    "unknown kind dropped",
			body:    "@actor User {Robot} {in}",
			dropped: 1,
		},
		{
			name:    "unknown direction dropped",
			body:    "@actor User {Person} {sideways}",
			dropped: 1,
		},
		{
			name: "one bad line does not poison the rest",
			body: "@actor Broken\n@actor Ops {Person} {in} operators",
			expected: []tag.ActorDeclaration{
				{Name: "Ops", Kind: tag.ActorPerson, Direction: tag.DirectionIn, Description: "operators"},
			},
			dropped: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls := parseComment(t, tt.body)
			assert.Equal(t, tt.expected, decls.Actors)
			assert.Len(t, decls.Dropped, tt.dropped)
		})
	}
}

func TestParseUses(t *testing.T) {
	decls := parseComment(t, "@uses payment-gateway settles card charges\n@uses Ledger")
	expected := []tag.UsesDeclaration{
		{Target: "payment-gateway", Description: "settles card charges"},
		{Target: "Ledger"},
	}
	assert.Equal(t, expected, decls.Uses)
}

func TestParseEmptyComponentBodyDropped(t *testing.T) {
	decls := parseComment(t, "@component   ")
	assert.Nil(t, decls.Component)
}
