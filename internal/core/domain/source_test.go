package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceKind_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		kind     SourceKind
		expected bool
	}{
		{name: "email is valid", kind: SourceKindEmail, expected: true},
		{name: "web is valid", kind: SourceKindWeb, expected: true},
		{name: "prompt is valid", kind: SourceKindPrompt, expected: true},
		{name: "empty is invalid", kind: SourceKind(""), expected: false},
		{name: "unknown is invalid", kind: SourceKind("rss"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.IsValid())
		})
	}
}

func TestSource_Truncated(t *testing.T) {
	s := Source{Content: strings.Repeat("x", 100)}

	assert.Len(t, s.Truncated(40).Content, 40)
	assert.Len(t, s.Truncated(0).Content, 100)
	assert.Len(t, s.Truncated(-1).Content, 100)
	assert.Len(t, s.Truncated(200).Content, 100)

	// The original is never mutated.
	assert.Len(t, s.Content, 100)
}
