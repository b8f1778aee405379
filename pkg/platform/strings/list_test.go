package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "whitespace only", input: "   ", expected: nil},
		{name: "single", input: "PXEnableGrouping", expected: []string{"pxenablegrouping"}},
		{
			name:     "dedupes case-insensitively preserving first order",
			input:    "b, A ,a,B,c",
			expected: []string{"b", "a", "c"},
		},
		{name: "drops empty segments", input: ",x,,y,", expected: []string{"x", "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitList(tt.input))
		})
	}
}

func TestSet(t *testing.T) {
	set := Set("Amc", "webblends", " AMC ")
	assert.Len(t, set, 2)
	_, ok := set["amc"]
	assert.True(t, ok)
}
