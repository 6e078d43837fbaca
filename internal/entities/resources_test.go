package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeAmounts(t *testing.T) {
	tests := []struct {
		name     string
		input    []ResourceAmount
		expected []ResourceAmount
	}{
		{
			name:     "nil list",
			input:    nil,
			expected: nil,
		},
		{
			name: "duplicates are summed in first-appearance order",
			input: []ResourceAmount{
				{Resource: ResourceMagic, Amount: 1},
				{Resource: ResourceOrder, Amount: 2},
				{Resource: ResourceMagic, Amount: 2},
			},
			expected: []ResourceAmount{
				{Resource: ResourceMagic, Amount: 3},
				{Resource: ResourceOrder, Amount: 2},
			},
		},
		{
			name: "zero totals are dropped",
			input: []ResourceAmount{
				{Resource: ResourceOrder, Amount: 0},
				{Resource: ResourceMagic, Amount: 1},
			},
			expected: []ResourceAmount{
				{Resource: ResourceMagic, Amount: 1},
			},
		},
		{
			name: "all zero collapses to nil",
			input: []ResourceAmount{
				{Resource: ResourceOrder, Amount: 0},
			},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MergeAmounts(tt.input))
		})
	}
}
