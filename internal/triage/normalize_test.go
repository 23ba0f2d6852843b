package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	kb := testKB(t)

	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "canonical key passes through",
			input:    []string{"headache"},
			expected: []string{"headache"},
		},
		{
			name:     "synonym resolves",
			input:    []string{"mild headache"},
			expected: []string{"headache"},
		},
		{
			name:     "casing and whitespace collapse",
			input:    []string{"  MILD   Headache "},
			expected: []string{"headache"},
		},
		{
			name:     "duplicates and synonyms of the same symptom collapse",
			input:    []string{"headache", "headache", "Headache ", "head ache"},
			expected: []string{"headache"},
		},
		{
			name:     "unknown becomes synthetic key",
			input:    []string{"sparkly elbows"},
			expected: []string{"unknown:sparkly elbows"},
		},
		{
			name:     "mixed output is sorted",
			input:    []string{"fever", "cough", "sparkly elbows"},
			expected: []string{"cough", "fever", "unknown:sparkly elbows"},
		},
		{
			name:     "blank entries are dropped",
			input:    []string{"  ", "fever", ""},
			expected: []string{"fever"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys, err := kb.Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, keys)
		})
	}
}

func TestNormalizeEmptySet(t *testing.T) {
	kb := testKB(t)

	for _, input := range [][]string{nil, {}, {""}, {"   ", "\t"}} {
		_, err := kb.Normalize(input)
		assert.ErrorIs(t, err, ErrEmptySymptomSet)
	}
}
