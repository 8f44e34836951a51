package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountIndicators(t *testing.T) {
	vocab := []string{"bayesian", "machine learning", "pipeline"}

	tests := []struct {
		name string
		text string
		want int
	}{
		{"none present", "a wet-lab protocol for cell culture", 0},
		{"one present", "a bayesian approach to mapping", 1},
		{"all present", "bayesian machine learning pipeline", 3},
		{"repeats count once", "pipeline pipeline pipeline", 1},
		{"empty text", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountIndicators(tt.text, vocab))
		})
	}
}

func TestContainsAny(t *testing.T) {
	vocab := []string{"poster", "poster session"}
	assert.True(t, ContainsAny("presented at the poster session", vocab))
	assert.False(t, ContainsAny("platform presentation", vocab))
}

func TestNameTokens(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"plain name", "Jane Doe", []string{"jane", "doe"}},
		{"middle initial dropped", "Jane A. Doe", []string{"jane", "doe"}},
		{"trailing punctuation stripped", "Smith, John", []string{"smith", "john"}},
		{"empty", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NameTokens(tt.in))
		})
	}
}

func TestTokenSupersetMatch(t *testing.T) {
	tests := []struct {
		name string
		want string
		have string
		ok   bool
	}{
		{"exact", "Jane Doe", "Jane Doe", true},
		{"have has middle initial", "Jane Doe", "Jane A. Doe", true},
		{"case insensitive", "jane doe", "JANE DOE", true},
		{"missing surname", "Jane Doe", "Jane Smith", false},
		{"want longer than have", "Jane Alexandra Doe", "Jane Doe", false},
		{"empty want never matches", "", "Jane Doe", false},
		{"initial-only tokens ignored", "J. Doe", "Jane Doe", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, TokenSupersetMatch(tt.want, tt.have))
		})
	}
}
