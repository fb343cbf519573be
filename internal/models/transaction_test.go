package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionDirection(t *testing.T) {
	debit := Transaction{Direction: DirectionDebit}
	assert.True(t, debit.IsDebit())
	assert.False(t, debit.IsCredit())

	credit := Transaction{Direction: DirectionCredit}
	assert.True(t, credit.IsCredit())
	assert.False(t, credit.IsDebit())

	unknown := Transaction{Direction: "Transfer"}
	assert.False(t, unknown.IsDebit())
	assert.False(t, unknown.IsCredit())
}

func TestNormalizeKeyword(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Carrefour", "carrefour"},
		{"  Carrefour  ", "carrefour"},
		{"CARREFOUR CITY", "carrefour city"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeKeyword(tt.input), "input %q", tt.input)
	}
}
