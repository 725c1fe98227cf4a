package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/bonus-engine/internal/dice"
)

func TestParseParts(t *testing.T) {
	tests := []struct {
		name     string
		formula  string
		rendered string
		wantErr  bool
	}{
		{
			name:     "single die",
			formula:  "2d6",
			rendered: "2d6",
		},
		{
			name:     "die with flat bonus",
			formula:  "1d8 + 3",
			rendered: "1d8 + 3",
		},
		{
			name:     "count defaults to one",
			formula:  "d20",
			rendered: "1d20",
		},
		{
			name:     "negative part",
			formula:  "2d6 - 1",
			rendered: "2d6 - 1",
		},
		{
			name:     "modifier tail survives",
			formula:  "4d6r<2x6",
			rendered: "4d6r<2x6",
		},
		{
			name:     "parenthesized group stays flat",
			formula:  "2 * (1 + 3)",
			rendered: "2*(1+3)",
		},
		{
			name:     "variable chunk stays flat",
			formula:  "1d4 + @abilities.str.mod",
			rendered: "1d4 + @abilities.str.mod",
		},
		{
			name:    "empty formula",
			formula: "",
			wantErr: true,
		},
		{
			name:    "unbalanced parentheses",
			formula: "(1 + 2",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, err := dice.ParseParts(tt.formula)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rendered, dice.RenderParts(parts))
		})
	}
}

func TestParseParts_IdentifiesDice(t *testing.T) {
	parts, err := dice.ParseParts("2d6 + 1d4 + 5")
	require.NoError(t, err)
	require.Len(t, parts, 3)

	require.NotNil(t, parts[0].Die)
	assert.Equal(t, 2, parts[0].Die.Number)
	assert.Equal(t, 6, parts[0].Die.Faces)

	require.NotNil(t, parts[1].Die)
	assert.Equal(t, 1, parts[1].Die.Number)
	assert.Equal(t, 4, parts[1].Die.Faces)

	assert.Nil(t, parts[2].Die)
	assert.Equal(t, "5", parts[2].Flat)
}

func TestModKind(t *testing.T) {
	tests := []struct {
		token string
		kind  string
	}{
		{"r<2", "r"},
		{"rr1", "r"},
		{"x", "x"},
		{"x>=5", "x"},
		{"xo6", "x"},
		{"min2", "min"},
		{"max4", "max"},
		{"kh1", "kh"},
		{"dl1", "dl"},
		{"bogus", ""},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.kind, dice.ModKind(tt.token))
		})
	}
}

func TestDie_AddMod(t *testing.T) {
	die := &dice.Die{Number: 2, Faces: 6}

	assert.True(t, die.AddMod("r=1"))
	assert.Equal(t, "2d6r=1", die.String())

	// one modifier per family
	assert.False(t, die.AddMod("rr2"))
	assert.Equal(t, "2d6r=1", die.String())

	assert.True(t, die.AddMod("x"))
	assert.Equal(t, "2d6r=1x", die.String())

	assert.False(t, die.AddMod("unknown"))
}
