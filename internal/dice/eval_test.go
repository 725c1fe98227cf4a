package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/bonus-engine/internal/dice"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		want    float64
		ok      bool
	}{
		{name: "plain number", formula: "4", want: 4, ok: true},
		{name: "addition", formula: "2 + 3", want: 5, ok: true},
		{name: "precedence", formula: "2 + 3 * 4", want: 14, ok: true},
		{name: "parentheses", formula: "(2 + 3) * 4", want: 20, ok: true},
		{name: "unary minus", formula: "-2 + 5", want: 3, ok: true},
		{name: "division", formula: "7 / 2", want: 3.5, ok: true},
		{name: "nested groups", formula: "((1 + 1) * (2 + 2))", want: 8, ok: true},
		{name: "dice term", formula: "1d6 + 2", ok: false},
		{name: "unresolved variable", formula: "@abilities.str.mod + 1", ok: false},
		{name: "division by zero", formula: "4 / 0", ok: false},
		{name: "empty", formula: "", ok: false},
		{name: "trailing garbage", formula: "3 + 4 foo", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dice.Simplify(tt.formula)
			if !tt.ok {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		op   string
		want bool
	}{
		{name: "equal", a: 3, b: 3, op: "=", want: true},
		{name: "double equals", a: 3, b: 3, op: "==", want: true},
		{name: "equal absorbs float noise", a: 0.1 + 0.2, b: 0.3, op: "=", want: true},
		{name: "not equal", a: 3, b: 4, op: "!=", want: true},
		{name: "less than", a: 2, b: 3, op: "<", want: true},
		{name: "less than fails at equal", a: 3, b: 3, op: "<", want: false},
		{name: "less or equal at boundary", a: 3, b: 3, op: "<=", want: true},
		{name: "greater than", a: 5, b: 2, op: ">", want: true},
		{name: "greater or equal", a: 2, b: 2, op: ">=", want: true},
		{name: "unknown operator", a: 1, b: 1, op: "~", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dice.Compare(tt.a, tt.b, tt.op))
		})
	}
}

func TestValidate(t *testing.T) {
	assert.True(t, dice.Validate("2d6 + 3"))
	assert.True(t, dice.Validate("5"))
	assert.True(t, dice.Validate("1d8r=1x + @abilities.str.mod"))
	assert.False(t, dice.Validate(""))
	assert.False(t, dice.Validate("   "))
	assert.False(t, dice.Validate("(1 + 2"))
}

func TestReplaceVariables(t *testing.T) {
	data := map[string]any{
		"abilities": map[string]any{
			"str": map[string]any{"mod": 3},
			"cha": map[string]any{"mod": -1},
		},
		"item": map[string]any{
			"level": 2,
			"name":  "Wand",
		},
		"prof":   float64(4),
		"flying": true,
	}

	tests := []struct {
		name    string
		formula string
		want    string
	}{
		{
			name:    "no variables",
			formula: "1d6 + 2",
			want:    "1d6 + 2",
		},
		{
			name:    "nested path",
			formula: "1d8 + @abilities.str.mod",
			want:    "1d8 + 3",
		},
		{
			name:    "negative value",
			formula: "@abilities.cha.mod",
			want:    "-1",
		},
		{
			name:    "float renders without exponent",
			formula: "@prof * 2",
			want:    "4 * 2",
		},
		{
			name:    "bool renders as number",
			formula: "@flying",
			want:    "1",
		},
		{
			name:    "string value",
			formula: "@item.name",
			want:    "Wand",
		},
		{
			name:    "unresolved path left in place",
			formula: "1d4 + @abilities.int.mod",
			want:    "1d4 + @abilities.int.mod",
		},
		{
			name:    "branch node does not resolve",
			formula: "@abilities.str",
			want:    "@abilities.str",
		},
		{
			name:    "trailing dot stays outside the path",
			formula: "@item.level.",
			want:    "2.",
		},
		{
			name:    "bare at sign",
			formula: "2 @ 3",
			want:    "2 @ 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dice.ReplaceVariables(tt.formula, data))
		})
	}
}
