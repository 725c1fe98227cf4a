package filters

import (
	"encoding/json"
	"strings"

	"github.com/KirkDiggler/bonus-engine/internal/dice"
	"github.com/KirkDiggler/bonus-engine/internal/domain/bonus"
)

func init() {
	register(Descriptor{
		Name:       "arbitraryComparisons",
		Repeatable: true,
		Evaluate:   evalArbitraryComparisons,
		Storable:   storableComparisons,
	})
}

// comparisonTriple is one configured comparison. Both sides have roll-data
// variables substituted before evaluation.
type comparisonTriple struct {
	One      string `json:"one"`
	Other    string `json:"other"`
	Operator string `json:"operator"`
}

// evalArbitraryComparisons requires every configured triple to hold (AND
// semantics). A triple with either side empty fails outright. Sides that
// both simplify to numbers compare numerically; otherwise the four
// inequality operators degrade to substring tests and equality to
// case-insensitive string equality.
func evalArbitraryComparisons(ctx *Context, _ *bonus.Bonus, raw json.RawMessage) bool {
	var triples []comparisonTriple
	if len(raw) == 0 || json.Unmarshal(raw, &triples) != nil || len(triples) == 0 {
		return true
	}

	eval := ctx.evaluator()
	for _, t := range triples {
		if strings.TrimSpace(t.One) == "" || strings.TrimSpace(t.Other) == "" {
			return false
		}

		one := strings.TrimSpace(eval.Replace(t.One, ctx.RollData))
		other := strings.TrimSpace(eval.Replace(t.Other, ctx.RollData))

		if !compareSides(eval, one, other, t.Operator) {
			return false
		}
	}
	return true
}

func compareSides(eval dice.Evaluator, one, other, op string) bool {
	a, aOK := eval.Simplify(one)
	b, bOK := eval.Simplify(other)
	if aOK && bOK {
		return dice.Compare(a, b, op)
	}

	lhs := strings.ToLower(one)
	rhs := strings.ToLower(other)
	switch op {
	case "=", "==":
		return lhs == rhs
	case "!=":
		return lhs != rhs
	case "<", "<=":
		// "one is part of other".
		return strings.Contains(rhs, lhs)
	case ">", ">=":
		return strings.Contains(lhs, rhs)
	}
	return false
}

func storableComparisons(raw json.RawMessage) bool {
	var triples []comparisonTriple
	if len(raw) == 0 || json.Unmarshal(raw, &triples) != nil {
		return false
	}
	for _, t := range triples {
		if t.Operator != "" && strings.TrimSpace(t.One) != "" && strings.TrimSpace(t.Other) != "" {
			return true
		}
	}
	return false
}
