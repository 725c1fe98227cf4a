package dice

//go:generate mockgen -destination=mock/mock_evaluator.go -package=mockdice -source=evaluator.go

// Evaluator is the engine's view of the external dice-formula service:
// variable substitution, deterministic simplification, comparison
// evaluation and syntax validation. Injecting it keeps resolution logic
// testable without a live dice pipeline.
type Evaluator interface {
	// Replace substitutes @path variables in formula against data,
	// leaving unresolvable references untouched.
	Replace(formula string, data map[string]any) string

	// Simplify deterministically reduces formula to a number. The second
	// return is false when the formula still contains dice terms or does
	// not parse.
	Simplify(formula string) (float64, bool)

	// Validate reports whether formula is syntactically usable.
	Validate(formula string) bool
}

// StandardEvaluator implements Evaluator with the built-in mini-language:
// arithmetic over numbers with + - * / and parentheses, @-path variables,
// and NdX dice terms.
type StandardEvaluator struct{}

// NewStandardEvaluator creates a StandardEvaluator.
func NewStandardEvaluator() *StandardEvaluator {
	return &StandardEvaluator{}
}

func (e *StandardEvaluator) Replace(formula string, data map[string]any) string {
	return ReplaceVariables(formula, data)
}

func (e *StandardEvaluator) Simplify(formula string) (float64, bool) {
	return Simplify(formula)
}

func (e *StandardEvaluator) Validate(formula string) bool {
	return Validate(formula)
}
