package dice

import (
	"strconv"
	"strings"
)

// Simplify deterministically reduces an arithmetic formula to a number.
// Returns false when the formula contains dice terms, unresolved variables
// or anything else the arithmetic grammar cannot parse.
func Simplify(formula string) (float64, bool) {
	p := &exprParser{input: strings.TrimSpace(formula)}
	if p.input == "" {
		return 0, false
	}
	v, ok := p.parseExpr()
	if !ok {
		return 0, false
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return 0, false
	}
	return v, true
}

// Compare evaluates a numeric comparison for the six supported operators.
// Equality uses an epsilon to absorb float noise from division.
func Compare(a, b float64, op string) bool {
	const eps = 1e-9
	switch op {
	case "=", "==":
		return a-b < eps && b-a < eps
	case "!=":
		return a-b >= eps || b-a >= eps
	case "<":
		return a < b
	case "<=":
		return a <= b+eps
	case ">":
		return a > b
	case ">=":
		return a+eps >= b
	}
	return false
}

// Validate reports whether the formula is usable: it either simplifies to a
// number or parses into dice terms.
func Validate(formula string) bool {
	if strings.TrimSpace(formula) == "" {
		return false
	}
	if _, ok := Simplify(formula); ok {
		return true
	}
	parts, err := ParseParts(formula)
	return err == nil && len(parts) > 0
}

// exprParser is a small recursive-descent parser for
// expr   := term (('+'|'-') term)*
// term   := factor (('*'|'/') factor)*
// factor := number | '(' expr ')' | '-' factor
type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) parseExpr() (float64, bool) {
	v, ok := p.parseTerm()
	if !ok {
		return 0, false
	}
	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return v, true
		}
		op := p.input[p.pos]
		if op != '+' && op != '-' {
			return v, true
		}
		p.pos++
		rhs, ok := p.parseTerm()
		if !ok {
			return 0, false
		}
		if op == '+' {
			v += rhs
		} else {
			v -= rhs
		}
	}
}

func (p *exprParser) parseTerm() (float64, bool) {
	v, ok := p.parseFactor()
	if !ok {
		return 0, false
	}
	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return v, true
		}
		op := p.input[p.pos]
		if op != '*' && op != '/' {
			return v, true
		}
		p.pos++
		rhs, ok := p.parseFactor()
		if !ok {
			return 0, false
		}
		if op == '*' {
			v *= rhs
		} else {
			if rhs == 0 {
				return 0, false
			}
			v /= rhs
		}
	}
}

func (p *exprParser) parseFactor() (float64, bool) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, false
	}
	switch p.input[p.pos] {
	case '(':
		p.pos++
		v, ok := p.parseExpr()
		if !ok {
			return 0, false
		}
		p.skipSpace()
		if p.pos >= len(p.input) || p.input[p.pos] != ')' {
			return 0, false
		}
		p.pos++
		return v, true
	case '-':
		p.pos++
		v, ok := p.parseFactor()
		if !ok {
			return 0, false
		}
		return -v, true
	case '+':
		p.pos++
		return p.parseFactor()
	}
	return p.parseNumber()
}

func (p *exprParser) parseNumber() (float64, bool) {
	start := p.pos
	seenDot := false
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return 0, false
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}
