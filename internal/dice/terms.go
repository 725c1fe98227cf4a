package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Die is one parsed dice term, e.g. "2d6" with any modifier tokens that
// follow it ("r<2", "x6", "min2", ...).
type Die struct {
	Number int
	Faces  int
	Mods   []string
}

// Part is one top-level term of a formula: either a die term or a flat
// arithmetic chunk, with its leading sign.
type Part struct {
	Die      *Die
	Flat     string
	Negative bool
}

// modKinds are the recognized modifier families, longest prefix first so
// "min2" is not mistaken for an explode-once token and "rr1" for "r".
var modKinds = []string{"min", "max", "rr", "r", "xo", "x", "kh", "kl", "dh", "dl"}

// ModKind classifies a modifier token into its family ("r" and "rr" are
// both rerolls; "x" and "xo" are both explosions). Returns "" for tokens it
// does not recognize.
func ModKind(token string) string {
	for _, kind := range modKinds {
		if strings.HasPrefix(token, kind) {
			switch kind {
			case "rr":
				return "r"
			case "xo":
				return "x"
			}
			return kind
		}
	}
	return ""
}

// HasModKind reports whether the die already carries a modifier of the
// given family. Each die takes at most one modifier per family.
func (d *Die) HasModKind(kind string) bool {
	for _, m := range d.Mods {
		if ModKind(m) == kind {
			return true
		}
	}
	return false
}

// AddMod appends a modifier token unless one of the same family is already
// present. Returns whether the die changed.
func (d *Die) AddMod(token string) bool {
	kind := ModKind(token)
	if kind == "" || d.HasModKind(kind) {
		return false
	}
	d.Mods = append(d.Mods, token)
	return true
}

// String renders the die term back to formula text.
func (d *Die) String() string {
	return fmt.Sprintf("%dd%d%s", d.Number, d.Faces, strings.Join(d.Mods, ""))
}

// ParseParts splits a formula into its top-level + and - separated terms,
// identifying dice terms. Parenthesized groups are kept as flat parts.
func ParseParts(formula string) ([]Part, error) {
	s := strings.ReplaceAll(formula, " ", "")
	if s == "" {
		return nil, fmt.Errorf("dice: empty formula")
	}

	var parts []Part
	negative := false
	i := 0
	for i < len(s) {
		switch s[i] {
		case '+':
			negative = false
			i++
			continue
		case '-':
			negative = true
			i++
			continue
		}

		end := i
		depth := 0
		for end < len(s) {
			switch s[end] {
			case '(':
				depth++
			case ')':
				depth--
			case '+', '-':
				if depth == 0 {
					goto chunkDone
				}
			}
			end++
		}
	chunkDone:
		if depth != 0 {
			return nil, fmt.Errorf("dice: unbalanced parentheses in %q", formula)
		}
		chunk := s[i:end]
		if chunk == "" {
			return nil, fmt.Errorf("dice: dangling operator in %q", formula)
		}

		part := Part{Negative: negative}
		if die, ok := parseDie(chunk); ok {
			part.Die = die
		} else {
			part.Flat = chunk
		}
		parts = append(parts, part)
		negative = false
		i = end
	}
	return parts, nil
}

// RenderParts joins parts back into formula text.
func RenderParts(parts []Part) string {
	var out strings.Builder
	for i, p := range parts {
		if p.Negative {
			out.WriteString(" - ")
		} else if i > 0 {
			out.WriteString(" + ")
		}
		if p.Die != nil {
			out.WriteString(p.Die.String())
		} else {
			out.WriteString(p.Flat)
		}
	}
	return out.String()
}

// parseDie recognizes "NdX" with an optional modifier tail. The count
// defaults to 1 when omitted ("d8" reads as "1d8").
func parseDie(chunk string) (*Die, bool) {
	lower := strings.ToLower(chunk)
	dIdx := strings.Index(lower, "d")
	if dIdx < 0 {
		return nil, false
	}

	count := 1
	if dIdx > 0 {
		n, err := strconv.Atoi(lower[:dIdx])
		if err != nil || n < 1 {
			return nil, false
		}
		count = n
	}

	rest := lower[dIdx+1:]
	fEnd := 0
	for fEnd < len(rest) && rest[fEnd] >= '0' && rest[fEnd] <= '9' {
		fEnd++
	}
	if fEnd == 0 {
		return nil, false
	}
	faces, err := strconv.Atoi(rest[:fEnd])
	if err != nil || faces < 1 {
		return nil, false
	}

	die := &Die{Number: count, Faces: faces}
	tail := rest[fEnd:]
	for tail != "" {
		token, remaining, ok := nextModToken(tail)
		if !ok {
			return nil, false
		}
		die.Mods = append(die.Mods, token)
		tail = remaining
	}
	return die, true
}

// nextModToken consumes one modifier token: a known prefix followed by an
// optional comparison and digits.
func nextModToken(s string) (token, rest string, ok bool) {
	prefix := ""
	for _, kind := range modKinds {
		if strings.HasPrefix(s, kind) {
			prefix = kind
			break
		}
	}
	if prefix == "" {
		return "", "", false
	}
	i := len(prefix)
	for i < len(s) && (s[i] == '<' || s[i] == '>' || s[i] == '=') {
		i++
	}
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:], true
}
