package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// ReplaceVariables substitutes @path variables in a formula against a
// nested roll-data map. Paths walk map keys separated by dots, e.g.
// "@abilities.str.mod". References that do not resolve to a leaf value are
// left in place so a failed substitution degrades to the original formula.
func ReplaceVariables(formula string, data map[string]any) string {
	if formula == "" || !strings.Contains(formula, "@") {
		return formula
	}

	var out strings.Builder
	i := 0
	for i < len(formula) {
		c := formula[i]
		if c != '@' {
			out.WriteByte(c)
			i++
			continue
		}

		// Consume the longest [a-zA-Z0-9_.] run after '@', then trim
		// trailing dots so "@hp.value." keeps its final period.
		j := i + 1
		for j < len(formula) && isPathChar(formula[j]) {
			j++
		}
		path := strings.TrimRight(formula[i+1:j], ".")
		if path == "" {
			out.WriteByte(c)
			i++
			continue
		}

		value, ok := lookupPath(data, path)
		if !ok {
			out.WriteString(formula[i : i+1+len(path)])
		} else {
			out.WriteString(renderValue(value))
		}
		i += 1 + len(path)
	}
	return out.String()
}

func isPathChar(c byte) bool {
	return c == '.' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// lookupPath walks the nested map; only leaf values resolve.
func lookupPath(data map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var current any = data
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	if _, isMap := current.(map[string]any); isMap {
		return nil, false
	}
	return current, true
}

func renderValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		if value {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", value)
	}
}
