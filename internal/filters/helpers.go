package filters

import (
	"encoding/json"
	"strings"
)

// SplitExclusion partitions a raw filter set into included values and
// excluded values, the latter recognized by their "!" prefix. This is the
// canonical representation for every string-set filter.
func SplitExclusion(values []string) (included, excluded []string) {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.HasPrefix(v, "!") {
			if rest := v[1:]; rest != "" {
				excluded = append(excluded, rest)
			}
			continue
		}
		included = append(included, v)
	}
	return included, excluded
}

// TestInclusion applies the shared include/exclude rule to a subject value
// set: fail when a non-empty inclusion set is disjoint from the subject,
// fail when the exclusion set intersects it, pass otherwise. Every
// string-set predicate funnels through here.
func TestInclusion(values, subject []string) bool {
	included, excluded := SplitExclusion(values)

	if len(included) > 0 && !intersects(included, subject) {
		return false
	}
	if len(excluded) > 0 && intersects(excluded, subject) {
		return false
	}
	return true
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// decodeStrings unmarshals a raw string-set value. Broken values decode to
// nil, which every predicate treats as unconstrained.
func decodeStrings(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// nonEmptyStrings reports whether the raw value decodes to at least one
// non-blank entry.
func nonEmptyStrings(raw json.RawMessage) bool {
	for _, v := range decodeStrings(raw) {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// hasInclusion reports whether the set carries at least one non-excluded
// requirement. This decides the missing-context default: a filter that
// only excludes passes when there is nothing to test against.
func hasInclusion(values []string) bool {
	included, _ := SplitExclusion(values)
	return len(included) > 0
}
