package filters_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/bonus-engine/internal/filters"
)

func TestSplitExclusion(t *testing.T) {
	included, excluded := filters.SplitExclusion([]string{"mwak", "!rwak", " msak ", "!", "", "!rsak"})

	assert.Equal(t, []string{"mwak", "msak"}, included)
	assert.Equal(t, []string{"rwak", "rsak"}, excluded)
}

func TestTestInclusion(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		subject []string
		want    bool
	}{
		{
			name: "no constraint passes", values: nil, subject: []string{"a"}, want: true,
		},
		{
			name: "inclusion matches", values: []string{"a", "b"}, subject: []string{"b"}, want: true,
		},
		{
			name: "inclusion misses", values: []string{"a", "b"}, subject: []string{"c"}, want: false,
		},
		{
			name: "inclusion with empty subject", values: []string{"a"}, subject: nil, want: false,
		},
		{
			name: "exclusion hits", values: []string{"!a"}, subject: []string{"a"}, want: false,
		},
		{
			name: "exclusion misses", values: []string{"!a"}, subject: []string{"b"}, want: true,
		},
		{
			name: "pure exclusion with empty subject", values: []string{"!a"}, subject: nil, want: true,
		},
		{
			name: "mixed include and exclude both hold",
			values:  []string{"a", "!b"},
			subject: []string{"a", "c"},
			want:    true,
		},
		{
			name: "mixed include holds but exclude hits",
			values:  []string{"a", "!b"},
			subject: []string{"a", "b"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filters.TestInclusion(tt.values, tt.subject))
		})
	}
}

func TestTestInclusionProperties(t *testing.T) {
	ids := rapid.SampledFrom([]string{"a", "b", "c", "d", "e"})

	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOfN(ids, 0, 5).Draw(t, "values")
		subject := rapid.SliceOfN(ids, 0, 5).Draw(t, "subject")

		// An excluded value present in the subject always fails,
		// regardless of what the inclusion side says.
		withExclusion := make([]string, 0, len(values)+1)
		withExclusion = append(withExclusion, values...)
		if len(subject) > 0 {
			withExclusion = append(withExclusion, "!"+subject[0])
			if filters.TestInclusion(withExclusion, subject) {
				t.Fatalf("exclusion of a present value passed: %v vs %v", withExclusion, subject)
			}
		}

		// Including a value from the subject can never turn a passing
		// exclusion-only filter into a failure.
		if len(subject) > 0 && filters.TestInclusion(values, subject) {
			augmented := append([]string{subject[0]}, values...)
			if !filters.TestInclusion(augmented, subject) {
				t.Fatalf("adding a matching inclusion broke a pass: %v vs %v", augmented, subject)
			}
		}

		// Empty filter set is always a pass.
		if !filters.TestInclusion(nil, subject) {
			t.Fatalf("empty filter failed against %v", subject)
		}
	})
}
