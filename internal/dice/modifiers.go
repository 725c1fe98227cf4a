package dice

import (
	"fmt"
)

// Die modifier application. Each function adjusts one parsed die term and
// reports whether it changed anything; a die takes at most one modifier per
// family, so re-applying the same adjustment is a no-op.

// ApplyAmount adds delta to the die count, keeping at least one die.
func ApplyAmount(d *Die, delta int) bool {
	if delta == 0 {
		return false
	}
	n := d.Number + delta
	if n < 1 {
		n = 1
	}
	if n == d.Number {
		return false
	}
	d.Number = n
	return true
}

// ApplySize adds delta to the die faces, keeping at least two.
func ApplySize(d *Die, delta int) bool {
	if delta == 0 {
		return false
	}
	f := d.Faces + delta
	if f < 2 {
		f = 2
	}
	if f == d.Faces {
		return false
	}
	d.Faces = f
	return true
}

// ApplyReroll adds a reroll modifier. By default dice at or below the
// threshold reroll; invert flips the comparison. Recursive rerolls use the
// "rr" token. Thresholds beyond the die's face range are clamped so the
// modifier stays satisfiable.
func ApplyReroll(d *Die, threshold int, invert, recursive bool) bool {
	if threshold < 1 {
		threshold = 1
	}
	if threshold > d.Faces {
		threshold = d.Faces
	}
	prefix := "r"
	if recursive {
		prefix = "rr"
	}
	cmp := "<"
	if invert {
		cmp = ">"
	}
	// "r<1" and "r>faces" would never trigger; use equality at the bounds.
	if !invert && threshold == 1 {
		return d.AddMod(fmt.Sprintf("%s=1", prefix))
	}
	if invert && threshold == d.Faces {
		return d.AddMod(fmt.Sprintf("%s=%d", prefix, d.Faces))
	}
	if invert {
		threshold--
	} else {
		threshold++
	}
	return d.AddMod(fmt.Sprintf("%s%s%d", prefix, cmp, threshold))
}

// ApplyExplode adds an explosion modifier triggering at or above threshold.
// A zero or out-of-range threshold explodes only on the maximum face.
func ApplyExplode(d *Die, threshold int, once bool) bool {
	prefix := "x"
	if once {
		prefix = "xo"
	}
	if threshold <= 0 || threshold > d.Faces {
		return d.AddMod(prefix)
	}
	if threshold == d.Faces {
		return d.AddMod(prefix)
	}
	return d.AddMod(fmt.Sprintf("%s>=%d", prefix, threshold))
}

// ApplyMinimum clamps each rolled die to at least min. Values outside
// (1, faces] are ignored.
func ApplyMinimum(d *Die, min int) bool {
	if min <= 1 || min > d.Faces {
		return false
	}
	return d.AddMod(fmt.Sprintf("min%d", min))
}

// ApplyMaximum clamps each rolled die to at most max. Values at or above
// the face count are ignored; zero is allowed to support "cap at zero".
func ApplyMaximum(d *Die, max int) bool {
	if max < 0 || max >= d.Faces {
		return false
	}
	return d.AddMod(fmt.Sprintf("max%d", max))
}
