package accent

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormat is returned when a "core/total" accent string cannot be parsed.
var ErrInvalidFormat = errors.New("invalid accent format")

// Type is an accent type: either Flat (heiban) or DropAfter(p), a pitch drop
// right after the p-th mora (1-indexed). The zero value is Flat.
//
// Externally the type is serialized as the dictionary integer, where 0 means
// flat (see Core and FromCore), or as "core/total" (see Format and Parse).
type Type struct {
	drop int
}

// Flat returns the flat (heiban) accent type.
func Flat() Type { return Type{} }

// DropAfter returns the accent type whose pitch drops after mora pos.
// Positions below 1 yield Flat.
func DropAfter(pos int) Type {
	if pos < 1 {
		return Flat()
	}
	return Type{drop: pos}
}

// IsFlat reports whether t is the flat pattern.
func (t Type) IsFlat() bool { return t.drop == 0 }

// Position returns the 1-indexed mora after which the pitch drops.
// ok is false for Flat.
func (t Type) Position() (pos int, ok bool) {
	return t.drop, t.drop != 0
}

// Core returns the dictionary accent_type integer: 0 for flat, otherwise the
// drop position.
func (t Type) Core() int { return t.drop }

func (t Type) String() string {
	if t.IsFlat() {
		return "flat"
	}
	return "drop-after-" + strconv.Itoa(t.drop)
}

// Clamp limits t to a word of n morae. A drop position beyond the last mora
// becomes a drop after the last mora; for n == 0 every type is flat.
func (t Type) Clamp(n int) Type {
	if n < 0 {
		n = 0
	}
	if t.drop > n {
		return DropAfter(n)
	}
	return t
}

// FromCore builds a Type from the dictionary integer for a word of n morae.
// Out-of-range values are clamped into 0..n.
func FromCore(core, n int) Type {
	return DropAfter(core).Clamp(n)
}

// FromIndex builds a Type from an editor accent index: the 0-indexed
// position of the last high mora, where n (the particle slot) means flat.
// idx is clamped into 0..n.
func FromIndex(idx, n int) Type {
	if n < 0 {
		n = 0
	}
	idx = clamp(idx, 0, n)
	if idx == n {
		return Flat()
	}
	return DropAfter(idx + 1)
}

// Index returns the editor accent index of t for a word of n morae.
func (t Type) Index(n int) int {
	if n < 0 {
		n = 0
	}
	t = t.Clamp(n)
	if t.IsFlat() {
		return n
	}
	return t.drop - 1
}

// Format renders t for a word of n morae as "core/total", e.g. "0/4" or "1/2".
func Format(t Type, n int) string {
	if n < 0 {
		n = 0
	}
	return fmt.Sprintf("%d/%d", t.Clamp(n).Core(), n)
}

// Parse reads a "core/total" accent string. The core is clamped into 0..total;
// malformed input and negative totals are errors.
func Parse(s string) (Type, int, error) {
	coreStr, totalStr, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return Type{}, 0, fmt.Errorf("%w: %q has no '/'", ErrInvalidFormat, s)
	}
	core, err := strconv.Atoi(strings.TrimSpace(coreStr))
	if err != nil {
		return Type{}, 0, fmt.Errorf("%w: core %q: %v", ErrInvalidFormat, coreStr, err)
	}
	total, err := strconv.Atoi(strings.TrimSpace(totalStr))
	if err != nil {
		return Type{}, 0, fmt.Errorf("%w: total %q: %v", ErrInvalidFormat, totalStr, err)
	}
	if total < 0 {
		return Type{}, 0, fmt.Errorf("%w: negative total %d", ErrInvalidFormat, total)
	}
	return FromCore(core, total), total, nil
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
