package term

import "sort"

// Comparer orders terms for display: constants last; variable terms by the
// appearance index of their primary variable, then by total degree
// (descending unless reversed), then by per-variable exponents compared in
// appearance order. Remaining ties are equal, so sorting is stable.
type Comparer struct {
	appearance map[string]int
	reverse    bool
}

// NewComparer creates a comparer using the given variable appearance order,
// normally captured from the original input expression.
func NewComparer(appearanceOrder []string, reverse bool) *Comparer {
	appearance := make(map[string]int, len(appearanceOrder))
	for i, name := range appearanceOrder {
		appearance[name] = i
	}
	return &Comparer{appearance: appearance, reverse: reverse}
}

// Sort orders terms in place, stably.
func (c *Comparer) Sort(terms []*Term) {
	sort.SliceStable(terms, func(i, j int) bool {
		return c.Compare(terms[i], terms[j]) < 0
	})
}

// Compare returns <0 when a sorts before b, >0 when after, 0 on a tie.
func (c *Comparer) Compare(a, b *Term) int {
	aConstant := a.IsConstant()
	bConstant := b.IsConstant()

	switch {
	case aConstant && bConstant:
		return 0
	case aConstant:
		return 1
	case bConstant:
		return -1
	}

	if d := c.primaryIndex(a) - c.primaryIndex(b); d != 0 {
		return d
	}

	if d := compareFloat(a.Degree(), b.Degree()); d != 0 {
		if c.reverse {
			return -d
		}
		return d
	}

	return c.compareExponents(a, b)
}

// primaryIndex is the appearance index of the term's earliest-appearing
// variable. Unknown variables sort after all known ones.
func (c *Comparer) primaryIndex(t *Term) int {
	best := len(c.appearance) + 1
	for _, name := range t.Variables() {
		index, ok := c.appearance[name]
		if !ok {
			index = len(c.appearance)
		}
		if index < best {
			best = index
		}
	}
	return best
}

// compareExponents compares per-variable exponents in appearance order,
// higher exponents on earlier variables first.
func (c *Comparer) compareExponents(a, b *Term) int {
	names := make([]string, 0, len(c.appearance))
	for name := range c.appearance {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return c.appearance[names[i]] < c.appearance[names[j]]
	})

	for _, name := range names {
		if d := compareFloat(a.ExponentOf(name), b.ExponentOf(name)); d != 0 {
			return d
		}
	}
	return 0
}

// compareFloat orders descending: higher degree first.
func compareFloat(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
