package policy

import "github.com/mmsyan/mediated-kpabe/internal/curve"

// AssignIndices walks t depth-first, left-to-right, and assigns each
// leaf a monotonically increasing 0-based Index. It returns the
// number of leaves found. Re-running it on an unchanged tree is
// idempotent. Must be called before Attributes, ciphertext-share
// construction, or any other use that relies on leaf identity.
func AssignIndices(t *Tree) int {
	next := 0
	var walk func(*Tree)
	walk = func(n *Tree) {
		if n.IsLeaf() {
			n.Index = next
			next++
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(t)
	return next
}

// Attributes returns the leaf identifiers of t in depth-first,
// left-to-right order. Duplicates are preserved: a policy such as
// "A&A" yields two identifiers both named "A" but with distinct
// Index values. Requires AssignIndices to have already run.
func Attributes(t *Tree) []Identifier {
	var out []Identifier
	var walk func(*Tree)
	walk = func(n *Tree) {
		if n.IsLeaf() {
			out = append(out, n.Identifier())
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(t)
	return out
}

// Satisfies reports whether the candidate attribute names in S
// satisfy t: a leaf is satisfied iff its name is in S; AND requires
// both children satisfied; OR requires either.
func Satisfies(t *Tree, names map[string]struct{}) bool {
	if t.IsLeaf() {
		_, ok := names[t.Name]
		return ok
	}
	left := Satisfies(t.Left, names)
	right := Satisfies(t.Right, names)
	if t.Op == OpAnd {
		return left && right
	}
	return left || right
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// MinimalSatisfyingSet finds a smallest subset of names that still
// satisfies t, preferring the subset enumerated first among those of
// equal size. names is enumerated in increasing subset size, and
// within a size class in the lexicographic order induced by the
// input slice's own order (the "first enumerated, smallest size"
// tie-break the protocol's mediator/user decrypt steps rely on).
//
// It returns a NotSatisfiedError if names as a whole does not satisfy
// t. If no proper subset satisfies t, it returns names itself.
func MinimalSatisfyingSet(t *Tree, names []string) ([]string, error) {
	if !Satisfies(t, nameSet(names)) {
		return nil, &NotSatisfiedError{}
	}

	n := len(names)
	for size := 1; size < n; size++ {
		found, ok := firstSatisfyingCombination(t, names, size)
		if ok {
			return found, nil
		}
	}

	full := make([]string, n)
	copy(full, names)
	return full, nil
}

// firstSatisfyingCombination enumerates size-element combinations of
// names, choosing indices in increasing lexicographic order, and
// returns the first combination that satisfies t.
func firstSatisfyingCombination(t *Tree, names []string, size int) ([]string, bool) {
	n := len(names)
	indices := make([]int, size)
	for i := range indices {
		indices[i] = i
	}

	for {
		candidate := make([]string, size)
		for i, idx := range indices {
			candidate[i] = names[idx]
		}
		if Satisfies(t, nameSet(candidate)) {
			return candidate, true
		}

		// Advance to the next combination in lexicographic order.
		i := size - 1
		for i >= 0 && indices[i] == n-size+i {
			i--
		}
		if i < 0 {
			return nil, false
		}
		indices[i]++
		for j := i + 1; j < size; j++ {
			indices[j] = indices[j-1] + 1
		}
	}
}

// AssignValues performs the protocol's secret-sharing value
// assignment: the root receives secret; an OR node passes its value
// unchanged to both children; an AND node samples one child's value
// uniformly and derives the other as the difference, so the two
// children sum back to the parent's value.
func AssignValues(t *Tree, secret curve.Scalar) error {
	return assignValue(t, secret)
}

func assignValue(n *Tree, value curve.Scalar) error {
	v := value
	n.Value = &v

	if n.IsLeaf() {
		return nil
	}

	switch n.Op {
	case OpOr:
		if err := assignValue(n.Left, value); err != nil {
			return err
		}
		return assignValue(n.Right, value)

	default: // OpAnd
		left, err := curve.RandomScalar()
		if err != nil {
			return err
		}
		var right curve.Scalar
		right.Sub(&value, &left)
		if err := assignValue(n.Left, left); err != nil {
			return err
		}
		return assignValue(n.Right, right)
	}
}
