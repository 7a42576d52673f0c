package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmsyan/mediated-kpabe/internal/curve"
)

func TestAssignIndicesDuplicateNames(t *testing.T) {
	tree := And(And(Leaf("A"), Leaf("A")), Leaf("A"))
	n := AssignIndices(tree)
	require.Equal(t, 3, n)

	attrs := Attributes(tree)
	require.Len(t, attrs, 3)
	for _, a := range attrs {
		assert.Equal(t, "A", a.Name)
	}
	assert.Equal(t, 0, attrs[0].Index)
	assert.Equal(t, 1, attrs[1].Index)
	assert.Equal(t, 2, attrs[2].Index)
	assert.NotEqual(t, attrs[0], attrs[1])
}

func TestSatisfiesOr(t *testing.T) {
	tree := Or(Leaf("A"), Leaf("B"))
	assert.True(t, Satisfies(tree, nameSet([]string{"A"})))
	assert.True(t, Satisfies(tree, nameSet([]string{"B"})))
	assert.False(t, Satisfies(tree, nameSet([]string{"C"})))
}

func TestSatisfiesAnd(t *testing.T) {
	tree := And(Leaf("A"), Leaf("B"))
	assert.False(t, Satisfies(tree, nameSet([]string{"A"})))
	assert.False(t, Satisfies(tree, nameSet([]string{"B"})))
	assert.True(t, Satisfies(tree, nameSet([]string{"A", "B"})))
}

func TestMinimalSatisfyingSetOr(t *testing.T) {
	tree := Or(Leaf("A"), Leaf("B"))

	got, err := MinimalSatisfyingSet(tree, []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, got)

	_, err = MinimalSatisfyingSet(tree, []string{"C"})
	assert.True(t, IsNotSatisfied(err))
}

func TestMinimalSatisfyingSetComplex(t *testing.T) {
	// (A|D) & (B|E) & C & A over candidate {A,B,C,D}.
	tree := And(
		And(
			And(Or(Leaf("A"), Leaf("D")), Or(Leaf("B"), Leaf("E"))),
			Leaf("C"),
		),
		Leaf("A"),
	)

	got, err := MinimalSatisfyingSet(tree, []string{"A", "B", "C", "D"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, got)
}

func TestMinimalSatisfyingSetAndNoProperSubset(t *testing.T) {
	tree := And(Leaf("A"), Leaf("B"))
	got, err := MinimalSatisfyingSet(tree, []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, got)
}

func TestAssignValuesInvariants(t *testing.T) {
	tree := And(Or(Leaf("A"), Leaf("B")), Leaf("C"))
	AssignIndices(tree)

	var secret curve.Scalar
	secret.SetUint64(7)
	require.NoError(t, AssignValues(tree, secret))

	require.NotNil(t, tree.Value)
	assert.True(t, tree.Value.Equal(&secret))

	left, right := tree.Left, tree.Right
	require.NotNil(t, left.Value)
	require.NotNil(t, right.Value)

	var sum curve.Scalar
	sum.Add(left.Value, right.Value)
	assert.True(t, sum.Equal(&secret))

	// OR node passes its value through unchanged to both children.
	require.NotNil(t, left.Left.Value)
	require.NotNil(t, left.Right.Value)
	assert.True(t, left.Left.Value.Equal(left.Value))
	assert.True(t, left.Right.Value.Equal(left.Value))
}
