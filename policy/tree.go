package policy

import "github.com/mmsyan/mediated-kpabe/internal/curve"

// NodeKind distinguishes a leaf from an internal operator node.
type NodeKind int

const (
	LeafNode NodeKind = iota
	OperatorNode
)

// Op is the boolean connective carried by an OperatorNode.
type Op int

const (
	OpAnd Op = iota
	OpOr
)

// Identifier names a leaf uniquely within a tree: the leaf's
// attribute name together with its 0-based position under a
// left-to-right depth-first traversal, so that repeated names (as in
// the policy "A&A") still resolve to distinct ciphertext shares.
type Identifier struct {
	Name  string
	Index int
}

// Tree is an access tree node: either a Leaf naming an attribute, or
// an Operator combining two child trees with AND/OR. Value is filled
// in by AssignValues and is nil beforehand.
type Tree struct {
	Kind NodeKind

	// Leaf fields.
	Name  string
	Index int

	// Operator fields.
	Op          Op
	Left, Right *Tree

	// Value is the scalar this node carries once AssignValues has run.
	Value *curve.Scalar
}

// Leaf returns a leaf node naming the given attribute.
func Leaf(name string) *Tree {
	return &Tree{Kind: LeafNode, Name: name}
}

// And returns an AND node over left and right.
func And(left, right *Tree) *Tree {
	return &Tree{Kind: OperatorNode, Op: OpAnd, Left: left, Right: right}
}

// Or returns an OR node over left and right.
func Or(left, right *Tree) *Tree {
	return &Tree{Kind: OperatorNode, Op: OpOr, Left: left, Right: right}
}

// IsLeaf reports whether t is a leaf node.
func (t *Tree) IsLeaf() bool {
	return t.Kind == LeafNode
}

// Identifier returns the (name, index) pair identifying a leaf. It
// must only be called after AssignIndices has run over the tree, and
// only on a leaf node.
func (t *Tree) Identifier() Identifier {
	return Identifier{Name: t.Name, Index: t.Index}
}

// Clone returns a deep copy of t, sharing no *Tree pointers with the
// original. Value, if set, is copied by value. Encrypt clones the
// caller's policy before assigning per-encryption indices and values
// so the caller's tree is left untouched.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	out := &Tree{Kind: t.Kind, Name: t.Name, Index: t.Index, Op: t.Op}
	if t.Value != nil {
		v := *t.Value
		out.Value = &v
	}
	out.Left = t.Left.Clone()
	out.Right = t.Right.Clone()
	return out
}
