package serial

import (
	"github.com/pkg/errors"

	"github.com/mmsyan/mediated-kpabe/internal/curve"
	"github.com/mmsyan/mediated-kpabe/policy"
)

var errNode = errors.New("serial: unknown tree node tag")

const (
	nodeLeaf     byte = 0
	nodeOperator byte = 1
	opAnd        byte = 0
	opOr         byte = 1

	valueAbsent byte = 0
	valuePresent byte = 1
)

// EncodeTree serializes an access tree, including per-node Index and
// Value if assigned, so a ciphertext's value-annotated tree round-trips.
func EncodeTree(t *policy.Tree) []byte {
	w := newWriter()
	writeTree(w, t)
	return w.out()
}

func writeTree(w *writer, t *policy.Tree) {
	if t.IsLeaf() {
		w.byte(nodeLeaf)
		w.string(t.Name)
		w.uint64(uint64(t.Index))
		writeOptionalScalar(w, t.Value)
		return
	}
	w.byte(nodeOperator)
	if t.Op == policy.OpAnd {
		w.byte(opAnd)
	} else {
		w.byte(opOr)
	}
	writeOptionalScalar(w, t.Value)
	writeTree(w, t.Left)
	writeTree(w, t.Right)
}

func writeOptionalScalar(w *writer, v *curve.Scalar) {
	if v == nil {
		w.byte(valueAbsent)
		return
	}
	w.byte(valuePresent)
	w.bytes(curve.MarshalScalar(*v))
}

// DecodeTree is the inverse of EncodeTree.
func DecodeTree(data []byte) (*policy.Tree, error) {
	r := newReader(data)
	t, err := readTree(r)
	if err != nil {
		return nil, wrapErr(err)
	}
	return t, nil
}

func readTree(r *reader) (*policy.Tree, error) {
	kind, err := r.byte()
	if err != nil {
		return nil, err
	}

	switch kind {
	case nodeLeaf:
		name, err := r.string()
		if err != nil {
			return nil, err
		}
		index, err := r.uint64()
		if err != nil {
			return nil, err
		}
		value, err := readOptionalScalar(r)
		if err != nil {
			return nil, err
		}
		return &policy.Tree{Kind: policy.LeafNode, Name: name, Index: int(index), Value: value}, nil

	case nodeOperator:
		opByte, err := r.byte()
		if err != nil {
			return nil, err
		}
		value, err := readOptionalScalar(r)
		if err != nil {
			return nil, err
		}
		left, err := readTree(r)
		if err != nil {
			return nil, err
		}
		right, err := readTree(r)
		if err != nil {
			return nil, err
		}
		op := policy.OpOr
		if opByte == opAnd {
			op = policy.OpAnd
		}
		return &policy.Tree{Kind: policy.OperatorNode, Op: op, Left: left, Right: right, Value: value}, nil

	default:
		return nil, errNode
	}
}

func readOptionalScalar(r *reader) (*curve.Scalar, error) {
	present, err := r.byte()
	if err != nil {
		return nil, err
	}
	if present == valueAbsent {
		return nil, nil
	}
	raw, err := r.bytes()
	if err != nil {
		return nil, err
	}
	s, err := curve.UnmarshalScalar(raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
