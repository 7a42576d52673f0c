package serial

import (
	"github.com/mmsyan/mediated-kpabe/abe"
	"github.com/mmsyan/mediated-kpabe/internal/curve"
	"github.com/mmsyan/mediated-kpabe/internal/ordered"
	"github.com/mmsyan/mediated-kpabe/policy"
)

func writeOrderedMap[V any](w *writer, m *ordered.Map[string, V], marshal func(V) []byte) {
	w.uint64(uint64(m.Len()))
	m.Each(func(k string, v V) {
		w.string(k)
		w.bytes(marshal(v))
	})
}

func readOrderedMap[V any](r *reader, unmarshal func([]byte) (V, error)) (*ordered.Map[string, V], error) {
	n, err := r.uint64()
	if err != nil {
		return nil, err
	}
	m := ordered.New[string, V]()
	for i := uint64(0); i < n; i++ {
		k, err := r.string()
		if err != nil {
			return nil, err
		}
		raw, err := r.bytes()
		if err != nil {
			return nil, err
		}
		v, err := unmarshal(raw)
		if err != nil {
			return nil, err
		}
		m.Set(k, v)
	}
	return m, nil
}

func marshalScalarV(s curve.Scalar) []byte { return curve.MarshalScalar(s) }
func marshalG1V(p curve.G1) []byte         { return curve.MarshalG1(p) }
func marshalG2V(p curve.G2) []byte         { return curve.MarshalG2(p) }

// EncodePublicKey serializes a PublicKey.
func EncodePublicKey(pk *abe.PublicKey) []byte {
	w := newWriter()
	w.bytes(curve.MarshalG1(pk.G1))
	w.bytes(curve.MarshalG2(pk.G2))
	w.bytes(curve.MarshalGT(pk.Pair))
	w.bytes(curve.MarshalGT(pk.Y))
	writeOrderedMap(w, pk.BigT, marshalG1V)
	return w.out()
}

// DecodePublicKey is the inverse of EncodePublicKey.
func DecodePublicKey(data []byte) (*abe.PublicKey, error) {
	r := newReader(data)
	pk, err := readPublicKey(r)
	if err != nil {
		return nil, wrapErr(err)
	}
	return pk, nil
}

func readPublicKey(r *reader) (*abe.PublicKey, error) {
	g1raw, err := r.bytes()
	if err != nil {
		return nil, err
	}
	g1, err := curve.UnmarshalG1(g1raw)
	if err != nil {
		return nil, err
	}
	g2raw, err := r.bytes()
	if err != nil {
		return nil, err
	}
	g2, err := curve.UnmarshalG2(g2raw)
	if err != nil {
		return nil, err
	}
	pairRaw, err := r.bytes()
	if err != nil {
		return nil, err
	}
	pair, err := curve.UnmarshalGT(pairRaw)
	if err != nil {
		return nil, err
	}
	yRaw, err := r.bytes()
	if err != nil {
		return nil, err
	}
	y, err := curve.UnmarshalGT(yRaw)
	if err != nil {
		return nil, err
	}
	bigT, err := readOrderedMap(r, curve.UnmarshalG1)
	if err != nil {
		return nil, err
	}
	return &abe.PublicKey{G1: g1, G2: g2, Pair: pair, Y: y, BigT: bigT}, nil
}

// EncodeMasterSecret serializes a MasterSecret.
func EncodeMasterSecret(msk *abe.MasterSecret) []byte {
	w := newWriter()
	w.bytes(curve.MarshalScalar(msk.Alpha))
	writeOrderedMap(w, msk.SmallT, marshalScalarV)
	return w.out()
}

// DecodeMasterSecret is the inverse of EncodeMasterSecret.
func DecodeMasterSecret(data []byte) (*abe.MasterSecret, error) {
	r := newReader(data)
	alphaRaw, err := r.bytes()
	if err != nil {
		return nil, wrapErr(err)
	}
	alpha, err := curve.UnmarshalScalar(alphaRaw)
	if err != nil {
		return nil, wrapErr(err)
	}
	smallT, err := readOrderedMap(r, curve.UnmarshalScalar)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &abe.MasterSecret{Alpha: alpha, SmallT: smallT}, nil
}

// EncodeClientKey serializes a ClientKey.
func EncodeClientKey(sk *abe.ClientKey) []byte {
	w := newWriter()
	w.bytes(curve.MarshalScalar(sk.UID))
	w.bytes(curve.MarshalG2(sk.D0))
	writeOrderedMap(w, sk.ArrD2, marshalG2V)
	return w.out()
}

// DecodeClientKey is the inverse of EncodeClientKey.
func DecodeClientKey(data []byte) (*abe.ClientKey, error) {
	r := newReader(data)
	uidRaw, err := r.bytes()
	if err != nil {
		return nil, wrapErr(err)
	}
	uid, err := curve.UnmarshalScalar(uidRaw)
	if err != nil {
		return nil, wrapErr(err)
	}
	d0Raw, err := r.bytes()
	if err != nil {
		return nil, wrapErr(err)
	}
	d0, err := curve.UnmarshalG2(d0Raw)
	if err != nil {
		return nil, wrapErr(err)
	}
	arrD2, err := readOrderedMap(r, curve.UnmarshalG2)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &abe.ClientKey{UID: uid, D0: d0, ArrD2: arrD2}, nil
}

// EncodeMediatorKey serializes a MediatorKey.
func EncodeMediatorKey(mk *abe.MediatorKey) []byte {
	w := newWriter()
	writeOrderedMap(w, mk.ArrD1, marshalG2V)
	return w.out()
}

// DecodeMediatorKey is the inverse of EncodeMediatorKey.
func DecodeMediatorKey(data []byte) (*abe.MediatorKey, error) {
	r := newReader(data)
	arrD1, err := readOrderedMap(r, curve.UnmarshalG2)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &abe.MediatorKey{ArrD1: arrD1}, nil
}

// EncodeCiphertext serializes a Ciphertext, including its
// value-annotated access tree and the ordered sequence of per-leaf
// ciphertext shares keyed by (name, index) identifier.
func EncodeCiphertext(ct *abe.Ciphertext) []byte {
	w := newWriter()
	w.bytes(EncodeTree(ct.Tree))
	w.bytes(curve.MarshalG1(ct.C0))
	w.bytes(curve.MarshalGT(ct.C1))
	w.uint64(uint64(len(ct.ArrC)))
	for _, share := range ct.ArrC {
		w.string(share.ID.Name)
		w.uint64(uint64(share.ID.Index))
		w.bytes(curve.MarshalG1(share.C))
	}
	w.bytes(ct.Payload)
	return w.out()
}

// DecodeCiphertext is the inverse of EncodeCiphertext.
func DecodeCiphertext(data []byte) (*abe.Ciphertext, error) {
	r := newReader(data)
	ct, err := readCiphertext(r)
	if err != nil {
		return nil, wrapErr(err)
	}
	return ct, nil
}

func readCiphertext(r *reader) (*abe.Ciphertext, error) {
	treeRaw, err := r.bytes()
	if err != nil {
		return nil, err
	}
	tree, err := DecodeTree(treeRaw)
	if err != nil {
		return nil, err
	}
	c0Raw, err := r.bytes()
	if err != nil {
		return nil, err
	}
	c0, err := curve.UnmarshalG1(c0Raw)
	if err != nil {
		return nil, err
	}
	c1Raw, err := r.bytes()
	if err != nil {
		return nil, err
	}
	c1, err := curve.UnmarshalGT(c1Raw)
	if err != nil {
		return nil, err
	}
	n, err := r.uint64()
	if err != nil {
		return nil, err
	}
	shares := make([]abe.CiphertextShare, 0, n)
	for i := uint64(0); i < n; i++ {
		name, err := r.string()
		if err != nil {
			return nil, err
		}
		index, err := r.uint64()
		if err != nil {
			return nil, err
		}
		cRaw, err := r.bytes()
		if err != nil {
			return nil, err
		}
		c, err := curve.UnmarshalG1(cRaw)
		if err != nil {
			return nil, err
		}
		shares = append(shares, abe.CiphertextShare{
			ID: policy.Identifier{Name: name, Index: int(index)},
			C:  c,
		})
	}
	payload, err := r.bytes()
	if err != nil {
		return nil, err
	}
	return &abe.Ciphertext{Tree: tree, C0: c0, C1: c1, ArrC: shares, Payload: payload}, nil
}
