package abe

import (
	"github.com/pkg/errors"

	"github.com/mmsyan/mediated-kpabe/envelope"
	"github.com/mmsyan/mediated-kpabe/internal/curve"
	"github.com/mmsyan/mediated-kpabe/internal/ordered"
	"github.com/mmsyan/mediated-kpabe/policy"
)

// Setup samples a fresh system keypair for the given universe of
// attributes.
func Setup(attributes []string) (*PublicKey, *MasterSecret, error) {
	g1, g2 := curve.Generators()

	alpha, err := curve.RandomScalar()
	if err != nil {
		return nil, nil, errors.Wrap(err, "abe: setup: sample alpha")
	}

	pair, err := curve.Pair(g1, g2)
	if err != nil {
		return nil, nil, errors.Wrap(err, "abe: setup: pair generators")
	}
	y := curve.GTExp(pair, alpha)

	bigT := ordered.New[string, curve.G1]()
	smallT := ordered.New[string, curve.Scalar]()
	for _, a := range attributes {
		ta, err := curve.RandomScalar()
		if err != nil {
			return nil, nil, errors.Wrapf(err, "abe: setup: sample t_%s", a)
		}
		smallT.Set(a, ta)
		bigT.Set(a, curve.ScalarMulG1Base(ta))
	}

	pk := &PublicKey{G1: g1, G2: g2, Pair: pair, Y: y, BigT: bigT}
	msk := &MasterSecret{Alpha: alpha, SmallT: smallT}
	return pk, msk, nil
}

// KeyGen issues a key for the attribute set attrs, split into a
// client half (ClientKey) and a mediator half (MediatorKey). Both
// halves are required to decrypt; deleting the MediatorKey revokes
// the user.
func KeyGen(pk *PublicKey, msk *MasterSecret, attrs []string) (*ClientKey, *MediatorKey, error) {
	uid, err := curve.RandomScalar()
	if err != nil {
		return nil, nil, errors.Wrap(err, "abe: keygen: sample uid")
	}

	var alphaMinusUID curve.Scalar
	alphaMinusUID.Sub(&msk.Alpha, &uid)
	d0 := curve.ScalarMulG2Base(alphaMinusUID)

	arrD1 := ordered.New[string, curve.G2]()
	arrD2 := ordered.New[string, curve.G2]()

	for _, a := range attrs {
		ta, ok := msk.SmallT.Get(a)
		if !ok {
			return nil, nil, &UnknownAttributeError{Name: a}
		}
		taInv, ok := curve.Invert(ta)
		if !ok {
			return nil, nil, &NoninvertibleScalarError{Name: a}
		}

		ua, err := curve.RandomScalar()
		if err != nil {
			return nil, nil, errors.Wrapf(err, "abe: keygen: sample u_%s", a)
		}

		var uaTimesInv curve.Scalar
		uaTimesInv.Mul(&ua, &taInv)
		d1a := curve.ScalarMulG2Base(uaTimesInv)

		var uidMinusUA, uidMinusUATimesInv curve.Scalar
		uidMinusUA.Sub(&uid, &ua)
		uidMinusUATimesInv.Mul(&uidMinusUA, &taInv)
		d2a := curve.ScalarMulG2Base(uidMinusUATimesInv)

		arrD1.Set(a, d1a)
		arrD2.Set(a, d2a)
	}

	clientKey := &ClientKey{UID: uid, D0: d0, ArrD2: arrD2}
	mediatorKey := &MediatorKey{ArrD1: arrD1}
	return clientKey, mediatorKey, nil
}

// Encrypt encapsulates payload under a freshly-sampled Gt secret,
// binding it to the access tree tree. tree is cloned before indices
// and per-encryption values are assigned, so the caller's tree is
// left untouched.
func Encrypt(pk *PublicKey, tree *policy.Tree, payload []byte) (*Ciphertext, error) {
	secret, err := curve.RandomGT(pk.Pair)
	if err != nil {
		return nil, errors.Wrap(err, "abe: encrypt: sample secret")
	}

	s, err := curve.RandomScalar()
	if err != nil {
		return nil, errors.Wrap(err, "abe: encrypt: sample s")
	}

	c0 := curve.ScalarMulG1Base(s)
	c1 := curve.GTMul(secret, curve.GTExp(pk.Y, s))

	annotated := tree.Clone()
	policy.AssignIndices(annotated)
	if err := policy.AssignValues(annotated, s); err != nil {
		return nil, errors.Wrap(err, "abe: encrypt: assign tree values")
	}

	var arrC []CiphertextShare
	for _, id := range policy.Attributes(annotated) {
		ta, ok := pk.BigT.Get(id.Name)
		if !ok {
			return nil, &UnknownAttributeError{Name: id.Name}
		}
		leafValue, ok := leafValueByIdentifier(annotated, id)
		if !ok {
			return nil, errors.Errorf("abe: encrypt: no leaf found for identifier %+v", id)
		}
		share := curve.ScalarMulG1(ta, leafValue)
		arrC = append(arrC, CiphertextShare{ID: id, C: share})
	}

	sealed, err := envelope.Seal(secret, payload)
	if err != nil {
		return nil, errors.Wrap(err, "abe: encrypt: seal payload")
	}

	return &Ciphertext{Tree: annotated, C0: c0, C1: c1, ArrC: arrC, Payload: sealed}, nil
}

// leafValueByIdentifier finds the leaf matching id and returns its
// assigned value. AssignValues guarantees every leaf carries one.
func leafValueByIdentifier(t *policy.Tree, id policy.Identifier) (curve.Scalar, bool) {
	if t.IsLeaf() {
		if t.Identifier() == id {
			return *t.Value, true
		}
		return curve.Scalar{}, false
	}
	if v, ok := leafValueByIdentifier(t.Left, id); ok {
		return v, true
	}
	return leafValueByIdentifier(t.Right, id)
}

// MediatorDecrypt computes the mediator's half of the decryption: the
// product of pairings over the ciphertext shares selected by the
// minimal attribute set the mediator's key satisfies. Must run before
// UserDecrypt, whose input depends on this output.
func MediatorDecrypt(ct *Ciphertext, mk *MediatorKey) (curve.GT, error) {
	return partialDecrypt(ct, mk.ArrD1)
}

// partialDecrypt is shared between MediatorDecrypt and UserDecrypt:
// both compute a product of e(c_leaf, d_attribute) over the shares
// whose name is in this key's minimal satisfying set.
func partialDecrypt(ct *Ciphertext, keyed *ordered.Map[string, curve.G2]) (curve.GT, error) {
	names := keyed.Keys()
	minimal, err := policy.MinimalSatisfyingSet(ct.Tree, names)
	if err != nil {
		if policy.IsNotSatisfied(err) {
			return curve.GT{}, &PolicyNotSatisfiedError{}
		}
		return curve.GT{}, errors.Wrap(err, "abe: decrypt: find minimal satisfying set")
	}

	inSet := make(map[string]struct{}, len(minimal))
	for _, n := range minimal {
		inSet[n] = struct{}{}
	}

	product := curve.GTOne()
	matched := 0
	for _, share := range ct.ArrC {
		if _, ok := inSet[share.ID.Name]; !ok {
			continue
		}
		d, ok := keyed.Get(share.ID.Name)
		if !ok {
			continue
		}
		term, err := curve.Pair(share.C, d)
		if err != nil {
			return curve.GT{}, errors.Wrap(err, "abe: decrypt: pair ciphertext share")
		}
		product = curve.GTMul(product, term)
		matched++
	}
	if matched == 0 {
		return curve.GT{}, &EmptyDecryptionSetError{}
	}
	return product, nil
}

// DecryptResult is the output of UserDecrypt.
type DecryptResult struct {
	Secret  curve.GT
	Message []byte
}

// UserDecrypt completes decryption given the mediator's output value
// from MediatorDecrypt, recovering both the Gt secret sampled at
// encryption time and the plaintext payload.
func UserDecrypt(ct *Ciphertext, sk *ClientKey, mediatorValue curve.GT) (*DecryptResult, error) {
	w, err := partialDecrypt(ct, sk.ArrD2)
	if err != nil {
		return nil, err
	}

	eC0D0, err := curve.Pair(ct.C0, sk.D0)
	if err != nil {
		return nil, errors.Wrap(err, "abe: decrypt: pair c0/d0")
	}

	z := curve.GTMul(curve.GTMul(eC0D0, mediatorValue), w)
	secret := curve.GTDiv(ct.C1, z)

	message, err := envelope.Open(secret, ct.Payload)
	if err != nil {
		return nil, &PayloadAuthenticationFailedError{cause: err}
	}

	return &DecryptResult{Secret: secret, Message: message}, nil
}
