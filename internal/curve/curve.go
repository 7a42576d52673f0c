// Package curve adapts the BN254 pairing-friendly curve (gnark-crypto)
// to the shapes the rest of the module needs: scalar sampling, group
// arithmetic, the pairing, and canonical serialization. Every other
// package talks to the curve only through here.
package curve

import (
	"crypto/rand"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/pkg/errors"
)

// Scalar is an element of Fr, the scalar field of the pairing groups.
type Scalar = fr.Element

// G1, G2 and GT are the three pairing groups.
type G1 = bn254.G1Affine
type G2 = bn254.G2Affine
type GT = bn254.GT

// Order returns r, the order of the prime-order pairing groups.
func Order() *big.Int {
	return ecc.BN254.ScalarField()
}

// RandomScalar samples a uniform element of Fr using a CSPRNG.
func RandomScalar() (Scalar, error) {
	var s Scalar
	if _, err := s.SetRandom(); err != nil {
		return Scalar{}, errors.Wrap(err, "curve: sample random scalar")
	}
	return s, nil
}

// Invert returns s^-1. ok is false iff s is zero, in which case the
// returned value is the zero element and must not be used.
func Invert(s Scalar) (inv Scalar, ok bool) {
	if s.IsZero() {
		return Scalar{}, false
	}
	inv.Inverse(&s)
	return inv, true
}

// Generators returns the fixed public generators g1 in G1 and g2 in G2
// embedded in every public key produced by Setup.
func Generators() (g1 G1, g2 G2) {
	_, _, g1, g2 = bn254.Generators()
	return
}

// Pair computes the bilinear pairing e(a, b).
func Pair(a G1, b G2) (GT, error) {
	gt, err := bn254.Pair([]G1{a}, []G2{b})
	if err != nil {
		return GT{}, errors.Wrap(err, "curve: pairing")
	}
	return gt, nil
}

// RandomGT samples a uniform element of Gt by exponentiating the
// supplied generator (typically e(g1,g2)) with a random scalar. Since
// Gt is cyclic of prime order r and the generator is non-trivial, this
// distribution is uniform over Gt.
func RandomGT(generator GT) (GT, error) {
	s, err := RandomScalar()
	if err != nil {
		return GT{}, err
	}
	var out GT
	out.Exp(generator, scalarToBigInt(s))
	return out, nil
}

func scalarToBigInt(s Scalar) *big.Int {
	return s.BigInt(new(big.Int))
}

// ScalarMulG1Base returns g1^s for the fixed base generator.
func ScalarMulG1Base(s Scalar) G1 {
	var out G1
	out.ScalarMultiplicationBase(scalarToBigInt(s))
	return out
}

// ScalarMulG2Base returns g2^s for the fixed base generator.
func ScalarMulG2Base(s Scalar) G2 {
	var out G2
	out.ScalarMultiplicationBase(scalarToBigInt(s))
	return out
}

// ScalarMulG1 returns p^s.
func ScalarMulG1(p G1, s Scalar) G1 {
	var out G1
	out.ScalarMultiplication(&p, scalarToBigInt(s))
	return out
}

// ScalarMulG2 returns p^s.
func ScalarMulG2(p G2, s Scalar) G2 {
	var out G2
	out.ScalarMultiplication(&p, scalarToBigInt(s))
	return out
}

// GTExp returns base^s.
func GTExp(base GT, s Scalar) GT {
	var out GT
	out.Exp(base, scalarToBigInt(s))
	return out
}

// GTMul returns a*b.
func GTMul(a, b GT) GT {
	var out GT
	out.Mul(&a, &b)
	return out
}

// GTDiv returns a/b = a*b^-1.
func GTDiv(a, b GT) GT {
	var out GT
	out.Div(&a, &b)
	return out
}

// GTOne returns the identity element of Gt, suitable as the start of a
// running product.
func GTOne() GT {
	var out GT
	out.SetOne()
	return out
}

// MarshalG1 / MarshalG2 / MarshalGT / MarshalScalar return the
// canonical byte encoding gnark-crypto defines for each type:
// compressed affine points for G1/G2, the full encoding for GT, and
// the 32-byte big-endian form for scalars. UnmarshalXxx are their
// inverses.

func MarshalG1(p G1) []byte { return p.Marshal() }
func MarshalG2(p G2) []byte { return p.Marshal() }
func MarshalGT(e GT) []byte { return e.Marshal() }
func MarshalScalar(s Scalar) []byte { return s.Marshal() }

// UnmarshalG1 / UnmarshalG2 / UnmarshalGT decode the canonical
// encoding produced by MarshalG1 / MarshalG2 / MarshalGT. The
// underlying gnark-crypto Unmarshal calls report malformed input
// (wrong length, a coordinate outside the field) through their
// returned error, which is wrapped here; recover() additionally
// converts any panic into an ordinary error, so a corrupt persisted
// file or HTTP body surfaces as an error rather than crashing the
// process.
func UnmarshalG1(data []byte) (p G1, err error) {
	defer recoverAsError(&err, "curve: unmarshal G1")
	if err := p.Unmarshal(data); err != nil {
		return G1{}, errors.Wrap(err, "curve: unmarshal G1")
	}
	return p, nil
}

func UnmarshalG2(data []byte) (p G2, err error) {
	defer recoverAsError(&err, "curve: unmarshal G2")
	if err := p.Unmarshal(data); err != nil {
		return G2{}, errors.Wrap(err, "curve: unmarshal G2")
	}
	return p, nil
}

func UnmarshalGT(data []byte) (e GT, err error) {
	defer recoverAsError(&err, "curve: unmarshal GT")
	if err := e.Unmarshal(data); err != nil {
		return GT{}, errors.Wrap(err, "curve: unmarshal GT")
	}
	return e, nil
}

func recoverAsError(err *error, context string) {
	if r := recover(); r != nil {
		*err = errors.Errorf("%s: %v", context, r)
	}
}

func UnmarshalScalar(data []byte) (Scalar, error) {
	var s Scalar
	if err := s.SetBytesCanonical(data); err != nil {
		return Scalar{}, errors.Wrap(err, "curve: unmarshal scalar")
	}
	return s, nil
}

// RandomBytes returns n cryptographically random bytes read from
// crypto/rand.
func RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, errors.Wrap(err, "curve: read random bytes")
	}
	return buf, nil
}
