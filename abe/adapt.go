package abe

import (
	"github.com/pkg/errors"

	"github.com/mmsyan/mediated-kpabe/internal/curve"
)

// Adapt extends a live system with newAttrs without disturbing
// anything already issued: g1, g2, the pairing, y and alpha are
// carried over unchanged, existing T_a/t_a entries are preserved
// verbatim, and a fresh t_b is sampled for each attribute in newAttrs.
//
// Both directions of compatibility hold: ciphertexts encrypted under
// the pre-adapt PublicKey still decrypt under keys issued from the
// post-adapt PublicKey/MasterSecret, and ciphertexts encrypted under
// the post-adapt PublicKey decrypt under pre-adapt keys, provided
// neither side's policy names an attribute absent from that side.
// Grounded on original_source/tests/adapt_tests.rs
// (test_adapt_eq, test_original_secret_decrypts_adapted_pk,
// test_new_key_decrypts_old_data).
func Adapt(pk *PublicKey, msk *MasterSecret, newAttrs []string) (*PublicKey, *MasterSecret, error) {
	adaptedT := pk.BigT.Clone()
	adaptedSmallT := msk.SmallT.Clone()

	for _, a := range newAttrs {
		if adaptedSmallT.Has(a) {
			continue
		}
		ta, err := curve.RandomScalar()
		if err != nil {
			return nil, nil, errors.Wrapf(err, "abe: adapt: sample t_%s", a)
		}
		adaptedSmallT.Set(a, ta)
		adaptedT.Set(a, curve.ScalarMulG1Base(ta))
	}

	adaptedPK := &PublicKey{
		G1:   pk.G1,
		G2:   pk.G2,
		Pair: pk.Pair,
		Y:    pk.Y,
		BigT: adaptedT,
	}
	adaptedMSK := &MasterSecret{
		Alpha:  msk.Alpha,
		SmallT: adaptedSmallT,
	}
	return adaptedPK, adaptedMSK, nil
}
