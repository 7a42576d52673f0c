// Package abe implements mediated Key-Policy Attribute-Based
// Encryption over the BN254 pairing: Setup, KeyGen (splitting each
// user's key into a client half and a mediator half), Encrypt,
// Mediator-Decrypt, User-Decrypt, and the supplemented Adapt
// operation for extending a live system with new attributes.
//
// Grounded on original_source/src/crypto.rs for the exact per-
// attribute share construction, and on the teacher's
// cpabe/bsw07/bsw07_cpabe.go and dabe/lw11_dabe.go for idiomatic
// struct/method shape over gnark-crypto's BN254 types.
package abe

import (
	"github.com/mmsyan/mediated-kpabe/internal/curve"
	"github.com/mmsyan/mediated-kpabe/internal/ordered"
	"github.com/mmsyan/mediated-kpabe/policy"
)

// PublicKey is the system-wide public key published by Setup.
type PublicKey struct {
	G1   curve.G1
	G2   curve.G2
	Pair curve.GT // e(G1, G2); redundant with Y given the generators, kept for serialized compatibility.
	Y    curve.GT // Pair^alpha
	BigT *ordered.Map[string, curve.G1]
}

// MasterSecret is the system-wide secret retained by the authority.
type MasterSecret struct {
	Alpha  curve.Scalar
	SmallT *ordered.Map[string, curve.Scalar]
}

// ClientKey is a user's half of a KeyGen output (SK_U): retained by
// the client, useless for decryption without the paired MediatorKey.
type ClientKey struct {
	UID   curve.Scalar
	D0    curve.G2
	ArrD2 *ordered.Map[string, curve.G2]
}

// MediatorKey is the online mediator's half of a KeyGen output
// (SK_M). Deleting a user's MediatorKey revokes them instantly: no
// in-flight ciphertext can be completed without it.
type MediatorKey struct {
	ArrD1 *ordered.Map[string, curve.G2]
}

// CiphertextShare is one per-leaf share of a Ciphertext, keyed by the
// leaf's (name, index) identifier rather than by name alone, so that
// a policy repeating an attribute name (e.g. "A&A") still produces
// one distinct share per leaf.
type CiphertextShare struct {
	ID policy.Identifier
	C  curve.G1
}

// Ciphertext is the output of Encrypt.
type Ciphertext struct {
	Tree    *policy.Tree // value-annotated: every node's Value is set.
	C0      curve.G1
	C1      curve.GT
	ArrC    []CiphertextShare
	Payload []byte
}
