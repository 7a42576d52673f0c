package abe

import "fmt"

// UnknownAttributeError means a policy leaf or key request named an
// attribute absent from the public key / master secret.
type UnknownAttributeError struct{ Name string }

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("abe: unknown attribute %q", e.Name)
}

// NoninvertibleScalarError means an attribute's t_a master-secret
// share is zero, which can only happen with a corrupt MasterSecret.
type NoninvertibleScalarError struct{ Name string }

func (e *NoninvertibleScalarError) Error() string {
	return fmt.Sprintf("abe: non-invertible scalar for attribute %q", e.Name)
}

// PolicyNotSatisfiedError means the candidate attribute set does not
// satisfy the ciphertext's access tree: decryption with the wrong key.
type PolicyNotSatisfiedError struct{}

func (e *PolicyNotSatisfiedError) Error() string {
	return "abe: attribute set does not satisfy the ciphertext policy"
}

// EmptyDecryptionSetError means the minimal satisfying set was
// non-empty but no ciphertext share matched any name in it: an
// internal consistency bug, not a caller error.
type EmptyDecryptionSetError struct{}

func (e *EmptyDecryptionSetError) Error() string {
	return "abe: minimal satisfying set matched no ciphertext shares"
}

// PayloadAuthenticationFailedError means the symmetric envelope's
// AEAD tag did not verify: either the wrong secret was recovered, or
// the ciphertext payload was tampered with.
type PayloadAuthenticationFailedError struct{ cause error }

func (e *PayloadAuthenticationFailedError) Error() string {
	return "abe: payload authentication failed"
}

func (e *PayloadAuthenticationFailedError) Unwrap() error { return e.cause }
