// Package envelope implements the hybrid symmetric layer that
// encapsulates an arbitrary-length payload under a Gt secret: a
// SHA3-256 key derivation followed by AES-256-GCM with a random
// 96-bit nonce. Grounded on fentec-project/gofe's abe package, which
// builds its own symmetric envelope from the same crypto/aes +
// crypto/cipher pair (CBC there; GCM here, as the protocol needs
// authentication, not just confidentiality).
package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	"github.com/mmsyan/mediated-kpabe/internal/curve"
)

const nonceSize = 12

// AuthenticationError indicates that AES-GCM tag verification failed:
// either the secret was wrong or the ciphertext was tampered with.
type AuthenticationError struct{ cause error }

func (e *AuthenticationError) Error() string {
	return "envelope: payload authentication failed"
}

func (e *AuthenticationError) Unwrap() error { return e.cause }

// deriveKey turns a Gt secret into a 256-bit AES key by hashing its
// canonical Marshal encoding with SHA3-256. Peers must agree on
// this byte-for-byte: hashing anything other than the curve
// library's own Marshal output (e.g. a human-readable String()) would
// silently break interoperability.
func deriveKey(secret curve.GT) []byte {
	encoded := curve.MarshalGT(secret)
	sum := sha3.Sum256(encoded)
	return sum[:]
}

// Seal encrypts plaintext under secret, returning
// nonce(12) ‖ ciphertext ‖ tag(16) as a single byte string.
func Seal(secret curve.GT, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(deriveKey(secret))
	if err != nil {
		return nil, errors.Wrap(err, "envelope: build AES cipher")
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "envelope: build AES-GCM")
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, errors.Wrap(err, "envelope: sample nonce")
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	return append(nonce, sealed...), nil
}

// Open reverses Seal: it splits the nonce off the front of sealed,
// verifies the GCM tag, and returns the plaintext. It fails if sealed
// is shorter than the nonce, or if authentication fails (wrong
// secret, or tampering).
func Open(secret curve.GT, sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize {
		return nil, errors.New("envelope: sealed payload shorter than nonce")
	}

	block, err := aes.NewCipher(deriveKey(secret))
	if err != nil {
		return nil, errors.Wrap(err, "envelope: build AES cipher")
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "envelope: build AES-GCM")
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, &AuthenticationError{cause: err}
	}
	return plaintext, nil
}
