package serial

import (
	"encoding/base64"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/mmsyan/mediated-kpabe/abe"
	"github.com/mmsyan/mediated-kpabe/internal/curve"
)

// Container is the textual envelope the CLI and HTTP facades read and
// write: a tagged, base64-encoded blob of one of the binary encodings
// in this package. Kind lets a reader sanity-check what it received
// before decoding the payload.
type Container struct {
	Kind string `json:"kind"`
	Data string `json:"data"`
}

func wrapContainer(kind string, raw []byte) *Container {
	return &Container{Kind: kind, Data: base64.StdEncoding.EncodeToString(raw)}
}

func (c *Container) payload() ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(c.Data)
	if err != nil {
		return nil, &SerializationError{cause: err}
	}
	return raw, nil
}

func (c *Container) checkKind(want string) error {
	if c.Kind != want {
		return &SerializationError{cause: errors.Errorf("expected container kind %q, got %q", want, c.Kind)}
	}
	return nil
}

const (
	KindPublicKey   = "public_key"
	KindMasterKey   = "master_secret"
	KindClientKey   = "client_key"
	KindMediatorKey   = "mediator_key"
	KindCiphertext    = "ciphertext"
	KindMediatorValue = "mediator_value"
)

// MarshalMediatorValueJSON wraps the Gt value MediatorDecrypt
// returns, the intermediate artifact passed from the mediate step to
// the decrypt step.
func MarshalMediatorValueJSON(v curve.GT) ([]byte, error) {
	return json.Marshal(wrapContainer(KindMediatorValue, curve.MarshalGT(v)))
}

// UnmarshalMediatorValueJSON is the inverse of MarshalMediatorValueJSON.
func UnmarshalMediatorValueJSON(data []byte) (curve.GT, error) {
	var c Container
	if err := json.Unmarshal(data, &c); err != nil {
		return curve.GT{}, &SerializationError{cause: err}
	}
	if err := c.checkKind(KindMediatorValue); err != nil {
		return curve.GT{}, err
	}
	raw, err := c.payload()
	if err != nil {
		return curve.GT{}, err
	}
	return curve.UnmarshalGT(raw)
}

// MarshalPublicKeyJSON wraps pk as a JSON Container.
func MarshalPublicKeyJSON(pk *abe.PublicKey) ([]byte, error) {
	return json.Marshal(wrapContainer(KindPublicKey, EncodePublicKey(pk)))
}

// UnmarshalPublicKeyJSON is the inverse of MarshalPublicKeyJSON.
func UnmarshalPublicKeyJSON(data []byte) (*abe.PublicKey, error) {
	var c Container
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &SerializationError{cause: err}
	}
	if err := c.checkKind(KindPublicKey); err != nil {
		return nil, err
	}
	raw, err := c.payload()
	if err != nil {
		return nil, err
	}
	return DecodePublicKey(raw)
}

// MarshalMasterSecretJSON wraps msk as a JSON Container.
func MarshalMasterSecretJSON(msk *abe.MasterSecret) ([]byte, error) {
	return json.Marshal(wrapContainer(KindMasterKey, EncodeMasterSecret(msk)))
}

// UnmarshalMasterSecretJSON is the inverse of MarshalMasterSecretJSON.
func UnmarshalMasterSecretJSON(data []byte) (*abe.MasterSecret, error) {
	var c Container
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &SerializationError{cause: err}
	}
	if err := c.checkKind(KindMasterKey); err != nil {
		return nil, err
	}
	raw, err := c.payload()
	if err != nil {
		return nil, err
	}
	return DecodeMasterSecret(raw)
}

// MarshalClientKeyJSON wraps sk as a JSON Container.
func MarshalClientKeyJSON(sk *abe.ClientKey) ([]byte, error) {
	return json.Marshal(wrapContainer(KindClientKey, EncodeClientKey(sk)))
}

// UnmarshalClientKeyJSON is the inverse of MarshalClientKeyJSON.
func UnmarshalClientKeyJSON(data []byte) (*abe.ClientKey, error) {
	var c Container
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &SerializationError{cause: err}
	}
	if err := c.checkKind(KindClientKey); err != nil {
		return nil, err
	}
	raw, err := c.payload()
	if err != nil {
		return nil, err
	}
	return DecodeClientKey(raw)
}

// MarshalMediatorKeyJSON wraps mk as a JSON Container.
func MarshalMediatorKeyJSON(mk *abe.MediatorKey) ([]byte, error) {
	return json.Marshal(wrapContainer(KindMediatorKey, EncodeMediatorKey(mk)))
}

// UnmarshalMediatorKeyJSON is the inverse of MarshalMediatorKeyJSON.
func UnmarshalMediatorKeyJSON(data []byte) (*abe.MediatorKey, error) {
	var c Container
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &SerializationError{cause: err}
	}
	if err := c.checkKind(KindMediatorKey); err != nil {
		return nil, err
	}
	raw, err := c.payload()
	if err != nil {
		return nil, err
	}
	return DecodeMediatorKey(raw)
}

// MarshalCiphertextJSON wraps ct as a JSON Container. The raw payload
// bytes inside ct are carried through the same base64 field as the
// rest of the binary encoding, per the "textual container" rule.
func MarshalCiphertextJSON(ct *abe.Ciphertext) ([]byte, error) {
	return json.Marshal(wrapContainer(KindCiphertext, EncodeCiphertext(ct)))
}

// UnmarshalCiphertextJSON is the inverse of MarshalCiphertextJSON.
func UnmarshalCiphertextJSON(data []byte) (*abe.Ciphertext, error) {
	var c Container
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &SerializationError{cause: err}
	}
	if err := c.checkKind(KindCiphertext); err != nil {
		return nil, err
	}
	raw, err := c.payload()
	if err != nil {
		return nil, err
	}
	return DecodeCiphertext(raw)
}
