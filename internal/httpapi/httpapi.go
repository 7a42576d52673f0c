// Package httpapi exposes the abe package over HTTP: GET /setup/{csv
// attrs}, POST /keygen, POST /encrypt, POST /mediator_decrypt,
// POST /decrypt. Request bodies are JSON objects whose key, ciphertext
// and mediator-value fields are serial.Container blobs; responses are
// a Container, a {"first","second"} pair of Containers (/setup,
// /keygen), or a {"message"} object (/decrypt). Built on stdlib net/http, the grounded choice since no
// router library appears anywhere in the retrieved example corpus.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mmsyan/mediated-kpabe/abe"
	"github.com/mmsyan/mediated-kpabe/policy"
	"github.com/mmsyan/mediated-kpabe/serial"
)

// Server wires the five endpoints onto a *http.ServeMux.
type Server struct {
	logger *slog.Logger
	mux    *http.ServeMux
}

// NewServer builds a Server ready to be used as an http.Handler.
func NewServer(logger *slog.Logger) *Server {
	s := &Server{logger: logger, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /setup/{attrs}", s.handleSetup)
	s.mux.HandleFunc("POST /keygen", s.handleKeyGen)
	s.mux.HandleFunc("POST /encrypt", s.handleEncrypt)
	s.mux.HandleFunc("POST /mediator_decrypt", s.handleMediatorDecrypt)
	s.mux.HandleFunc("POST /decrypt", s.handleDecrypt)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Error("request failed", "status", status, "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// statusForError maps core error taxonomy to HTTP status codes.
func statusForError(err error) int {
	var parseErr *policy.ParseError
	var unknownAttr *abe.UnknownAttributeError
	var notSatisfied *abe.PolicyNotSatisfiedError
	var authFailed *abe.PayloadAuthenticationFailedError
	switch {
	case errors.As(err, &parseErr), errors.As(err, &unknownAttr):
		return http.StatusBadRequest
	case errors.As(err, &notSatisfied):
		return http.StatusForbidden
	case errors.As(err, &authFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	csv := r.PathValue("attrs")
	var attrs []string
	if csv != "" {
		attrs = strings.Split(csv, ",")
	}

	pk, msk, err := abe.Setup(attrs)
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}

	pkJSON, err := serial.MarshalPublicKeyJSON(pk)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	mskJSON, err := serial.MarshalMasterSecretJSON(msk)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, mustCombine(pkJSON, mskJSON))
}

type keyGenRequest struct {
	PublicKey    json.RawMessage `json:"public_key"`
	MasterSecret json.RawMessage `json:"master_secret"`
	Attributes   []string        `json:"attributes"`
}

func (s *Server) handleKeyGen(w http.ResponseWriter, r *http.Request) {
	var req keyGenRequest
	if err := readJSON(r.Body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	pk, err := serial.UnmarshalPublicKeyJSON(req.PublicKey)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	msk, err := serial.UnmarshalMasterSecretJSON(req.MasterSecret)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	clientKey, mediatorKey, err := abe.KeyGen(pk, msk, req.Attributes)
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}

	clientJSON, err := serial.MarshalClientKeyJSON(clientKey)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	mediatorJSON, err := serial.MarshalMediatorKeyJSON(mediatorKey)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, mustCombine(clientJSON, mediatorJSON))
}

type encryptRequest struct {
	Policy    string          `json:"policy"`
	PublicKey json.RawMessage `json:"public_key"`
	Payload   []byte          `json:"payload"`
}

func (s *Server) handleEncrypt(w http.ResponseWriter, r *http.Request) {
	var req encryptRequest
	if err := readJSON(r.Body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	tree, err := policy.Parse(req.Policy)
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}
	pk, err := serial.UnmarshalPublicKeyJSON(req.PublicKey)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	ct, err := abe.Encrypt(pk, tree, req.Payload)
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}

	ctJSON, err := serial.MarshalCiphertextJSON(ct)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, ctJSON)
}

type mediatorDecryptRequest struct {
	Ciphertext  json.RawMessage `json:"ciphertext"`
	MediatorKey json.RawMessage `json:"mediator_key"`
}

func (s *Server) handleMediatorDecrypt(w http.ResponseWriter, r *http.Request) {
	var req mediatorDecryptRequest
	if err := readJSON(r.Body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	ct, err := serial.UnmarshalCiphertextJSON(req.Ciphertext)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	mk, err := serial.UnmarshalMediatorKeyJSON(req.MediatorKey)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	value, err := abe.MediatorDecrypt(ct, mk)
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}

	valueJSON, err := serial.MarshalMediatorValueJSON(value)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, valueJSON)
}

type decryptRequest struct {
	Ciphertext    json.RawMessage `json:"ciphertext"`
	ClientKey     json.RawMessage `json:"client_key"`
	MediatorValue json.RawMessage `json:"mediator_value"`
}

type decryptResponse struct {
	Message []byte `json:"message"`
}

func (s *Server) handleDecrypt(w http.ResponseWriter, r *http.Request) {
	var req decryptRequest
	if err := readJSON(r.Body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	ct, err := serial.UnmarshalCiphertextJSON(req.Ciphertext)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	sk, err := serial.UnmarshalClientKeyJSON(req.ClientKey)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	mediatorValue, err := serial.UnmarshalMediatorValueJSON(req.MediatorValue)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := abe.UserDecrypt(ct, sk, mediatorValue)
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}

	body, err := json.Marshal(decryptResponse{Message: result.Message})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, body)
}

func readJSON(body io.Reader, out any) error {
	return json.NewDecoder(body).Decode(out)
}

// mustCombine packages two independently-marshaled JSON containers
// into one response object with "first"/"second" keys. Used by the
// two handlers (/setup, /keygen) whose core operation returns a pair.
func mustCombine(first, second []byte) []byte {
	combined, err := json.Marshal(map[string]json.RawMessage{
		"first":  json.RawMessage(first),
		"second": json.RawMessage(second),
	})
	if err != nil {
		// Both inputs are already valid JSON produced by this package;
		// re-marshaling them into a map cannot fail.
		panic(err)
	}
	return combined
}
