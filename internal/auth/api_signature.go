package auth

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// DefaultAlgorithm is the digest used when none is configured
const DefaultAlgorithm = "sha256"

var ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")

var digests = map[string]func() hash.Hash{
	"md4":         md4.New,
	"md5":         md5.New,
	"sha1":        sha1.New,
	"sha224":      sha256.New224,
	"sha256":      sha256.New,
	"sha384":      sha512.New384,
	"sha512":      sha512.New,
	"sha512/224":  sha512.New512_224,
	"sha512/256":  sha512.New512_256,
	"sha3-224":    sha3.New224,
	"sha3-256":    sha3.New256,
	"sha3-384":    sha3.New384,
	"sha3-512":    sha3.New512,
	"ripemd160":   ripemd160.New,
	"blake2b-256": newBlake2b256,
	"blake2b-384": newBlake2b384,
	"blake2b-512": newBlake2b512,
	"blake2s-256": newBlake2s256,
}

// Unkeyed blake2 constructors only fail on oversized keys
func newBlake2b256() hash.Hash { h, _ := blake2b.New256(nil); return h }
func newBlake2b384() hash.Hash { h, _ := blake2b.New384(nil); return h }
func newBlake2b512() hash.Hash { h, _ := blake2b.New512(nil); return h }
func newBlake2s256() hash.Hash { h, _ := blake2s.New256(nil); return h }

// SupportedAlgorithms returns the accepted digest names in sorted order
func SupportedAlgorithms() []string {
	names := make([]string, 0, len(digests))
	for name := range digests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupDigest(algorithm string) (func() hash.Hash, error) {
	name := strings.ToLower(strings.TrimSpace(algorithm))
	if name == "" {
		name = DefaultAlgorithm
	}

	newHash, ok := digests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
	return newHash, nil
}

// Sign computes the base64 encoded HMAC of the canonical bytes.
// An empty private key is accepted and yields an HMAC keyed with no bytes.
func Sign(canonical []byte, privateKey, algorithm string) (string, error) {
	newHash, err := lookupDigest(algorithm)
	if err != nil {
		return "", err
	}

	mac := hmac.New(newHash, []byte(privateKey))
	mac.Write(canonical)

	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// APIRequestSigner signs API requests with a shared/private key pair
type APIRequestSigner struct {
	sharedKey  string
	privateKey string
	algorithm  string
}

// NewAPIRequestSigner creates a new request signer. The algorithm is checked up front.
func NewAPIRequestSigner(sharedKey, privateKey, algorithm string) (*APIRequestSigner, error) {
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}

	if _, err := lookupDigest(algorithm); err != nil {
		return nil, err
	}

	return &APIRequestSigner{
		sharedKey:  sharedKey,
		privateKey: privateKey,
		algorithm:  algorithm,
	}, nil
}

// SharedKey returns the public half of the credential
func (s *APIRequestSigner) SharedKey() string {
	return s.sharedKey
}

// SignRequest returns the hash header value for a request path and body
func (s *APIRequestSigner) SignRequest(path string, body json.RawMessage) (string, error) {
	canonical, err := EncodeCanonicalRequest(path, body, s.sharedKey)
	if err != nil {
		return "", err
	}

	return Sign(canonical, s.privateKey, s.algorithm)
}

// APISignatureVerifier verifies hash headers the way the platform does
type APISignatureVerifier struct {
	signer *APIRequestSigner
}

// NewAPISignatureVerifier creates a new signature verifier
func NewAPISignatureVerifier(sharedKey, privateKey, algorithm string) (*APISignatureVerifier, error) {
	signer, err := NewAPIRequestSigner(sharedKey, privateKey, algorithm)
	if err != nil {
		return nil, err
	}

	return &APISignatureVerifier{signer: signer}, nil
}

// VerifyRequest checks the api key and hash headers of a request
func (v *APISignatureVerifier) VerifyRequest(path, apiKeyHeader, hashHeader string, body json.RawMessage) error {
	if apiKeyHeader != v.signer.sharedKey {
		return fmt.Errorf("unknown api key")
	}

	if hashHeader == "" {
		return fmt.Errorf("missing hash header")
	}

	expected, err := v.signer.SignRequest(path, body)
	if err != nil {
		return fmt.Errorf("failed to compute expected hash: %w", err)
	}

	if !hmac.Equal([]byte(expected), []byte(hashHeader)) {
		return fmt.Errorf("signature verification failed")
	}

	return nil
}
