// Package auth holds the credential primitives: password hashing and signed
// session tokens.
package auth

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations matches the werkzeug default for pbkdf2:sha256.
	DefaultIterations = 600000
	// SaltLength is the number of salt characters prepended to every hash.
	SaltLength = 8

	saltChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var (
	ErrMalformedHash     = errors.New("malformed password hash")
	ErrUnsupportedMethod = errors.New("unsupported password hash method")
)

// PasswordHasher produces salted PBKDF2 hashes in the
// "pbkdf2:<digest>:<iterations>$<salt>$<hex>" format.
type PasswordHasher struct {
	iterations int
}

// NewPasswordHasher creates a hasher; iterations <= 0 selects DefaultIterations.
func NewPasswordHasher(iterations int) *PasswordHasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &PasswordHasher{iterations: iterations}
}

// Hash salts and hashes password with PBKDF2-HMAC-SHA256.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt, err := generateSalt(SaltLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), []byte(salt), h.iterations, sha256.Size, sha256.New)
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s", h.iterations, salt, hex.EncodeToString(key)), nil
}

// Verify re-hashes password under the parameters stored in encoded and
// compares in constant time. A malformed hash never verifies.
func (h *PasswordHasher) Verify(encoded, password string) bool {
	ok, err := h.verify(encoded, password)
	return err == nil && ok
}

func (h *PasswordHasher) verify(encoded, password string) (bool, error) {
	parts := strings.SplitN(encoded, "$", 3)
	if len(parts) != 3 {
		return false, ErrMalformedHash
	}
	method, salt, want := parts[0], parts[1], parts[2]

	digest, iterations, err := parseMethod(method)
	if err != nil {
		return false, err
	}

	expected, err := hex.DecodeString(want)
	if err != nil || len(expected) == 0 {
		return false, ErrMalformedHash
	}

	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, len(expected), digest)
	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}

func parseMethod(method string) (func() hash.Hash, int, error) {
	fields := strings.Split(method, ":")
	if len(fields) < 2 || len(fields) > 3 || fields[0] != "pbkdf2" {
		return nil, 0, ErrUnsupportedMethod
	}

	var digest func() hash.Hash
	switch fields[1] {
	case "sha256":
		digest = sha256.New
	case "sha512":
		digest = sha512.New
	case "sha1":
		digest = sha1.New
	default:
		return nil, 0, ErrUnsupportedMethod
	}

	iterations := DefaultIterations
	if len(fields) == 3 {
		n, err := strconv.Atoi(fields[2])
		if err != nil || n <= 0 {
			return nil, 0, ErrMalformedHash
		}
		iterations = n
	}

	return digest, iterations, nil
}

func generateSalt(length int) (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(saltChars)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(saltChars[n.Int64()])
	}
	return sb.String(), nil
}
