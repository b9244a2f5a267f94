// Package codec transforms keys and values on their way into a storage
// area: keys may be replaced by a one-way digest and values may be wrapped
// in base64 after JSON encoding.
package codec

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"browserstore/internal/strutil"
)

// Algorithm names a key digest.
type Algorithm string

const (
	MD5     Algorithm = "md5"
	BLAKE2b Algorithm = "blake2b"
)

// ParseAlgorithm accepts "md5" or "blake2b", case-insensitively. Empty
// input selects MD5.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return MD5, nil
	case MD5, BLAKE2b:
		return a, nil
	default:
		return "", fmt.Errorf("unknown hash algorithm %q", s)
	}
}

// Codec is stateless; the zero value stores keys and values unchanged
// and digests with MD5.
type Codec struct {
	// HashKeys enables both the key digest and the value encoding.
	HashKeys bool
	Hash     Algorithm
}

// Enabled reports whether keys and values are transformed.
func (c Codec) Enabled() bool { return c.HashKeys }

// Key returns the stored key for a logical key.
func (c Codec) Key(key string) string {
	if !c.HashKeys {
		return key
	}
	return c.Digest([]byte(key))
}

// Digest returns the lower-case hex digest of b with the configured
// algorithm, regardless of HashKeys.
func (c Codec) Digest(b []byte) string {
	switch c.Hash {
	case BLAKE2b:
		sum := blake2b.Sum256(b)
		return hex.EncodeToString(sum[:])
	default:
		sum := md5.Sum(b)
		return hex.EncodeToString(sum[:])
	}
}

// EncodeValue returns the base64 text of v's JSON form.
func (c Codec) EncodeValue(v any) (string, error) {
	text, err := strutil.ToBase64(v)
	if err != nil {
		return "", fmt.Errorf("encode value: %w", err)
	}
	return text, nil
}

// DecodeValue reverses EncodeValue into dst.
func (c Codec) DecodeValue(text string, dst any) error {
	if err := strutil.FromBase64(text, dst); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	return nil
}
