// Package hash computes the content identity of cards.
package hash

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"
)

// Size is the length of a Hash in bytes.
const Size = 32

var ErrInvalidHash = errors.New("invalid hash in performance database")

// Hash is a BLAKE3-256 digest. The zero value is not the hash of any input;
// use Sum(nil) for the hash of the empty string.
type Hash [Size]byte

func Sum(data []byte) Hash {
	return Hash(blake3.Sum256(data))
}

// ParseHex decodes the 64-digit lowercase or uppercase hex encoding of a Hash.
func ParseHex(s string) (Hash, error) {
	var h Hash
	if len(s) != Size*2 {
		return h, fmt.Errorf("%w: %q", ErrInvalidHash, s)
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return h, fmt.Errorf("%w: %q", ErrInvalidHash, s)
	}
	return h, nil
}

func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) String() string {
	return h.Hex()
}

// Compare orders hashes by their raw bytes.
func (h Hash) Compare(other Hash) int {
	return bytes.Compare(h[:], other[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Hasher accumulates content incrementally.
type Hasher struct {
	inner *blake3.Hasher
}

func NewHasher() *Hasher {
	return &Hasher{inner: blake3.New()}
}

func (h *Hasher) Update(data []byte) *Hasher {
	// blake3.Hasher.Write never returns an error.
	_, _ = h.inner.Write(data)
	return h
}

func (h *Hasher) UpdateString(s string) *Hasher {
	return h.Update([]byte(s))
}

func (h *Hasher) Finalize() Hash {
	var out Hash
	copy(out[:], h.inner.Sum(nil))
	return out
}
