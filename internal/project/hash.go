package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is a SHA-256 value, the same as source.File.Hash.
type Digest [32]byte

// Combine hashes content followed by parts in order.
func Combine(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// HashStrings digests a list of settings; each string is length-prefixed
// so that ["ab", "c"] and ["a", "bc"] differ.
func HashStrings(ss ...string) Digest {
	h := sha256.New()
	var n [4]byte
	for _, s := range ss {
		l := len(s)
		n[0], n[1], n[2], n[3] = byte(l>>24), byte(l>>16), byte(l>>8), byte(l)
		_, _ = h.Write(n[:])
		_, _ = h.Write([]byte(s))
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

func (d Digest) IsZero() bool { return d == Digest{} }
