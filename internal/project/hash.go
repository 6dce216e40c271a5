package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is a fixed 256-bit content hash (same layout as source.File.Hash).
type Digest [32]byte

// Combine hashes content followed by every extra digest, in order.
// Used to key cached unroll results by source text and options.
func Combine(content Digest, extra ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range extra {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Of hashes raw bytes.
func Of(data []byte) Digest {
	return sha256.Sum256(data)
}

// Hex returns the lowercase hex encoding, usable as a file name.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}
