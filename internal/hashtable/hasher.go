package hashtable

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/zeebo/blake3"
)

// DefaultHasher backs the config file's "hasher: default" setting (spec
// section 6) with BLAKE3 in its unkeyed mode (blake3.New()): no secret
// per-process key is mixed in, so a key's digest is the same in every
// process and can be computed by anyone who chooses keys. Grounded on
// jptalukdar-waddlemap-db's getBucketID, which hashes keys with the same
// blake3.New()/Write/Sum pattern for its own bucket index.
type DefaultHasher struct{}

func (DefaultHasher) Sum64(key []byte) uint64 {
	h := blake3.New()
	h.Write(key)
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}

// FNVHasher backs the config file's "hasher: fnv" setting: faster than
// DefaultHasher for short keys, at the cost of being trivially
// collision-findable by an adversary who can choose keys.
type FNVHasher struct{}

func (FNVHasher) Sum64(key []byte) uint64 {
	h := fnv.New64a()
	h.Write(key)
	return h.Sum64()
}
