package collections

import "github.com/cespare/xxhash/v2"

// Hasher maps a key to a 32-bit hash. The hash table reduces it modulo its bucket count.
type Hasher func(key string) uint32

// DJB2 is the default Hasher: hash = hash*33 + c over the key's bytes, starting
// from 5381, in wrapping unsigned 32-bit arithmetic.
func DJB2(key string) uint32 {
	var hash uint32 = 5381
	for i := 0; i < len(key); i++ {
		hash = (hash << 5) + hash + uint32(key[i])
	}
	return hash
}

// XXHash is a Hasher backed by xxHash64, truncated to 32 bits.
func XXHash(key string) uint32 {
	return uint32(xxhash.Sum64String(key))
}
