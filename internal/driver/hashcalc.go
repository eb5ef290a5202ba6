package driver

import (
	"crypto/sha256"
	"encoding/binary"

	"sharplint/internal/analysis"
)

// Digest is a SHA-256 value used as a cache key.
type Digest [32]byte

// combineDigest: H(content || dep1 || dep2 ...). deps уже в детерминированном порядке.
func combineDigest(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// registryDigest captures everything about a rule set that changes its
// output: rule ids, effective severities and salt.
func registryDigest(reg *analysis.Registry, salt string) Digest {
	h := sha256.New()
	var schema [2]byte
	binary.BigEndian.PutUint16(schema[:], cacheSchemaVersion)
	_, _ = h.Write(schema[:])
	for _, id := range reg.IDs() {
		_, _ = h.Write([]byte(id))
		_, _ = h.Write([]byte{'='})
		_, _ = h.Write([]byte(reg.Severity(id).String()))
		_, _ = h.Write([]byte{'\n'})
	}
	_, _ = h.Write([]byte(salt))
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
