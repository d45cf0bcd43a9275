package fluentmasker

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// HashAlgo represents a supported hashing algorithm for the Hash rule.
type HashAlgo string

const (
	// HashSHA256 uses SHA-256 (64 hex characters).
	HashSHA256 HashAlgo = "sha256"

	// HashSHA512 uses SHA-512 (128 hex characters).
	HashSHA512 HashAlgo = "sha512"

	// HashBLAKE2b uses BLAKE2b-256 (64 hex characters).
	HashBLAKE2b HashAlgo = "blake2b"

	// HashSHA3 uses SHA3-256 (64 hex characters).
	HashSHA3 HashAlgo = "sha3"

	// HashArgon2 uses Argon2id with a 32-byte key (64 hex characters).
	// Considerably slower than the other algorithms.
	HashArgon2 HashAlgo = "argon2"
)

// saltLen is the size of random salts for unseeded hashes.
const saltLen = 16

// Argon2 parameters for the Hash rule, tuned for masking rather than
// password storage.
const (
	argon2Time    = 1
	argon2Memory  = 19 * 1024
	argon2Threads = 1
	argon2KeyLen  = 32
)

var hashFuncs = map[HashAlgo]func(salt, plaintext []byte) []byte{
	HashSHA256: func(salt, p []byte) []byte {
		h := sha256.New()
		h.Write(salt)
		h.Write(p)
		return h.Sum(nil)
	},
	HashSHA512: func(salt, p []byte) []byte {
		h := sha512.New()
		h.Write(salt)
		h.Write(p)
		return h.Sum(nil)
	},
	HashBLAKE2b: func(salt, p []byte) []byte {
		sum := blake2b.Sum256(append(append([]byte(nil), salt...), p...))
		return sum[:]
	},
	HashSHA3: func(salt, p []byte) []byte {
		sum := sha3.Sum256(append(append([]byte(nil), salt...), p...))
		return sum[:]
	},
	HashArgon2: func(salt, p []byte) []byte {
		if len(salt) < 8 {
			salt = append(salt, make([]byte, 8-len(salt))...)
		}
		return argon2.IDKey(p, salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	},
}

// IsValidHashAlgo returns true if the algorithm is a known hash algorithm.
func IsValidHashAlgo(algo HashAlgo) bool {
	_, ok := hashFuncs[algo]
	return ok
}

// hashRule replaces values with a hex digest. It is seed-aware: a seed
// becomes the salt, making output reproducible for the same logical entity.
type hashRule struct {
	algo HashAlgo
	fn   func(salt, plaintext []byte) []byte
	seed SeedProvider[string]
}

// Hash replaces each value with a salted hex digest. Without a seed a fresh
// random salt is drawn per value, so identical inputs hash differently.
func Hash(algo HashAlgo) (Rule[string], error) {
	fn, ok := hashFuncs[algo]
	if !ok {
		return nil, invalidArg("Hash", "algo", "unknown hash algorithm %q", algo)
	}
	return &hashRule{algo: algo, fn: fn}, nil
}

func (r *hashRule) WithSeed(provider SeedProvider[string]) Rule[string] {
	return &hashRule{algo: r.algo, fn: r.fn, seed: provider}
}

func (r *hashRule) Apply(value *string) (*string, error) {
	if value == nil || *value == "" {
		return value, nil
	}

	var salt []byte
	if r.seed != nil {
		salt = binary.LittleEndian.AppendUint64(nil, uint64(r.seed(*value)))
	} else {
		salt = make([]byte, saltLen)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, fmt.Errorf("failed to generate salt: %w", err)
		}
	}

	out := hex.EncodeToString(r.fn(salt, []byte(*value)))
	return &out, nil
}
