// keyutil.go: Key generation, validation, zeroization, and fingerprinting.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package horcrux

import (
	"crypto/rand"
	"fmt"
	"io"

	goerrors "github.com/agilira/go-errors"
	"golang.org/x/crypto/blake2b"
)

// KeySize is the required payload key size in bytes.
// AES-256 requires exactly 32 bytes (256 bits) for the encryption key.
const KeySize = 32

// GenerateKey generates a cryptographically secure random key of KeySize bytes.
//
// This is the package-level convenience form backed by crypto/rand; the
// engine draws its per-split keys from its own configured random source.
//
// Example:
//
//	key, err := horcrux.GenerateKey()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println("Generated key length:", len(key)) // Output: 32
func GenerateKey() ([]byte, error) {
	return generateKey(rand.Reader)
}

func generateKey(rng io.Reader) ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rng, key); err != nil {
		richErr := goerrors.Wrap(err, ErrCodeRandomSource, "failed to generate key")
		return nil, fmt.Errorf("horcrux: %w", richErr)
	}
	return key, nil
}

// ValidateKey checks that a key has the correct size for AES-256.
//
// Returns ErrInvalidKeySize if the key is not exactly KeySize bytes, nil
// otherwise. Every cipher entry point calls this before touching the key.
func ValidateKey(key []byte) error {
	if len(key) != KeySize {
		richErr := goerrors.New(ErrCodeInvalidKey, fmt.Sprintf("key size must be %d bytes for AES-256, got %d", KeySize, len(key)))
		return fmt.Errorf("%w: %w", ErrInvalidKeySize, richErr)
	}
	return nil
}

// Zeroize securely wipes a byte slice from memory.
//
// The split and bind engines call this on every payload key and polynomial
// coefficient buffer as soon as it is no longer needed; keys must never
// outlive the operation that created them.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// KeyFingerprint generates a short non-cryptographic identifier for a key.
//
// The fingerprint is the first 8 bytes of the BLAKE2b-256 digest, rendered
// as 16 hex characters. It is safe to log where the key itself is not.
func KeyFingerprint(key []byte) string {
	if len(key) == 0 {
		return ""
	}
	digest := blake2b.Sum256(key)
	return fmt.Sprintf("%016x", digest[:8])
}
