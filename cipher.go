// cipher.go: AES-256-OFB payload encryption with a fixed zero IV.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package horcrux

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"

	goerrors "github.com/agilira/go-errors"
)

// The payload cipher is AES-256 in OFB mode with an all-zero 16-byte IV.
// The zero IV is a wire-compatibility constraint, not a security claim:
// confidentiality rests entirely on the 32-byte key being freshly drawn
// from the CSPRNG for every split and never reused. Nothing in this
// package caches or persists a payload key.
var zeroIV [aes.BlockSize]byte

// newPayloadStream builds the OFB keystream for key. The same stream both
// encrypts and decrypts; OFB is a pure XOR cipher.
func newPayloadStream(key []byte) (cipher.Stream, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeCipherInit, "failed to create AES cipher")
		return nil, fmt.Errorf("horcrux cipher: %w", richErr)
	}
	return cipher.NewOFB(block, zeroIV[:]), nil
}

// EncryptBytes encrypts plaintext under key using AES-256-OFB with the fixed
// zero IV. Output is deterministic for a given (plaintext, key) pair.
//
// The key must be exactly KeySize bytes. The input slice is not modified.
func EncryptBytes(plaintext []byte, key []byte) ([]byte, error) {
	stream, err := newPayloadStream(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(plaintext))
	stream.XORKeyStream(out, plaintext)
	return out, nil
}

// DecryptBytes decrypts ciphertext produced by EncryptBytes under the same
// key. OFB mode is symmetric, so this is the identical transformation; the
// function exists so call sites read as what they do.
//
// The cipher is unauthenticated: decryption cannot detect tampering or a
// wrong key. Callers needing authenticity must MAC the plaintext themselves.
func DecryptBytes(ciphertext []byte, key []byte) ([]byte, error) {
	return EncryptBytes(ciphertext, key)
}

// encryptReader wraps r so that reads produce the AES-256-OFB encryption of
// its bytes. Used by the file split pipeline to avoid holding plaintext and
// ciphertext in memory at the same time.
func encryptReader(r io.Reader, key []byte) (io.Reader, error) {
	stream, err := newPayloadStream(key)
	if err != nil {
		return nil, err
	}
	return &cipher.StreamReader{S: stream, R: r}, nil
}
