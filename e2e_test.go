// e2e_test.go: End-to-end properties of the split/bind pipeline.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package horcrux_test

import (
	"bytes"
	"testing"

	"github.com/agilira/horcrux"
)

// The engine draws the payload key first, so a second reader with the same
// seed yields the key a split will use. That makes the ciphertext itself
// checkable from the outside.
func expectedSplitKey(seed uint64) []byte {
	rng := &seqRand{state: seed}
	key := make([]byte, horcrux.KeySize)
	_, _ = rng.Read(key)
	return key
}

func TestReplicatedBodiesAreTheCiphertext(t *testing.T) {
	const seed = 777
	plaintext := []byte("every replicated shard carries the whole ciphertext")
	key := expectedSplitKey(seed)
	ciphertext, err := horcrux.EncryptBytes(plaintext, key)
	if err != nil {
		t.Fatalf("EncryptBytes failed: %v", err)
	}

	eng, _ := memEngine(1, seed)
	shards := mustSplit(t, eng, plaintext, "r.bin", 5, 3)
	for i, h := range shards {
		if !bytes.Equal(h.Content, ciphertext) {
			t.Errorf("shard %d body is not the full ciphertext", i)
		}
	}
}

func TestMultiplexedBodiesConcatenateToCiphertext(t *testing.T) {
	const seed = 888
	plaintext := bytes.Repeat([]byte("stripe payload "), 100) // 1500 bytes
	key := expectedSplitKey(seed)
	ciphertext, err := horcrux.EncryptBytes(plaintext, key)
	if err != nil {
		t.Fatalf("EncryptBytes failed: %v", err)
	}

	eng, _ := memEngine(2, seed)
	shards := mustSplit(t, eng, plaintext, "m.bin", 5, 5)

	// Bodies in ascending index order, reinterleaved under the round-robin
	// schedule, must reproduce the ciphertext byte for byte. For a payload
	// of 1500 bytes and 5 sinks the first three quotas land on sinks 0-2.
	if !bytes.Equal(shards[0].Content[:100], ciphertext[:100]) {
		t.Error("shard 1 does not start with the first ciphertext quota")
	}
	if !bytes.Equal(shards[1].Content[:100], ciphertext[100:200]) {
		t.Error("shard 2 does not start with the second ciphertext quota")
	}

	var total int
	for _, h := range shards {
		total += len(h.Content)
	}
	if total != len(ciphertext) {
		t.Errorf("bodies hold %d bytes, ciphertext is %d", total, len(ciphertext))
	}

	// And the engine agrees: binding reproduces the plaintext.
	result, err := eng.BindHorcruxes(shards, horcrux.BindOptions{})
	if err != nil {
		t.Fatalf("BindHorcruxes failed: %v", err)
	}
	if !bytes.Equal(result.Data, plaintext) {
		t.Error("bind did not reproduce the plaintext")
	}
}

func TestSplitIsKeyFresh(t *testing.T) {
	// Two splits of the same payload on engines with different random
	// sources must produce different ciphertexts; the key is never reused.
	plaintext := []byte("fresh key every time")
	engA, _ := memEngine(3, 1001)
	engB, _ := memEngine(3, 2002)
	a := mustSplit(t, engA, plaintext, "f.txt", 3, 2)
	b := mustSplit(t, engB, plaintext, "f.txt", 3, 2)
	if bytes.Equal(a[0].Content, b[0].Content) {
		t.Error("two independent splits produced identical ciphertext")
	}
}
