// gf256_test.go: Test cases for GF(2^8) arithmetic.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package horcrux

import (
	"errors"
	"testing"
)

func TestGFTables(t *testing.T) {
	// Every nonzero element must appear exactly once in the exp table's
	// first 255 entries, and log must invert exp.
	seen := make(map[byte]bool)
	for i := 0; i < 255; i++ {
		v := gfExp[i]
		if v == 0 {
			t.Fatalf("exp[%d] is zero", i)
		}
		if seen[v] {
			t.Fatalf("exp[%d]=%d appears twice", i, v)
		}
		seen[v] = true
		if gfLog[v] != byte(i) {
			t.Errorf("log[exp[%d]] = %d, want %d", i, gfLog[v], i)
		}
	}
	if gfExp[0] != 1 {
		t.Errorf("exp[0] = %d, want 1", gfExp[0])
	}
}

func TestGFMul(t *testing.T) {
	// Known product in the AES field: 0x57 * 0x83 = 0xC1.
	if got := gfMul(0x57, 0x83); got != 0xC1 {
		t.Errorf("gfMul(0x57, 0x83) = %#x, want 0xc1", got)
	}
	for a := 0; a < 256; a++ {
		if gfMul(byte(a), 0) != 0 || gfMul(0, byte(a)) != 0 {
			t.Fatalf("multiplication by zero must be zero (a=%d)", a)
		}
		if gfMul(byte(a), 1) != byte(a) {
			t.Fatalf("gfMul(%d, 1) = %d, want %d", a, gfMul(byte(a), 1), a)
		}
	}
	// Commutativity over a sample of pairs.
	for a := 1; a < 256; a += 7 {
		for b := 1; b < 256; b += 11 {
			if gfMul(byte(a), byte(b)) != gfMul(byte(b), byte(a)) {
				t.Fatalf("gfMul not commutative for %d,%d", a, b)
			}
		}
	}
}

func TestGFDiv(t *testing.T) {
	_, err := gfDiv(5, 0)
	if err == nil {
		t.Fatal("expected error dividing by zero")
	}
	if !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}

	got, err := gfDiv(0, 7)
	if err != nil {
		t.Fatalf("gfDiv(0, 7) failed: %v", err)
	}
	if got != 0 {
		t.Errorf("gfDiv(0, 7) = %d, want 0", got)
	}

	// Division inverts multiplication for every nonzero pair sample.
	for a := 1; a < 256; a += 5 {
		for b := 1; b < 256; b += 9 {
			prod := gfMul(byte(a), byte(b))
			q, err := gfDiv(prod, byte(b))
			if err != nil {
				t.Fatalf("gfDiv(%d, %d) failed: %v", prod, b, err)
			}
			if q != byte(a) {
				t.Fatalf("gfDiv(gfMul(%d,%d), %d) = %d, want %d", a, b, b, q, a)
			}
		}
	}
}

func TestPolyEval(t *testing.T) {
	// p(x) = 5 is constant.
	if got := polyEval([]byte{5}, 37); got != 5 {
		t.Errorf("constant polynomial evaluated to %d, want 5", got)
	}
	// p(0) is always the constant term.
	coeffs := []byte{42, 17, 99, 3}
	if got := polyEval(coeffs, 0); got != 42 {
		t.Errorf("p(0) = %d, want 42", got)
	}
	// p(1) is the XOR of all coefficients (1^k = 1 in the field).
	want := byte(42 ^ 17 ^ 99 ^ 3)
	if got := polyEval(coeffs, 1); got != want {
		t.Errorf("p(1) = %d, want %d", got, want)
	}
}
