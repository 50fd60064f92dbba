// gf256.go: Arithmetic over GF(2^8) with the AES reduction polynomial.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package horcrux

import (
	"fmt"

	goerrors "github.com/agilira/go-errors"
)

// The field is GF(2^8) reduced by the Rijndael polynomial
// x^8 + x^4 + x^3 + x + 1 (0x11B). Addition is XOR; multiplication and
// division go through log/exp tables built over the generator 3. The table
// construction is part of the shard wire contract and must not change.
const gfPoly = 0x11B

var (
	gfExp [256]byte
	gfLog [256]byte
)

func init() {
	// 3 = x+1 generates the multiplicative group. Walking its powers fills
	// both tables in one pass; exp is cyclic with period 255.
	x := byte(1)
	for i := 0; i < 255; i++ {
		gfExp[i] = x
		gfLog[x] = byte(i)
		// multiply by 3: shift (times x) plus XOR (plus one)
		shifted := uint16(x) << 1
		if shifted&0x100 != 0 {
			shifted ^= gfPoly
		}
		x = byte(shifted) ^ x
	}
	gfExp[255] = gfExp[0]
}

// gfAdd combines two field elements. Identical to subtraction.
func gfAdd(a, b byte) byte {
	return a ^ b
}

// gfMul multiplies two field elements via the log/exp tables.
func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	sum := (int(gfLog[a]) + int(gfLog[b])) % 255
	return gfExp[sum]
}

// gfDiv divides a by b in the field. Division by zero is a structural
// invariant violation in the sharer and is reported, never panicked on.
func gfDiv(a, b byte) (byte, error) {
	if b == 0 {
		richErr := goerrors.New(ErrCodeDivisionByZero, "attempted division by zero in GF(2^8)")
		return 0, fmt.Errorf("%w: %w", ErrDivisionByZero, richErr)
	}
	if a == 0 {
		return 0, nil
	}
	diff := (int(gfLog[a]) - int(gfLog[b])) % 255
	if diff < 0 {
		diff += 255
	}
	return gfExp[diff], nil
}

// polyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in degree order: coeffs[0] is the constant term.
func polyEval(coeffs []byte, x byte) byte {
	if x == 0 {
		return coeffs[0]
	}
	degree := len(coeffs) - 1
	out := coeffs[degree]
	for i := degree - 1; i >= 0; i-- {
		out = gfAdd(gfMul(out, x), coeffs[i])
	}
	return out
}
