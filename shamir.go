// shamir.go: Byte-wise Shamir secret sharing over GF(2^8).
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package horcrux

import (
	"fmt"
	"io"

	goerrors "github.com/agilira/go-errors"
)

// Share is a single Shamir secret share: the evaluation point X and one
// polynomial evaluation Y[i] per secret byte. X is never zero; x=0 is the
// reconstruction point and would leak the secret verbatim.
type Share struct {
	X byte      `json:"x"`
	Y ByteArray `json:"y"`
}

// SplitSecret splits secret into parts shares such that any threshold of
// them reconstruct it via CombineShares, while fewer reveal nothing.
//
// The x coordinates are drawn uniformly without replacement from [1,255]
// using rng, which must be cryptographically secure. For each secret byte a
// random polynomial of degree threshold-1 is sampled whose constant term is
// that byte; each share holds the polynomial evaluations at its x.
//
// Preconditions: len(secret) > 0, 2 <= threshold <= 255 and
// threshold <= parts <= 255.
func SplitSecret(rng io.Reader, secret []byte, parts, threshold int) ([]Share, error) {
	if len(secret) == 0 {
		richErr := goerrors.New(ErrCodeEmptySecret, "cannot split an empty secret")
		return nil, fmt.Errorf("%w: %w", ErrEmptySecret, richErr)
	}
	if threshold < 2 || threshold > 255 {
		richErr := goerrors.New(ErrCodeInvalidThreshold, fmt.Sprintf("threshold must be in [2,255], got %d", threshold))
		return nil, fmt.Errorf("%w: %w", ErrInvalidThreshold, richErr)
	}
	if parts < threshold || parts > 255 {
		richErr := goerrors.New(ErrCodeInvalidTotal, fmt.Sprintf("parts must be in [threshold,255], got %d", parts))
		return nil, fmt.Errorf("%w: %w", ErrInvalidTotal, richErr)
	}

	xs, err := drawCoordinates(rng, parts)
	if err != nil {
		return nil, err
	}

	shares := make([]Share, parts)
	for i := range shares {
		shares[i] = Share{X: xs[i], Y: make(ByteArray, len(secret))}
	}

	coeffs := make([]byte, threshold)
	for idx, b := range secret {
		coeffs[0] = b
		if _, err := io.ReadFull(rng, coeffs[1:]); err != nil {
			richErr := goerrors.Wrap(err, ErrCodeRandomSource, "failed to sample polynomial coefficients")
			return nil, fmt.Errorf("shamir split: %w", richErr)
		}
		for i := range shares {
			shares[i].Y[idx] = polyEval(coeffs, shares[i].X)
		}
	}
	Zeroize(coeffs)

	return shares, nil
}

// CombineShares reconstructs the secret by Lagrange interpolation of every
// byte position at x=0.
//
// With at least threshold shares from one split the reconstruction is exact.
// With fewer, the result is a deterministic but meaningless value and is NOT
// reported as an error: an attacker holding too few shares must not be able
// to distinguish a failed guess from a correct one.
func CombineShares(shares []Share) ([]byte, error) {
	if len(shares) == 0 {
		richErr := goerrors.New(ErrCodeEmptyShares, "at least one share is required")
		return nil, fmt.Errorf("%w: %w", ErrEmptyShares, richErr)
	}
	length := len(shares[0].Y)
	for _, s := range shares[1:] {
		if len(s.Y) != length {
			richErr := goerrors.New(ErrCodeLengthMismatch, fmt.Sprintf("share lengths differ: %d vs %d", length, len(s.Y)))
			return nil, fmt.Errorf("%w: %w", ErrLengthMismatch, richErr)
		}
	}

	// Basis coefficients depend only on the x coordinates, so compute them
	// once and reuse them for every byte position.
	basis := make([]byte, len(shares))
	for j := range shares {
		b := byte(1)
		for k := range shares {
			if k == j {
				continue
			}
			term, err := gfDiv(shares[k].X, gfAdd(shares[j].X, shares[k].X))
			if err != nil {
				return nil, err
			}
			b = gfMul(b, term)
		}
		basis[j] = b
	}

	secret := make([]byte, length)
	for idx := 0; idx < length; idx++ {
		var acc byte
		for j := range shares {
			acc = gfAdd(acc, gfMul(shares[j].Y[idx], basis[j]))
		}
		secret[idx] = acc
	}
	return secret, nil
}

// drawCoordinates samples count distinct bytes from [1,255] by rejection.
func drawCoordinates(rng io.Reader, count int) ([]byte, error) {
	var seen [256]bool
	xs := make([]byte, 0, count)
	buf := make([]byte, 1)
	for len(xs) < count {
		if _, err := io.ReadFull(rng, buf); err != nil {
			richErr := goerrors.Wrap(err, ErrCodeRandomSource, "failed to draw share coordinate")
			return nil, fmt.Errorf("shamir split: %w", richErr)
		}
		x := buf[0]
		if x == 0 || seen[x] {
			continue
		}
		seen[x] = true
		xs = append(xs, x)
	}
	return xs, nil
}
