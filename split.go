// split.go: The split engine - one file in, N encrypted shards out.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package horcrux

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	goerrors "github.com/agilira/go-errors"
	"github.com/spf13/afero"
)

// SplitOptions configures a split operation.
type SplitOptions struct {
	// Total is the number of shards to produce, in [2,99].
	Total int

	// Threshold is the number of shards required to rebuild, in [2,Total].
	// Threshold == Total selects multiplexed mode (the ciphertext is
	// striped across shards); Threshold < Total selects replicated mode
	// (every shard carries the full ciphertext).
	Threshold int
}

// SplitResult is the outcome of a split operation. Horcruxes are ordered by
// ascending index.
type SplitResult struct {
	Horcruxes    []Horcrux
	OriginalSize int64
	TotalSize    int64
}

func validateSplitOptions(opts SplitOptions) error {
	if opts.Total < 2 || opts.Total > 99 {
		richErr := goerrors.New(ErrCodeInvalidTotal, fmt.Sprintf("total must be in [2,99], got %d", opts.Total))
		return fmt.Errorf("%w: %w", ErrInvalidTotal, richErr)
	}
	if opts.Threshold < 2 || opts.Threshold > 99 {
		richErr := goerrors.New(ErrCodeInvalidThreshold, fmt.Sprintf("threshold must be in [2,99], got %d", opts.Threshold))
		return fmt.Errorf("%w: %w", ErrInvalidThreshold, richErr)
	}
	if opts.Threshold > opts.Total {
		richErr := goerrors.New(ErrCodeThresholdExceedsTotal, fmt.Sprintf("threshold %d exceeds total %d", opts.Threshold, opts.Total))
		return fmt.Errorf("%w: %w", ErrThresholdExceedsTotal, richErr)
	}
	return nil
}

// baseName strips any leading path from a filename. Both separator styles
// are stripped regardless of host platform, so a shard split on Windows
// records the same bare name it would anywhere else.
func baseName(path string) string {
	name := path
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '\\'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// SplitBuffer splits an in-memory payload into opts.Total encrypted shards,
// any opts.Threshold of which reconstruct it.
//
// A fresh 32-byte key is drawn from the engine's random source for every
// call, split into Shamir shares, and discarded before returning; it exists
// nowhere outside the shard headers.
func (e *Engine) SplitBuffer(data []byte, filename string, opts SplitOptions) (*SplitResult, error) {
	if err := validateSplitOptions(opts); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		richErr := goerrors.New(ErrCodeEmptySecret, "input is empty")
		return nil, fmt.Errorf("%w: %w", ErrEmptySecret, richErr)
	}

	key, shares, err := e.newSplitKey(opts)
	if err != nil {
		return nil, err
	}
	defer Zeroize(key)

	ciphertext, err := EncryptBytes(data, key)
	if err != nil {
		return nil, err
	}

	var bodies [][]byte
	if opts.Threshold == opts.Total {
		bodies = demux(ciphertext, opts.Total)
	} else {
		bodies = make([][]byte, opts.Total)
		for i := range bodies {
			bodies[i] = ciphertext
		}
	}

	return e.assembleResult(baseName(filename), int64(len(data)), opts, shares, bodies), nil
}

// SplitFile splits the file at path. The payload is streamed through the
// cipher into the shard bodies, so the plaintext is never held in memory
// alongside the full ciphertext.
func (e *Engine) SplitFile(path string, opts SplitOptions) (*SplitResult, error) {
	if err := validateSplitOptions(opts); err != nil {
		return nil, err
	}

	info, err := e.fs.Stat(path)
	if err != nil {
		return nil, goerrors.Wrap(err, ErrCodeFileRead, fmt.Sprintf("failed to stat %s", path))
	}
	if info.IsDir() {
		richErr := goerrors.New(ErrCodeNotAFile, fmt.Sprintf("%s is a directory", path))
		return nil, fmt.Errorf("%w: %w", ErrNotAFile, richErr)
	}
	if info.Size() == 0 {
		richErr := goerrors.New(ErrCodeEmptySecret, fmt.Sprintf("%s is empty", path))
		return nil, fmt.Errorf("%w: %w", ErrEmptySecret, richErr)
	}

	file, err := e.fs.Open(path)
	if err != nil {
		return nil, goerrors.Wrap(err, ErrCodeFileRead, fmt.Sprintf("failed to open %s", path))
	}
	defer file.Close()

	key, shares, err := e.newSplitKey(opts)
	if err != nil {
		return nil, err
	}
	defer Zeroize(key)

	encrypted, err := encryptReader(file, key)
	if err != nil {
		return nil, err
	}

	// reader -> cipher -> sinks. In multiplexed mode each shard gets its
	// own stripe buffer; in replicated mode one ciphertext buffer is
	// shared by every shard.
	var (
		sink         io.Writer
		stripeBufs   []*bytes.Buffer
		fullBodyBuf  *bytes.Buffer
		expectedSize = info.Size()
	)
	if opts.Threshold == opts.Total {
		stripeBufs = make([]*bytes.Buffer, opts.Total)
		sinks := make([]io.Writer, opts.Total)
		stripeSize := int(expectedSize)/opts.Total + stripeQuota
		for i := range stripeBufs {
			stripeBufs[i] = bytes.NewBuffer(make([]byte, 0, stripeSize))
			sinks[i] = stripeBufs[i]
		}
		sink = newStripeWriter(sinks)
	} else {
		fullBodyBuf = bytes.NewBuffer(make([]byte, 0, expectedSize))
		sink = fullBodyBuf
	}

	copyBuf := getCopyBuffer()
	defer putCopyBuffer(copyBuf)
	written, err := io.CopyBuffer(sink, encrypted, *copyBuf)
	if err != nil {
		return nil, goerrors.Wrap(err, ErrCodeFileRead, fmt.Sprintf("failed to read %s", path))
	}

	bodies := make([][]byte, opts.Total)
	if opts.Threshold == opts.Total {
		for i, buf := range stripeBufs {
			bodies[i] = buf.Bytes()
		}
	} else {
		for i := range bodies {
			bodies[i] = fullBodyBuf.Bytes()
		}
	}

	return e.assembleResult(baseName(path), written, opts, shares, bodies), nil
}

// newSplitKey draws a fresh payload key and its Shamir shares from the
// engine's random source.
func (e *Engine) newSplitKey(opts SplitOptions) ([]byte, []Share, error) {
	key, err := generateKey(e.rand)
	if err != nil {
		return nil, nil, err
	}
	shares, err := SplitSecret(e.rand, key, opts.Total, opts.Threshold)
	if err != nil {
		Zeroize(key)
		return nil, nil, err
	}
	e.log.WithField("key", KeyFingerprint(key)).Debug("generated split key")
	return key, shares, nil
}

func (e *Engine) assembleResult(filename string, originalSize int64, opts SplitOptions, shares []Share, bodies [][]byte) *SplitResult {
	timestamp := e.now()
	shards := make([]Horcrux, opts.Total)
	var totalSize int64
	for i := range shards {
		shards[i] = Horcrux{
			Header: Header{
				OriginalFilename: filename,
				Timestamp:        timestamp,
				Index:            i + 1,
				Total:            opts.Total,
				Threshold:        opts.Threshold,
				KeyFragment:      shares[i],
				Version:          FormatVersion,
			},
			Content: bodies[i],
		}
		totalSize += int64(len(bodies[i]))
	}
	return &SplitResult{
		Horcruxes:    shards,
		OriginalSize: originalSize,
		TotalSize:    totalSize,
	}
}

// SaveHorcruxes persists shards into dir using the
// <originalFilename>.<index>_<total>.horcrux naming convention and returns
// the written paths. If any write fails, files written so far are removed;
// a failed save never leaves a consumer-visible half set.
func (e *Engine) SaveHorcruxes(shards []Horcrux, dir string) ([]string, error) {
	if len(shards) == 0 {
		richErr := goerrors.New(ErrCodeNoShards, "nothing to save")
		return nil, fmt.Errorf("%w: %w", ErrNoShards, richErr)
	}
	if err := e.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, goerrors.Wrap(err, ErrCodeFileWrite, fmt.Sprintf("failed to create %s", dir))
	}

	paths := make([]string, 0, len(shards))
	for i := range shards {
		h := &shards[i]
		data, err := marshalShard(h)
		if err != nil {
			e.removeAll(paths)
			return nil, err
		}
		path := filepath.Join(dir, fmt.Sprintf("%s.%d_%d.horcrux", h.Header.OriginalFilename, h.Header.Index, h.Header.Total))
		if err := afero.WriteFile(e.fs, path, data, 0o644); err != nil {
			_ = e.fs.Remove(path) // may hold a partial write
			e.removeAll(paths)
			return nil, goerrors.Wrap(err, ErrCodeFileWrite, fmt.Sprintf("failed to write %s", path))
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (e *Engine) removeAll(paths []string) {
	for _, p := range paths {
		if err := e.fs.Remove(p); err != nil {
			e.log.WithField("path", p).WithError(err).Warn("failed to remove partial horcrux")
		}
	}
}
