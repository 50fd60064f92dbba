// bind.go: The bind engine - K shards in, the original file out.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package horcrux

import (
	"fmt"
	"sort"

	goerrors "github.com/agilira/go-errors"
	"github.com/spf13/afero"
)

// BindOptions configures a bind operation.
type BindOptions struct {
	// OutputFilename overrides the recorded original filename in the
	// result. It does not affect where BindFiles writes; that path is
	// chosen by the caller.
	OutputFilename string
}

// BindResult is the outcome of a bind operation.
type BindResult struct {
	// Data is the reconstructed plaintext.
	Data []byte

	// Filename is the recorded original filename, or the OutputFilename
	// override when one was given.
	Filename string

	// HorcruxesUsed is the number of shards that fed the reconstruction.
	HorcruxesUsed int
}

// validateShardSet applies the set validation rules: every shard is
// compared to the first, and indexes must be distinct. Each violation has
// its own error so callers can tell a mixed-run pile from a mixed-file one.
func validateShardSet(shards []Horcrux) error {
	if len(shards) == 0 {
		richErr := goerrors.New(ErrCodeNoShards, "no horcruxes supplied")
		return fmt.Errorf("%w: %w", ErrNoShards, richErr)
	}
	first := shards[0].Header
	seen := make(map[int]bool, len(shards))
	for i := range shards {
		h := shards[i].Header
		if h.OriginalFilename != first.OriginalFilename {
			richErr := goerrors.New(ErrCodeDifferentFiles, fmt.Sprintf("horcruxes of %q and %q cannot be bound together", first.OriginalFilename, h.OriginalFilename))
			return fmt.Errorf("%w: %w", ErrDifferentFiles, richErr)
		}
		if h.Timestamp != first.Timestamp {
			richErr := goerrors.New(ErrCodeDifferentSplitRuns, fmt.Sprintf("horcruxes come from split runs %d and %d", first.Timestamp, h.Timestamp))
			return fmt.Errorf("%w: %w", ErrDifferentSplitRuns, richErr)
		}
		if h.Total != first.Total {
			richErr := goerrors.New(ErrCodeInconsistentTotal, fmt.Sprintf("horcruxes record totals %d and %d", first.Total, h.Total))
			return fmt.Errorf("%w: %w", ErrInconsistentTotal, richErr)
		}
		if h.Threshold != first.Threshold {
			richErr := goerrors.New(ErrCodeInconsistentThreshold, fmt.Sprintf("horcruxes record thresholds %d and %d", first.Threshold, h.Threshold))
			return fmt.Errorf("%w: %w", ErrInconsistentThreshold, richErr)
		}
		if seen[h.Index] {
			richErr := goerrors.New(ErrCodeDuplicateIndex, fmt.Sprintf("index %d appears more than once", h.Index))
			return fmt.Errorf("%w: %w", ErrDuplicateIndex, richErr)
		}
		seen[h.Index] = true
	}
	return nil
}

// BindHorcruxes reconstructs the original payload from a set of shards.
//
// The set must pass validation (same file, same split run, consistent
// metadata, distinct indexes) and contain at least the recorded threshold
// of shards. The first threshold shards by input order supply the key
// fragments; in multiplexed mode their bodies are reassembled in ascending
// index order regardless of input order.
func (e *Engine) BindHorcruxes(shards []Horcrux, opts BindOptions) (*BindResult, error) {
	if err := validateShardSet(shards); err != nil {
		return nil, err
	}

	threshold := shards[0].Header.Threshold
	if len(shards) < threshold {
		richErr := goerrors.New(ErrCodeInsufficientShards, fmt.Sprintf("have %d horcruxes, need %d", len(shards), threshold))
		return nil, fmt.Errorf("%w: %w", ErrInsufficientShards, richErr)
	}

	selected := shards[:threshold]
	fragments := make([]Share, threshold)
	for i := range selected {
		fragments[i] = selected[i].Header.KeyFragment
	}
	key, err := CombineShares(fragments)
	if err != nil {
		return nil, err
	}
	defer Zeroize(key)
	e.log.WithField("key", KeyFingerprint(key)).Debug("reconstructed payload key")

	var ciphertext []byte
	if threshold == shards[0].Header.Total {
		// Multiplexed mode: bodies are stripes, reassembled by index.
		ordered := make([]Horcrux, threshold)
		copy(ordered, selected)
		sort.Slice(ordered, func(i, j int) bool {
			return ordered[i].Header.Index < ordered[j].Header.Index
		})
		stripes := make([][]byte, threshold)
		for i := range ordered {
			stripes[i] = ordered[i].Content
		}
		ciphertext = mux(stripes)
	} else {
		// Replicated mode: every body is the full ciphertext.
		ciphertext = selected[0].Content
	}

	data, err := DecryptBytes(ciphertext, key)
	if err != nil {
		return nil, err
	}

	filename := shards[0].Header.OriginalFilename
	if opts.OutputFilename != "" {
		filename = opts.OutputFilename
	}
	return &BindResult{
		Data:          data,
		Filename:      filename,
		HorcruxesUsed: threshold,
	}, nil
}

// BindFiles loads shards from paths, binds them, and writes the
// reconstructed payload to outPath. The output is only written after
// decryption succeeds.
func (e *Engine) BindFiles(paths []string, outPath string, opts BindOptions) (*BindResult, error) {
	if len(paths) == 0 {
		richErr := goerrors.New(ErrCodeNoShards, "no horcrux paths supplied")
		return nil, fmt.Errorf("%w: %w", ErrNoShards, richErr)
	}
	shards := make([]Horcrux, 0, len(paths))
	for _, path := range paths {
		h, err := e.loadShard(path)
		if err != nil {
			return nil, err
		}
		shards = append(shards, *h)
	}

	result, err := e.BindHorcruxes(shards, opts)
	if err != nil {
		return nil, err
	}

	if err := afero.WriteFile(e.fs, outPath, result.Data, 0o644); err != nil {
		return nil, goerrors.Wrap(err, ErrCodeFileWrite, fmt.Sprintf("failed to write %s", outPath))
	}
	return result, nil
}

func (e *Engine) loadShard(path string) (*Horcrux, error) {
	data, err := afero.ReadFile(e.fs, path)
	if err != nil {
		return nil, goerrors.Wrap(err, ErrCodeFileRead, fmt.Sprintf("failed to read %s", path))
	}
	h, err := parseShard(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}
