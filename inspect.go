// inspect.go: Read-only shard inspection without key material.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package horcrux

import (
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// ShardInfo describes one shard file: its header, body size, and a
// BLAKE2b-256 digest of the body. The digest lets two holders compare
// shards without exchanging their contents; it is never part of the wire
// format and carries no key material.
type ShardInfo struct {
	Header     Header
	BodySize   int64
	BodyDigest string
}

// Inspect parses the shard at path and reports its metadata.
func (e *Engine) Inspect(path string) (*ShardInfo, error) {
	h, err := e.loadShard(path)
	if err != nil {
		return nil, err
	}
	digest := blake2b.Sum256(h.Content)
	return &ShardInfo{
		Header:     h.Header,
		BodySize:   int64(len(h.Content)),
		BodyDigest: fmt.Sprintf("%x", digest[:]),
	}, nil
}
