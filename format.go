// format.go: The shard container format - text header, binary body.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package horcrux

import (
	"bytes"
	"encoding/json"
	"fmt"

	goerrors "github.com/agilira/go-errors"
)

// A shard file is a UTF-8 text prefix followed by raw binary content:
//
//	<human-readable comment, UTF-8>\n
//	!HORCRUX-BEGIN-HEADER!\n
//	<header JSON>\n
//	!HORCRUX-BEGIN-BODY!\n
//	<raw ciphertext body bytes>
//
// The markers must match byte for byte; the parser locates the first
// occurrence of each.
const (
	headerMarker = "!HORCRUX-BEGIN-HEADER!"
	bodyMarker   = "!HORCRUX-BEGIN-BODY!"
)

// FormatVersion is the shard container version this library reads and writes.
const FormatVersion = 1

// ByteArray is a byte slice whose JSON form is an array of integers 0..255
// rather than the encoding/json default of a base64 string. The key
// fragment's y values must survive JSON byte-for-byte, and the integer
// array is the representation the wire format fixes.
type ByteArray []byte

// MarshalJSON implements json.Marshaler.
func (b ByteArray) MarshalJSON() ([]byte, error) {
	ints := make([]int, len(b))
	for i, v := range b {
		ints[i] = int(v)
	}
	return json.Marshal(ints)
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *ByteArray) UnmarshalJSON(data []byte) error {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	out := make(ByteArray, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return fmt.Errorf("byte value out of range: %d", v)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}

// Header is the metadata record carried by every shard. All shards of one
// split share identical OriginalFilename, Timestamp, Total and Threshold;
// Index and KeyFragment are per-shard.
type Header struct {
	// OriginalFilename is the bare filename recorded at split time, with
	// any path separators stripped.
	OriginalFilename string `json:"originalFilename"`

	// Timestamp is the split wall-clock time in milliseconds since the
	// epoch. It doubles as the split-run identifier during validation.
	Timestamp int64 `json:"timestamp"`

	// Index is the 1-based position of this shard within the split.
	Index int `json:"index"`

	// Total is the number of shards the split produced.
	Total int `json:"total"`

	// Threshold is the number of shards required to rebuild the original.
	Threshold int `json:"threshold"`

	// KeyFragment is this shard's Shamir share of the payload key.
	KeyFragment Share `json:"keyFragment"`

	// Version is the container format version.
	Version int `json:"version"`
}

// Horcrux is one shard: a header plus the raw body bytes. In replicated
// mode (threshold < total) the body is the full ciphertext; in multiplexed
// mode (threshold == total) it is one round-robin stripe of it.
type Horcrux struct {
	Header  Header
	Content []byte
}

// marshalShard serializes a shard into its on-disk byte form. The leading
// comment lines are for humans opening the file in an editor; the parser
// skips everything before the header marker.
func marshalShard(h *Horcrux) ([]byte, error) {
	headerJSON, err := json.Marshal(h.Header)
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeMalformedHeader, "failed to encode header")
		return nil, fmt.Errorf("%w: %w", ErrMalformedHeader, richErr)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# THIS FILE IS A HORCRUX.\n")
	fmt.Fprintf(&buf, "# IT IS HORCRUX NUMBER %d OF %d OF FILE %q.\n", h.Header.Index, h.Header.Total, h.Header.OriginalFilename)
	fmt.Fprintf(&buf, "# COLLECT %d HORCRUXES AND BIND THEM TO RESURRECT THE ORIGINAL FILE.\n", h.Header.Threshold)
	buf.WriteString(headerMarker)
	buf.WriteByte('\n')
	buf.Write(headerJSON)
	buf.WriteByte('\n')
	buf.WriteString(bodyMarker)
	buf.WriteByte('\n')
	buf.Write(h.Content)
	return buf.Bytes(), nil
}

// headerJSON mirrors Header with pointer fields so that missing required
// fields are distinguishable from zero values after decoding.
type headerJSON struct {
	OriginalFilename *string `json:"originalFilename"`
	Timestamp        *int64  `json:"timestamp"`
	Index            *int    `json:"index"`
	Total            *int    `json:"total"`
	Threshold        *int    `json:"threshold"`
	KeyFragment      *Share  `json:"keyFragment"`
	Version          *int    `json:"version"`
}

// parseShard decodes the on-disk byte form back into a shard. It is the
// exact inverse of marshalShard for any shard this library writes.
func parseShard(data []byte) (*Horcrux, error) {
	headerIdx := bytes.Index(data, []byte(headerMarker))
	if headerIdx < 0 {
		richErr := goerrors.New(ErrCodeMissingHeaderMarker, "header marker not found")
		return nil, fmt.Errorf("%w: %w", ErrMissingHeaderMarker, richErr)
	}
	bodyIdx := bytes.Index(data, []byte(bodyMarker))
	if bodyIdx < 0 {
		richErr := goerrors.New(ErrCodeMissingBodyMarker, "body marker not found")
		return nil, fmt.Errorf("%w: %w", ErrMissingBodyMarker, richErr)
	}

	// Header JSON lives between "<header-marker>\n" and "\n<body-marker>".
	jsonStart := headerIdx + len(headerMarker) + 1
	jsonEnd := bodyIdx - 1
	if jsonStart > jsonEnd || jsonEnd > len(data) {
		richErr := goerrors.New(ErrCodeMalformedHeader, "no header between markers")
		return nil, fmt.Errorf("%w: %w", ErrMalformedHeader, richErr)
	}

	var raw headerJSON
	if err := json.Unmarshal(data[jsonStart:jsonEnd], &raw); err != nil {
		richErr := goerrors.Wrap(err, ErrCodeMalformedHeader, "failed to decode header JSON")
		return nil, fmt.Errorf("%w: %w", ErrMalformedHeader, richErr)
	}
	if raw.OriginalFilename == nil || raw.Timestamp == nil || raw.Index == nil ||
		raw.Total == nil || raw.Threshold == nil || raw.KeyFragment == nil || raw.Version == nil {
		richErr := goerrors.New(ErrCodeMalformedHeader, "header is missing a required field")
		return nil, fmt.Errorf("%w: %w", ErrMalformedHeader, richErr)
	}
	if *raw.Version != FormatVersion {
		richErr := goerrors.New(ErrCodeUnsupportedVersion, fmt.Sprintf("format version %d is not supported", *raw.Version))
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedVersion, richErr)
	}

	bodyStart := bodyIdx + len(bodyMarker) + 1
	var body []byte
	if bodyStart <= len(data) {
		body = make([]byte, len(data)-bodyStart)
		copy(body, data[bodyStart:])
	}

	return &Horcrux{
		Header: Header{
			OriginalFilename: *raw.OriginalFilename,
			Timestamp:        *raw.Timestamp,
			Index:            *raw.Index,
			Total:            *raw.Total,
			Threshold:        *raw.Threshold,
			KeyFragment:      *raw.KeyFragment,
			Version:          *raw.Version,
		},
		Content: body,
	}, nil
}
