// split_test.go: Test cases for the split engine.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package horcrux_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/agilira/horcrux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// seqRand is a deterministic random source for reproducible split tests.
// Not cryptographically secure; test-only.
type seqRand struct{ state uint64 }

func (r *seqRand) Read(p []byte) (int, error) {
	for i := range p {
		r.state = r.state*6364136223846793005 + 1442695040888963407
		p[i] = byte(r.state >> 33)
	}
	return len(p), nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// memEngine builds an engine on an in-memory filesystem with a fixed clock
// and a seeded random source.
func memEngine(now int64, seed uint64) (*horcrux.Engine, afero.Fs) {
	fs := afero.NewMemMapFs()
	eng := horcrux.New(
		horcrux.WithFilesystem(fs),
		horcrux.WithRandSource(&seqRand{state: seed}),
		horcrux.WithClock(func() int64 { return now }),
		horcrux.WithLogger(quietLogger()),
	)
	return eng, fs
}

func TestSplitBufferValidation(t *testing.T) {
	eng, _ := memEngine(1, 1)
	data := []byte("payload")

	cases := []struct {
		name string
		opts horcrux.SplitOptions
		want error
	}{
		{"total too small", horcrux.SplitOptions{Total: 1, Threshold: 2}, horcrux.ErrInvalidTotal},
		{"total too large", horcrux.SplitOptions{Total: 100, Threshold: 2}, horcrux.ErrInvalidTotal},
		{"threshold too small", horcrux.SplitOptions{Total: 5, Threshold: 1}, horcrux.ErrInvalidThreshold},
		{"threshold too large", horcrux.SplitOptions{Total: 5, Threshold: 100}, horcrux.ErrInvalidThreshold},
		{"threshold exceeds total", horcrux.SplitOptions{Total: 3, Threshold: 5}, horcrux.ErrThresholdExceedsTotal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := eng.SplitBuffer(data, "f.txt", tc.opts)
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}

	_, err := eng.SplitBuffer(nil, "f.txt", horcrux.SplitOptions{Total: 5, Threshold: 3})
	if !errors.Is(err, horcrux.ErrEmptySecret) {
		t.Errorf("empty input: got %v, want ErrEmptySecret", err)
	}
}

func TestSplitBufferReplicated(t *testing.T) {
	eng, _ := memEngine(1754300000000, 7)
	data := []byte("Hello, Horcrux!")

	result, err := eng.SplitBuffer(data, "greeting.txt", horcrux.SplitOptions{Total: 5, Threshold: 3})
	if err != nil {
		t.Fatalf("SplitBuffer failed: %v", err)
	}
	if len(result.Horcruxes) != 5 {
		t.Fatalf("got %d horcruxes, want 5", len(result.Horcruxes))
	}
	if result.OriginalSize != int64(len(data)) {
		t.Errorf("OriginalSize = %d, want %d", result.OriginalSize, len(data))
	}
	if result.TotalSize != int64(5*len(data)) {
		t.Errorf("TotalSize = %d, want %d", result.TotalSize, 5*len(data))
	}

	first := result.Horcruxes[0].Header
	seenX := make(map[byte]bool)
	for i, h := range result.Horcruxes {
		if h.Header.Index != i+1 {
			t.Errorf("horcrux %d has index %d", i, h.Header.Index)
		}
		if h.Header.OriginalFilename != "greeting.txt" ||
			h.Header.Timestamp != first.Timestamp ||
			h.Header.Total != 5 || h.Header.Threshold != 3 ||
			h.Header.Version != horcrux.FormatVersion {
			t.Errorf("horcrux %d header metadata inconsistent: %+v", i, h.Header)
		}
		if h.Header.Timestamp != 1754300000000 {
			t.Errorf("timestamp = %d, want the injected clock value", h.Header.Timestamp)
		}
		if seenX[h.Header.KeyFragment.X] {
			t.Errorf("duplicate key fragment x %d", h.Header.KeyFragment.X)
		}
		seenX[h.Header.KeyFragment.X] = true

		// Replicated mode: every body is the full ciphertext.
		if !bytes.Equal(h.Content, result.Horcruxes[0].Content) {
			t.Errorf("horcrux %d body differs in replicated mode", i)
		}
		if len(h.Content) != len(data) {
			t.Errorf("horcrux %d body length %d, want %d", i, len(h.Content), len(data))
		}
		if bytes.Equal(h.Content, data) {
			t.Error("shard body equals the plaintext")
		}
	}
}

func TestSplitBufferMultiplexed(t *testing.T) {
	eng, _ := memEngine(2, 11)
	payload := make([]byte, 1000)
	if _, err := (&seqRand{state: 99}).Read(payload); err != nil {
		t.Fatal(err)
	}

	result, err := eng.SplitBuffer(payload, "data.bin", horcrux.SplitOptions{Total: 5, Threshold: 5})
	if err != nil {
		t.Fatalf("SplitBuffer failed: %v", err)
	}
	var total int64
	for i, h := range result.Horcruxes {
		if len(h.Content) < 199 || len(h.Content) > 201 {
			t.Errorf("horcrux %d body length %d, want 199..201", i, len(h.Content))
		}
		total += int64(len(h.Content))
	}
	if total != 1000 {
		t.Errorf("bodies hold %d bytes, want 1000", total)
	}
	if result.TotalSize != 1000 {
		t.Errorf("TotalSize = %d, want 1000", result.TotalSize)
	}
}

func TestSplitFileMatchesSplitBuffer(t *testing.T) {
	// The streaming file path and the in-memory path must produce
	// identical shard bytes given the same capabilities.
	payload := bytes.Repeat([]byte("The quick brown fox jumps over the lazy dog. "), 500)

	for _, opts := range []horcrux.SplitOptions{
		{Total: 5, Threshold: 3},
		{Total: 4, Threshold: 4},
	} {
		engFile, fs := memEngine(1700000000000, 42)
		if err := afero.WriteFile(fs, "/in/fox.txt", payload, 0o644); err != nil {
			t.Fatal(err)
		}
		fromFile, err := engFile.SplitFile("/in/fox.txt", opts)
		if err != nil {
			t.Fatalf("SplitFile failed: %v", err)
		}

		engBuf, _ := memEngine(1700000000000, 42)
		fromBuf, err := engBuf.SplitBuffer(payload, "fox.txt", opts)
		if err != nil {
			t.Fatalf("SplitBuffer failed: %v", err)
		}

		if fromFile.OriginalSize != fromBuf.OriginalSize {
			t.Errorf("OriginalSize differs: %d vs %d", fromFile.OriginalSize, fromBuf.OriginalSize)
		}
		for i := range fromFile.Horcruxes {
			fh, bh := fromFile.Horcruxes[i], fromBuf.Horcruxes[i]
			if fh.Header.OriginalFilename != bh.Header.OriginalFilename ||
				fh.Header.Timestamp != bh.Header.Timestamp ||
				fh.Header.Index != bh.Header.Index ||
				fh.Header.KeyFragment.X != bh.Header.KeyFragment.X ||
				!bytes.Equal(fh.Header.KeyFragment.Y, bh.Header.KeyFragment.Y) {
				t.Errorf("shard %d headers differ between file and buffer paths", i)
			}
			if !bytes.Equal(fh.Content, bh.Content) {
				t.Errorf("shard %d bodies differ between file and buffer paths", i)
			}
		}
	}
}

func TestSplitFileInputErrors(t *testing.T) {
	eng, fs := memEngine(1, 1)
	opts := horcrux.SplitOptions{Total: 3, Threshold: 2}

	if err := fs.MkdirAll("/some/dir", 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.SplitFile("/some/dir", opts); !errors.Is(err, horcrux.ErrNotAFile) {
		t.Errorf("directory input: got %v, want ErrNotAFile", err)
	}

	if err := afero.WriteFile(fs, "/empty.txt", nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.SplitFile("/empty.txt", opts); !errors.Is(err, horcrux.ErrEmptySecret) {
		t.Errorf("empty file: got %v, want ErrEmptySecret", err)
	}

	if _, err := eng.SplitFile("/does/not/exist", opts); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSplitFilenameStripping(t *testing.T) {
	eng, _ := memEngine(1, 3)
	data := []byte("payload")

	for _, tc := range []struct{ in, want string }{
		{"plain.txt", "plain.txt"},
		{"/var/tmp/deep/report final (2).pdf", "report final (2).pdf"},
		{`C:\Users\someone\diary.txt`, "diary.txt"},
		{`mixed/path\name.bin`, "name.bin"},
	} {
		result, err := eng.SplitBuffer(data, tc.in, horcrux.SplitOptions{Total: 2, Threshold: 2})
		if err != nil {
			t.Fatalf("SplitBuffer(%q) failed: %v", tc.in, err)
		}
		if got := result.Horcruxes[0].Header.OriginalFilename; got != tc.want {
			t.Errorf("filename %q recorded as %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSaveHorcruxes(t *testing.T) {
	eng, fs := memEngine(5, 5)
	result, err := eng.SplitBuffer([]byte("save me"), "s.txt", horcrux.SplitOptions{Total: 3, Threshold: 2})
	if err != nil {
		t.Fatalf("SplitBuffer failed: %v", err)
	}

	paths, err := eng.SaveHorcruxes(result.Horcruxes, "/out")
	if err != nil {
		t.Fatalf("SaveHorcruxes failed: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("got %d paths, want 3", len(paths))
	}
	for i, p := range paths {
		if !strings.HasSuffix(p, ".horcrux") {
			t.Errorf("path %q lacks .horcrux suffix", p)
		}
		want := "/out/s.txt." + string(rune('1'+i)) + "_3.horcrux"
		if p != want {
			t.Errorf("path = %q, want %q", p, want)
		}
		if _, err := fs.Stat(p); err != nil {
			t.Errorf("saved file missing: %v", err)
		}
	}

	if _, err := eng.SaveHorcruxes(nil, "/out"); !errors.Is(err, horcrux.ErrNoShards) {
		t.Errorf("empty save: got %v, want ErrNoShards", err)
	}
}
