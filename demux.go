// demux.go: Round-robin byte striping across shard bodies.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package horcrux

import (
	"io"
)

// stripeQuota is the fixed stripe size of the round-robin schedule. Sink k
// receives byte ranges [100k, 100(k+1)), [100(n+k), 100(n+k+1)), and so on;
// only the final stripe may be shorter.
const stripeQuota = 100

// demux distributes data across n stripes under the round-robin schedule.
// The concatenation of the stripes in order under the inverse schedule is
// exactly data; total byte count is preserved.
func demux(data []byte, n int) [][]byte {
	stripes := make([][]byte, n)
	size := len(data) / n
	for i := range stripes {
		stripes[i] = make([]byte, 0, size+stripeQuota)
	}
	sink := 0
	for off := 0; off < len(data); off += stripeQuota {
		end := off + stripeQuota
		if end > len(data) {
			end = len(data)
		}
		stripes[sink] = append(stripes[sink], data[off:end]...)
		sink = (sink + 1) % n
	}
	return stripes
}

// mux is the inverse of demux: it interleaves the stripes back into the
// original byte sequence, taking up to one quota from each stripe per turn
// and skipping stripes that are exhausted.
func mux(stripes [][]byte) []byte {
	total := 0
	for _, s := range stripes {
		total += len(s)
	}
	out := make([]byte, 0, total)

	offsets := make([]int, len(stripes))
	for len(out) < total {
		for i, s := range stripes {
			off := offsets[i]
			if off >= len(s) {
				continue
			}
			end := off + stripeQuota
			if end > len(s) {
				end = len(s)
			}
			out = append(out, s[off:end]...)
			offsets[i] = end
		}
	}
	return out
}

// stripeWriter streams bytes into n sinks under the same round-robin
// schedule as demux. It is the only stateful piece of the split pipeline:
// a current sink index and a byte counter that wraps at the quota.
type stripeWriter struct {
	sinks []io.Writer
	sink  int
	count int
}

func newStripeWriter(sinks []io.Writer) *stripeWriter {
	return &stripeWriter{sinks: sinks}
}

// Write dispatches p across the sinks, advancing to the next sink whenever
// the current one has received a full quota.
func (w *stripeWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		room := stripeQuota - w.count
		chunk := len(p)
		if chunk > room {
			chunk = room
		}
		n, err := w.sinks[w.sink].Write(p[:chunk])
		written += n
		if err != nil {
			return written, err
		}
		w.count += n
		if w.count == stripeQuota {
			w.count = 0
			w.sink = (w.sink + 1) % len(w.sinks)
		}
		p = p[n:]
	}
	return written, nil
}
