// Package horcrux fragments a file into N encrypted shards such that any K
// of them reconstruct the original, with no password involved.
//
// A split draws a fresh 32-byte key from a CSPRNG, encrypts the payload
// with AES-256-OFB, and distributes the key across the shards via Shamir's
// Secret Sharing over GF(2^8). Strictly fewer than K shards yield
// information-theoretically no knowledge of the key. Each shard is a
// self-describing file: a text header carrying the split metadata and one
// key fragment, followed by the raw ciphertext body.
//
// # Quick Start
//
// Split a file into 5 shards, any 3 of which can resurrect it:
//
//	result, err := horcrux.Split("diary.txt", 5, 3)
//	if err != nil {
//		log.Fatal(err)
//	}
//	paths, err := horcrux.SaveHorcruxes(result.Horcruxes, "shards/")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Bind any 3 of them back together:
//
//	bound, err := horcrux.Bind(paths[:3], "diary.txt")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println("recovered", len(bound.Data), "bytes")
//
// Or let discovery find the set in a directory:
//
//	bound, err := horcrux.AutoBind("shards/")
//
// # Distribution Modes
//
// The threshold selects the distribution mode. When threshold < total
// (replicated mode) every shard carries the full ciphertext, and any
// threshold shards suffice. When threshold == total (multiplexed mode) the
// ciphertext is striped round-robin across the shards in 100-byte quotas,
// so the set is smaller but every shard is required.
//
// # Platform Capabilities
//
// The engine reaches the outside world only through its capability set: an
// afero filesystem, an io.Reader random source, a logrus logger and a
// millisecond clock. Tests inject an in-memory filesystem and a fixed
// clock:
//
//	eng := horcrux.New(
//		horcrux.WithFilesystem(afero.NewMemMapFs()),
//		horcrux.WithClock(func() int64 { return 1700000000000 }),
//	)
//	result, err := eng.SplitBuffer(payload, "secret.pdf", horcrux.SplitOptions{Total: 5, Threshold: 3})
//
// # Error Handling
//
// All failures surface as standard Go errors that work with errors.Is,
// backed by rich coded errors from github.com/agilira/go-errors:
//
//	_, err := horcrux.BindHorcruxes(shards, horcrux.BindOptions{})
//	if errors.Is(err, horcrux.ErrInsufficientShards) {
//		// go find more horcruxes
//	}
//
// # Security Considerations
//
// The payload cipher runs with a fixed all-zero IV for wire compatibility;
// all security rests on the per-split key being fresh and never reused,
// which this package enforces by generating the key inside the split and
// zeroizing it before returning. The cipher is unauthenticated: a bind
// cannot detect a tampered shard body. Callers who need authenticity must
// MAC the plaintext before splitting.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package horcrux
