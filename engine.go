// engine.go: The platform capability set behind split and bind.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package horcrux

import (
	"crypto/rand"
	"io"
	"os"

	"github.com/agilira/go-timecache"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Engine carries the platform capabilities the split/bind pipeline consumes:
// a filesystem, a cryptographically secure random source, a logger and a
// clock. The engine itself is pure between invocations; independent splits
// and binds may run concurrently on the same Engine.
type Engine struct {
	fs   afero.Fs
	rand io.Reader
	log  *logrus.Logger
	now  func() int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithFilesystem replaces the filesystem capability. Tests typically pass
// afero.NewMemMapFs().
func WithFilesystem(fs afero.Fs) Option {
	return func(e *Engine) { e.fs = fs }
}

// WithRandSource replaces the random source. It must be cryptographically
// secure in production; key and share freshness is the only thing standing
// between the fixed-IV cipher and catastrophe.
func WithRandSource(r io.Reader) Option {
	return func(e *Engine) { e.rand = r }
}

// WithLogger replaces the engine logger.
func WithLogger(log *logrus.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithClock replaces the millisecond clock used to stamp split runs.
func WithClock(now func() int64) Option {
	return func(e *Engine) { e.now = now }
}

// New builds an Engine. Without options it operates on the host filesystem,
// crypto/rand, a stderr logger at Warn level and the cached wall clock.
func New(opts ...Option) *Engine {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	e := &Engine{
		fs:   afero.NewOsFs(),
		rand: rand.Reader,
		log:  log,
		now:  func() int64 { return timecache.CachedTime().UnixMilli() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New()

// Default returns the engine backing the package-level convenience
// functions: host filesystem, crypto/rand, stderr warnings.
func Default() *Engine {
	return defaultEngine
}
