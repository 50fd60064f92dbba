// discover.go: Auto-discovery of a horcrux set in a directory.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package horcrux

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	goerrors "github.com/agilira/go-errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// shardGroupKey identifies one split run during discovery.
type shardGroupKey struct {
	filename  string
	timestamp int64
}

// AutoBind scans dir for .horcrux files, groups them by split run, and
// binds the single run it finds.
//
// Files that fail to parse are logged at Warn level and skipped; they do
// not abort the scan. Zero discovered runs is ErrNoShards; more than one is
// ErrAmbiguousShardSets, since the engine cannot guess which file the
// caller wants resurrected.
//
// Two independent splits of the same filename in the same millisecond would
// collide into one group here. That is a known limitation of using the
// timestamp as the run identifier, mitigated by per-split key freshness.
func (e *Engine) AutoBind(dir string) (*BindResult, error) {
	entries, err := afero.ReadDir(e.fs, dir)
	if err != nil {
		return nil, goerrors.Wrap(err, ErrCodeFileRead, fmt.Sprintf("failed to list %s", dir))
	}

	groups := make(map[shardGroupKey][]Horcrux)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".horcrux") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		h, err := e.loadShard(path)
		if err != nil {
			e.log.WithFields(logrus.Fields{"path": path}).WithError(err).Warn("skipping unreadable horcrux")
			continue
		}
		key := shardGroupKey{filename: h.Header.OriginalFilename, timestamp: h.Header.Timestamp}
		groups[key] = append(groups[key], *h)
	}

	if len(groups) == 0 {
		richErr := goerrors.New(ErrCodeNoShards, fmt.Sprintf("no horcruxes found in %s", dir))
		return nil, fmt.Errorf("%w: %w", ErrNoShards, richErr)
	}
	if len(groups) > 1 {
		names := make([]string, 0, len(groups))
		seen := make(map[string]bool)
		for key := range groups {
			if !seen[key.filename] {
				seen[key.filename] = true
				names = append(names, key.filename)
			}
		}
		sort.Strings(names)
		richErr := goerrors.New(ErrCodeAmbiguousShardSets, fmt.Sprintf("found horcruxes of: %s", strings.Join(names, ", ")))
		return nil, fmt.Errorf("%w: %w", ErrAmbiguousShardSets, richErr)
	}

	for _, shards := range groups {
		sort.Slice(shards, func(i, j int) bool {
			return shards[i].Header.Index < shards[j].Header.Index
		})
		return e.BindHorcruxes(shards, BindOptions{})
	}
	return nil, nil // unreachable
}
