// Copyright 2026 GitAR Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cache implements GitAR's content-addressed filesystem cache:
// one file per entry under
// <cache_location>/<domain>/<category>/<hex-prefix>/<key>, atomically
// written, tolerant of missing/truncated/corrupt files. Backed by
// github.com/peterbourgon/diskv, the same library a GitHub API response
// cache in the wild (kubernetes-test-infra's ghproxy/ghcache) uses for
// an identical sharded-on-disk shape.
package cache

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

// Store is a per-domain, per-category content-addressed KV store. A nil
// *Store (constructed via Disabled) makes every call a no-op miss, so
// an absent cache_location bypasses caching without callers needing
// their own nil checks.
type Store struct {
	basePath string
	logger   *slog.Logger

	mu   sync.Mutex
	disk map[string]*diskv.Diskv // keyed by "<domain>/<category>"
}

// New creates a Store rooted at basePath. basePath must already be an
// absolute, existing-or-creatable directory; New does not validate it
// until the first write (diskv creates directories lazily).
func New(basePath string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{basePath: basePath, logger: logger, disk: make(map[string]*diskv.Diskv)}
}

// Disabled returns a Store that treats every key as absent and every
// write as a silent no-op, used when resolved config has no
// cache_location.
func Disabled() *Store { return nil }

// Enabled reports whether this store will actually persist entries.
func (s *Store) Enabled() bool { return s != nil }

func (s *Store) diskFor(domain, category string) *diskv.Diskv {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns := domain + "/" + category
	if d, ok := s.disk[ns]; ok {
		return d
	}

	d := diskv.New(diskv.Options{
		BasePath: filepath.Join(s.basePath, domain, category),
		Transform: func(key string) []string {
			return []string{ShardPrefix(key)}
		},
		CacheSizeMax: 0, // no in-process memory cache; filesystem is the cache
	})
	s.disk[ns] = d
	return d
}

// Get reads the entry for key under domain/category. A missing,
// truncated, or unparsable file returns nil — "absent", never a
// panic — and decode failures are logged at WARN.
func (s *Store) Get(domain, category, key string) *Entry {
	if s == nil {
		return nil
	}

	raw, err := s.diskFor(domain, category).Read(key)
	if err != nil {
		return nil // not found, or unreadable — both are "absent"
	}

	entry, err := decode(raw)
	if err != nil {
		s.logger.Warn("cache entry corrupt, treating as absent",
			"domain", domain, "category", category, "key", key, "error", err)
		return nil
	}
	return entry
}

// Put writes entry for key under domain/category. diskv writes to a
// temp sibling and renames into place for an atomic write; last writer
// wins on concurrent puts to the same key, since concurrent writers for
// one URL produce semantically equivalent representations.
func (s *Store) Put(domain, category, key string, entry *Entry) error {
	if s == nil {
		return nil
	}

	raw, err := entry.encode()
	if err != nil {
		return err
	}
	return s.diskFor(domain, category).Write(key, raw)
}

// Touch rewrites an entry with a new StoredAt, used on 304 Not Modified
// responses. stored_at is monotonic per key because callers always pass
// the current wall-clock time, which only advances.
func (s *Store) Touch(domain, category, key string, entry *Entry, newStoredAt int64) error {
	entry.StoredAt = newStoredAt
	return s.Put(domain, category, key, entry)
}

// Wipe erases every entry under domain (or the whole cache when domain
// is empty), backing the `gr` cache-wipe maintenance path.
func (s *Store) Wipe(domain string) error {
	if s == nil {
		return nil
	}
	root := s.basePath
	if domain != "" {
		root = filepath.Join(s.basePath, domain)
	}
	return removeAll(root)
}
