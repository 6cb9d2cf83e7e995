// Copyright 2026 GitAR Authors
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// Key computes the content-addressed cache key: SHA-256 over (method,
// canonical URL, sorted query, body hash, authenticated-user
// discriminator). rawURL may already carry a query string; it is
// re-canonicalized here so callers don't need to pre-sort it themselves.
func Key(method, rawURL string, body []byte, authDiscriminator string) string {
	method = strings.ToUpper(method)

	u, err := url.Parse(rawURL)
	var path, query string
	if err == nil {
		path = u.Scheme + "://" + u.Host + u.Path
		query = canonicalQuery(u.Query())
	} else {
		path = rawURL
	}

	bodyHash := sha256.Sum256(body)

	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{0})
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write([]byte(query))
	h.Write([]byte{0})
	h.Write(bodyHash[:])
	h.Write([]byte{0})
	h.Write([]byte(authDiscriminator))

	return hex.EncodeToString(h.Sum(nil))
}

// canonicalQuery renders query parameters sorted by key, then by value,
// so two requests differing only in parameter order hash identically.
func canonicalQuery(q url.Values) string {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		vs := append([]string(nil), q[k]...)
		sort.Strings(vs)
		for _, v := range vs {
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(v)
			b.WriteByte('&')
		}
	}
	return b.String()
}

// ShardPrefix returns the directory-sharding prefix diskv's Transform
// function uses: the first two hex characters of the key, giving a
// <hex[0..2]>/<hex> layout.
func ShardPrefix(key string) string {
	if len(key) < 2 {
		return "00"
	}
	return key[:2]
}
