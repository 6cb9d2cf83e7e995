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

package engine

import "net/http"

// Source tags where a Response's bytes came from.
type Source string

const (
	SourceFresh       Source = "fresh"
	SourceCached      Source = "cached"
	SourceRevalidated Source = "revalidated"
)

// Response is the cached-request engine's fetch result.
type Response struct {
	Status  int
	Headers http.Header
	Body    []byte
	Source  Source
}

// Request describes one logical call a provider adapter wants made.
// Domain/Category select cache namespace, TTL, and throttle bucket;
// AuthDiscriminator feeds the cache key so two tokens never share an
// entry.
type Request struct {
	Method            string
	URL               string
	Headers           http.Header
	Body              []byte
	Domain            string
	Category          string
	AuthDiscriminator string
	Refresh           bool
}
