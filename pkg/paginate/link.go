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

package paginate

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// links holds the parsed rel targets of an RFC 8288 Link header, the
// shape the pack's Gizzahub/gzh-cli streaming API clients parse to walk
// GitLab/GitHub pagination.
type links struct {
	next, prev, first, last string
}

func parseLinkHeader(h http.Header) links {
	var out links
	raw := h.Get("Link")
	if raw == "" {
		return out
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		segs := strings.Split(part, ";")
		if len(segs) < 2 {
			continue
		}
		u := strings.Trim(strings.TrimSpace(segs[0]), "<>")
		var rel string
		for _, attr := range segs[1:] {
			attr = strings.TrimSpace(attr)
			if strings.HasPrefix(attr, "rel=") {
				rel = strings.Trim(strings.TrimPrefix(attr, "rel="), `"`)
			}
		}
		switch rel {
		case "next":
			out.next = u
		case "prev":
			out.prev = u
		case "first":
			out.first = u
		case "last":
			out.last = u
		}
	}
	return out
}

// pageParam extracts the "page" query parameter from a Link target URL,
// used to discover the total page count from the "last" rel.
func pageParam(rawURL string) (int, bool) {
	if rawURL == "" {
		return 0, false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, false
	}
	v := u.Query().Get("page")
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// withPage returns rawURL with its "page" query parameter set to n,
// used by the fallback ?page=N walker and the parallel fan-out mode.
func withPage(rawURL string, n int) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(n))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
