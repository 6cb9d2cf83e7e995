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

package main

import (
	"strconv"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	gitarerrors "github.com/gitar-cli/gitar/internal/errors"
	"github.com/gitar-cli/gitar/pkg/paginate"
	"github.com/gitar-cli/gitar/pkg/throttle"
)

// listFlags holds the flag set shared by every list-style verb:
// --page, --from-page, --to-page, --num-pages, --sort, --created-after,
// --created-before, --format, --throttle, --throttle-range.
type listFlags struct {
	page          int
	fromPage      int
	toPage        int
	numPages      bool
	sort          string
	createdAfter  string
	createdBefore string
	format        string
	throttleMs    int
	throttleRange string
}

func bindListFlags(fs *flag.FlagSet) *listFlags {
	lf := &listFlags{}
	fs.IntVar(&lf.page, "page", 0, "fetch a single page (shorthand for --from-page N --to-page N)")
	fs.IntVar(&lf.fromPage, "from-page", 1, "first page to fetch")
	fs.IntVar(&lf.toPage, "to-page", 0, "last page to fetch (0 = unbounded)")
	fs.BoolVar(&lf.numPages, "num-pages", false, "print the total page count and exit")
	fs.StringVar(&lf.sort, "sort", "desc", "sort order: asc or desc")
	fs.StringVar(&lf.createdAfter, "created-after", "", "only items created after this date (YYYY-MM-DD)")
	fs.StringVar(&lf.createdBefore, "created-before", "", "only items created before this date (YYYY-MM-DD)")
	fs.StringVar(&lf.format, "format", "plain", "output format: plain, csv, toml, pipe")
	fs.IntVar(&lf.throttleMs, "throttle", 0, "force a fixed pre-request delay in milliseconds")
	fs.StringVar(&lf.throttleRange, "throttle-range", "", "force a randomized pre-request delay LO-HI in milliseconds")
	return lf
}

func (lf *listFlags) paginateOptions(maxPages int) paginate.Options {
	from, to := lf.fromPage, lf.toPage
	if lf.page > 0 {
		from, to = lf.page, lf.page
	}
	return paginate.Options{FromPage: from, ToPage: to, MaxPages: maxPages, NumPagesOnly: lf.numPages}
}

func (lf *listFlags) override() (throttle.Override, error) {
	var o throttle.Override
	if lf.throttleMs > 0 {
		o.HasFixed = true
		o.FixedMillis = lf.throttleMs
	}
	if lf.throttleRange != "" {
		lo, hi, err := parseRange(lf.throttleRange)
		if err != nil {
			return o, err
		}
		o.HasRange = true
		o.RangeLowMillis, o.RangeHighMillis = lo, hi
	}
	return o, nil
}

func parseRange(s string) (lo, hi int, err error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, gitarerrors.NewConfigError("invalid throttle range", s, "use LO-HI, e.g. 100-500", nil)
	}
	lo, err1 := strconv.Atoi(parts[0])
	hi, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, gitarerrors.NewConfigError("invalid throttle range", s, "use LO-HI, e.g. 100-500", nil)
	}
	return lo, hi, nil
}

func (lf *listFlags) sortAscending() bool { return lf.sort == "asc" }

func (lf *listFlags) parseCreatedAfter() (time.Time, error) {
	return parseDateFlag("--created-after", lf.createdAfter)
}

func (lf *listFlags) parseCreatedBefore() (time.Time, error) {
	return parseDateFlag("--created-before", lf.createdBefore)
}

func parseDateFlag(flagName, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, gitarerrors.NewConfigError("invalid date for "+flagName, s, "use YYYY-MM-DD", err)
	}
	return t, nil
}
