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

// Package throttle maintains per-domain rate-limit snapshots and decides
// the pre-request delay for GitAR's cached-request engine. Header
// parsing follows the dual-family (RateLimit-*/X-RateLimit-*) pattern
// Gizzahub's gzh-cli streaming API clients use.
package throttle

import (
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	smallSafety        = 2 * time.Second
	consecutiveHitsCap = 3
	jitteredFloor      = 1 * time.Second
	jitteredCeil       = 5 * time.Second
	backoffCeiling     = 60 * time.Second
)

var (
	remainingGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "gitar_rate_limit_remaining",
		Help: "Last observed rate-limit remaining count, by domain.",
	}, []string{"domain"})

	sleepSecondsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gitar_throttle_sleep_seconds_total",
		Help: "Cumulative seconds slept by the throttle governor, by domain.",
	}, []string{"domain"})
)

func init() {
	prometheus.MustRegister(remainingGauge, sleepSecondsTotal)
}

// Snapshot is a per-domain rate-limit snapshot.
type Snapshot struct {
	LastRemaining   int
	LastResetEpoch  int64
	LastLimit       int
	ConsecutiveHits int
	Seen            bool // true once Observe has recorded at least one response
}

// Override lets a caller force a fixed or randomized delay instead of
// the snapshot-driven decision.
type Override struct {
	FixedMillis     int
	RangeLowMillis  int
	RangeHighMillis int
	HasFixed        bool
	HasRange        bool
}

// Governor holds one Snapshot per domain behind a mutex that is never
// held across I/O.
type Governor struct {
	threshold int

	mu        sync.Mutex
	snapshots map[string]*Snapshot
	sleepFunc func(time.Duration)
	nowEpoch  func() int64
}

// New builds a Governor. threshold is rate_limit_remaining_threshold,
// resolved per-domain by the config layer (default 10).
func New(threshold int) *Governor {
	return &Governor{
		threshold: threshold,
		snapshots: make(map[string]*Snapshot),
		sleepFunc: time.Sleep,
		nowEpoch:  func() int64 { return time.Now().Unix() },
	}
}

func (g *Governor) snapshotFor(domain string) *Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.snapshots[domain]
	if !ok {
		s = &Snapshot{}
		g.snapshots[domain] = s
	}
	return s
}

// Snapshot returns a copy of the current per-domain snapshot, for
// diagnostics and tests.
func (g *Governor) Snapshot(domain string) Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.snapshots[domain]
	if !ok {
		return Snapshot{}
	}
	return *s
}

// Delay computes the pre-request sleep duration for domain, following a
// three-branch decision: sleep until reset when below threshold and a
// reset time is known, back off exponentially when it isn't, jitter a
// short cooldown after a run of near-limit hits, otherwise return zero.
// The caller is responsible for actually sleeping (via Sleep) or, during
// pagination, checking Breached and aborting instead.
func (g *Governor) Delay(domain string, override Override) time.Duration {
	if override.HasFixed {
		return time.Duration(override.FixedMillis) * time.Millisecond
	}
	if override.HasRange {
		lo, hi := override.RangeLowMillis, override.RangeHighMillis
		if hi <= lo {
			return time.Duration(lo) * time.Millisecond
		}
		span := hi - lo
		return time.Duration(lo+rand.Intn(span+1)) * time.Millisecond
	}

	snap := g.snapshotFor(domain)
	g.mu.Lock()
	remaining, resetEpoch, hits := snap.LastRemaining, snap.LastResetEpoch, snap.ConsecutiveHits
	g.mu.Unlock()

	if remaining <= g.threshold {
		if resetEpoch > 0 {
			untilReset := time.Until(time.Unix(resetEpoch, 0).Add(smallSafety))
			if untilReset > 0 {
				return untilReset
			}
			return 0
		}
		// A 429 or low-remaining response with no reset header leaves no
		// authoritative wait time; back off exponentially by hit count,
		// capped at backoffCeiling, until a response finally carries one.
		return exponentialBackoff(hits)
	}
	if hits >= consecutiveHitsCap {
		span := jitteredCeil - jitteredFloor
		return jitteredFloor + time.Duration(rand.Int63n(int64(span)+1))
	}
	return 0
}

func exponentialBackoff(hits int) time.Duration {
	d := time.Second
	for i := 0; i < hits && d < backoffCeiling; i++ {
		d *= 2
	}
	if d > backoffCeiling {
		d = backoffCeiling
	}
	return d
}

// Sleep sleeps for d, attributing the time to domain's metrics.
func (g *Governor) Sleep(domain string, d time.Duration) {
	if d <= 0 {
		return
	}
	sleepSecondsTotal.WithLabelValues(domain).Add(d.Seconds())
	g.sleepFunc(d)
}

// Breached reports whether domain is currently at or below threshold —
// used by the paginator to abort remaining pages instead of sleeping
// through them one page at a time. A domain with no recorded response
// yet is never breached: a zero-value snapshot must not read as
// "out of quota" before the first request has even been made.
func (g *Governor) Breached(domain string) bool {
	snap := g.snapshotFor(domain)
	g.mu.Lock()
	defer g.mu.Unlock()
	return snap.Seen && snap.LastRemaining <= g.threshold
}

// Observe updates the per-domain snapshot from response headers, reading
// both the RateLimit-* and X-RateLimit-* families, and records the
// consecutive-hit count used by the second delay branch.
// ConsecutiveHits decays by one per healthy observation rather than
// resetting outright, so a single recovered response doesn't erase a
// run of near-limit responses immediately before it — the cooldown
// branch still applies once on the way out.
func (g *Governor) Observe(domain string, headers http.Header) {
	remaining, hasRemaining := parseIntHeader(headers, "RateLimit-Remaining", "X-RateLimit-Remaining")
	resetEpoch, hasReset := parseIntHeader(headers, "RateLimit-Reset", "X-RateLimit-Reset")
	limit, hasLimit := parseIntHeader(headers, "RateLimit-Limit", "X-RateLimit-Limit")

	snap := g.snapshotFor(domain)
	g.mu.Lock()
	snap.Seen = true
	if hasRemaining {
		snap.LastRemaining = remaining
		if remaining <= g.threshold {
			snap.ConsecutiveHits++
		} else if snap.ConsecutiveHits > 0 {
			snap.ConsecutiveHits--
		}
	}
	if hasReset {
		snap.LastResetEpoch = int64(resetEpoch)
	}
	if hasLimit {
		snap.LastLimit = limit
	}
	g.mu.Unlock()

	if hasRemaining {
		remainingGauge.WithLabelValues(domain).Set(float64(remaining))
	}
}

func parseIntHeader(headers http.Header, primary, fallback string) (int, bool) {
	v := headers.Get(primary)
	if v == "" {
		v = headers.Get(fallback)
	}
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
