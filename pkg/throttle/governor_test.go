package throttle_test

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/gitar-cli/gitar/pkg/throttle"
	"github.com/stretchr/testify/assert"
)

func TestDelayNoDelayWhenHealthy(t *testing.T) {
	g := throttle.New(10)
	g.Observe("gitlab.com", http.Header{"Ratelimit-Remaining": {"50"}})
	assert.Equal(t, time.Duration(0), g.Delay("gitlab.com", throttle.Override{}))
}

func TestDelaySleepsUntilResetWhenBelowThreshold(t *testing.T) {
	g := throttle.New(10)
	resetAt := time.Now().Add(30 * time.Second).Unix()
	g.Observe("gitlab.com", http.Header{
		"Ratelimit-Remaining": {"5"},
		"Ratelimit-Reset":     {strconv.FormatInt(resetAt, 10)},
	})
	d := g.Delay("gitlab.com", throttle.Override{})
	assert.Greater(t, d, 29*time.Second)
}

func TestDelayBacksOffExponentiallyWithoutResetHeader(t *testing.T) {
	g := throttle.New(10)
	g.Observe("gitlab.com", http.Header{"Ratelimit-Remaining": {"3"}})
	first := g.Delay("gitlab.com", throttle.Override{})

	g.Observe("gitlab.com", http.Header{"Ratelimit-Remaining": {"3"}})
	second := g.Delay("gitlab.com", throttle.Override{})

	assert.Greater(t, second, first)
	assert.LessOrEqual(t, second, 60*time.Second)
}

func TestDelayJittersOnRecoveryAfterThreeConsecutiveHits(t *testing.T) {
	g := throttle.New(10)
	for i := 0; i < 4; i++ {
		g.Observe("gitlab.com", http.Header{"Ratelimit-Remaining": {"3"}})
	}
	// consecutive_hits is now 4; one healthy observation decays it to 3,
	// which still satisfies the >=3 cooldown branch on the next Delay.
	g.Observe("gitlab.com", http.Header{"Ratelimit-Remaining": {"50"}})

	d := g.Delay("gitlab.com", throttle.Override{})
	assert.GreaterOrEqual(t, d, 1*time.Second)
	assert.LessOrEqual(t, d, 5*time.Second)
}

func TestDelayHonorsFixedOverride(t *testing.T) {
	g := throttle.New(10)
	d := g.Delay("gitlab.com", throttle.Override{HasFixed: true, FixedMillis: 250})
	assert.Equal(t, 250*time.Millisecond, d)
}

func TestDelayHonorsRangeOverride(t *testing.T) {
	g := throttle.New(10)
	d := g.Delay("gitlab.com", throttle.Override{HasRange: true, RangeLowMillis: 100, RangeHighMillis: 200})
	assert.GreaterOrEqual(t, d, 100*time.Millisecond)
	assert.LessOrEqual(t, d, 200*time.Millisecond)
}

func TestObserveParsesXRateLimitFamily(t *testing.T) {
	g := throttle.New(10)
	g.Observe("github.com", http.Header{"X-Ratelimit-Remaining": {"2"}, "X-Ratelimit-Limit": {"60"}})
	snap := g.Snapshot("github.com")
	assert.Equal(t, 2, snap.LastRemaining)
	assert.Equal(t, 60, snap.LastLimit)
}

func TestBreachedReflectsThreshold(t *testing.T) {
	g := throttle.New(10)
	assert.False(t, g.Breached("gitlab.com"))
	g.Observe("gitlab.com", http.Header{"Ratelimit-Remaining": {"9"}})
	assert.True(t, g.Breached("gitlab.com"))
}

func TestBreachedFalseForNeverObservedDomain(t *testing.T) {
	g := throttle.New(10)
	assert.False(t, g.Breached("fresh.example.com"))
}
