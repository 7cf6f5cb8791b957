package resilience

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// Policy decides how often a classifier call is attempted and when its
// endpoint is taken out of rotation. The zero value sends every call once.
type Policy struct {
	Attempts int
	Backoff  Backoff
	Breaker  BreakerPolicy
}

type Backoff struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
}

type BreakerPolicy struct {
	Enabled       bool
	MinRequests   uint32
	FailureRatio  float64
	OpenTimeout   time.Duration
	HalfOpenCalls uint32
}

// ClientPolicy builds the policy for the classification service from the
// configured attempt count, backoff bounds and breaker switch.
func ClientPolicy(attempts int, initial, maxBackoff time.Duration, breaker bool) Policy {
	return Policy{
		Attempts: attempts,
		Backoff:  Backoff{Initial: initial, Max: maxBackoff},
		Breaker:  BreakerPolicy{Enabled: breaker},
	}.withDefaults()
}

func (p Policy) withDefaults() Policy {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	p.Backoff = p.Backoff.withDefaults()
	p.Breaker = p.Breaker.withDefaults()
	return p
}

func (b Backoff) withDefaults() Backoff {
	if b.Initial <= 0 {
		b.Initial = 100 * time.Millisecond
	}
	if b.Max <= 0 {
		b.Max = 4 * b.Initial
	}
	if b.Max < b.Initial {
		b.Max = b.Initial
	}
	if b.Multiplier < 1 {
		b.Multiplier = 2
	}
	return b
}

// Delay is the wait before retry number n (1-based), capped at Max.
func (b Backoff) Delay(n int) time.Duration {
	d := b.Initial
	for i := 1; i < n && d < b.Max; i++ {
		d = time.Duration(float64(d) * b.Multiplier)
	}
	return min(d, b.Max)
}

func (b BreakerPolicy) withDefaults() BreakerPolicy {
	if b.MinRequests == 0 {
		b.MinRequests = 5
	}
	if b.FailureRatio <= 0 || b.FailureRatio > 1 {
		b.FailureRatio = 0.5
	}
	if b.OpenTimeout <= 0 {
		b.OpenTimeout = 30 * time.Second
	}
	if b.HalfOpenCalls == 0 {
		b.HalfOpenCalls = 1
	}
	return b
}

func (b BreakerPolicy) trips(counts gobreaker.Counts) bool {
	if counts.Requests < b.MinRequests {
		return false
	}
	return float64(counts.TotalFailures)/float64(counts.Requests) >= b.FailureRatio
}
