// Package ratelimit implements per-client token bucket limiting for the API,
// with per-endpoint limits tiered by how expensive the endpoint is.
package ratelimit

import (
	"sync"
	"time"
)

// staleAfter is how long an idle bucket survives before the sweeper drops it.
const staleAfter = time.Hour

// bucket is a token bucket for one client+endpoint pair. Tokens refill
// continuously at refillRate per second up to capacity.
type bucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
}

func newBucket(capacity int, refillRate float64, now time.Time) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now,
		lastSeen:   now,
	}
}

// take refills the bucket, consumes a token when one is available, and
// reports the remaining tokens and when the bucket will be full again.
func (b *bucket) take(now time.Time) (allowed bool, remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(b.capacity, b.tokens+elapsed*b.refillRate)
	b.lastRefill = now
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		allowed = true
	}

	remaining = int(b.tokens)
	reset = now
	if b.tokens < b.capacity {
		secondsUntilFull := (b.capacity - b.tokens) / b.refillRate
		reset = now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
	}
	return allowed, remaining, reset
}

func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastSeen.Before(cutoff)
}

// Info reports the outcome of one rate limit check, in the shape the
// middleware needs for X-RateLimit-* and Retry-After headers.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds limiter-wide settings. Per-endpoint limits live in
// EndpointConfigs; everything else falls through to the default limit.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter tracks a token bucket per client+endpoint+method and sweeps idle
// buckets in the background.
type Limiter struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	config  *Config
	ticker  *time.Ticker
	stop    chan struct{}
}

// NewLimiter builds a limiter. A nil config enables limiting with the
// package defaults and no endpoint table.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Whitelist:       make(map[string]bool),
			Blacklist:       make(map[string]bool),
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.ticker = time.NewTicker(config.CleanupInterval)
		l.stop = make(chan struct{})
		go l.sweepLoop()
	}

	return l
}

// Allow decides whether a request from clientID to endpoint may proceed.
// Whitelisted clients and unlimited endpoints bypass the buckets entirely;
// blacklisted clients are always refused.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	ec := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if ec == nil {
		ec = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}
	if ec.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	now := time.Now()
	b := l.getBucket(clientID+":"+endpoint+":"+method, ec, now)
	allowed, remaining, reset := b.take(now)

	info := Info{
		Allowed:   allowed,
		Limit:     ec.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !allowed {
		if retry := time.Until(reset); retry > 0 {
			info.RetryAfter = retry
		}
	}
	return allowed, info
}

func (l *Limiter) getBucket(key string, ec *EndpointConfig, now time.Time) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	capacity := ec.Burst
	if capacity <= 0 {
		capacity = ec.Limit
	}
	refillRate := float64(ec.Limit) / ec.Window.Seconds()

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.buckets[key]; ok {
		return existing
	}
	b = newBucket(capacity, refillRate, now)
	l.buckets[key] = b
	return b
}

func (l *Limiter) sweepLoop() {
	for {
		select {
		case <-l.ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// sweep drops buckets whose clients have gone quiet so one-off visitors
// don't accumulate forever.
func (l *Limiter) sweep() {
	cutoff := time.Now().Add(-staleAfter)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop terminates the background sweeper.
func (l *Limiter) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
	}
	if l.stop != nil {
		close(l.stop)
	}
}
