// Package dedup keeps the same real-world transaction from being recorded
// twice. Two complementary mechanisms, both required: an exact fingerprint
// that suppresses same-channel redelivery of one event, and a windowed
// time-plus-amount match that catches the same transaction arriving through
// different channels (a live notification and a later statement import).
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// fingerprintPrefixLen is how much of the body participates in the digest.
// The leading characters carry the amount and merchant phrasing; the tail
// is boilerplate that varies per delivery.
const fingerprintPrefixLen = 50

// Fingerprint computes the stable identity of one delivered event: a
// digest over the origin identifier, the plain amount string and the
// lowercased body prefix. Not a security primitive; it only needs to be
// deterministic and collision-free across the three inputs.
func Fingerprint(origin string, amount decimal.Decimal, body string) string {
	prefix := body
	if runes := []rune(prefix); len(runes) > fingerprintPrefixLen {
		prefix = string(runes[:fingerprintPrefixLen])
	}
	h := sha256.New()
	h.Write([]byte(origin))
	h.Write([]byte{0})
	h.Write([]byte(amount.String()))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(prefix)))
	return hex.EncodeToString(h.Sum(nil))
}

// RecentCache remembers fingerprints for a bounded time so a delivery
// layer re-announcing the same event is dropped before extraction runs.
// Safe for concurrent use.
type RecentCache struct {
	mu   sync.Mutex
	ttl  time.Duration
	seen map[string]time.Time
	now  func() time.Time
}

// NewRecentCache creates a cache that forgets fingerprints after ttl.
func NewRecentCache(ttl time.Duration) *RecentCache {
	return &RecentCache{
		ttl:  ttl,
		seen: make(map[string]time.Time),
		now:  time.Now,
	}
}

// SeenRecently reports whether fp was recorded within the TTL, and records
// it either way.
func (c *RecentCache) SeenRecently(fp string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, at := range c.seen {
		if now.Sub(at) > c.ttl {
			delete(c.seen, key)
		}
	}

	_, ok := c.seen[fp]
	c.seen[fp] = now
	return ok
}
