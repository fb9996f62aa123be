package swap

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// defaultQuoteTTL bounds quotes whose provider did not supply an expiry.
const defaultQuoteTTL = 60 * time.Second

// TakeStatus is the outcome of QuoteCache.Take.
type TakeStatus int

const (
	TakeOK TakeStatus = iota
	TakeNotFound
	TakeExpired
)

type quoteEntry struct {
	quote     *Quote
	expiresAt int64 // epoch ms
}

// QuoteCache holds short-lived swap quotes keyed by an opaque id. Every
// successful Take removes the entry, so a quote id is executable at most
// once; a removed id is never returned again.
type QuoteCache struct {
	mu      sync.Mutex
	entries map[string]quoteEntry
}

func NewQuoteCache() *QuoteCache {
	return &QuoteCache{entries: make(map[string]quoteEntry)}
}

// Put stores the quote under a fresh id and returns the id together with the
// entry deadline. The deadline comes from the provider expiry when present,
// otherwise now plus the default TTL. Expired entries are swept on every Put.
func (c *QuoteCache) Put(q *Quote) (string, time.Time) {
	now := time.Now()

	expiresAt := now.Add(defaultQuoteTTL)
	if q.ValidUntil > 0 {
		expiresAt = time.UnixMilli(q.ValidUntil * 1000)
	}

	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	id := fmt.Sprintf("quote_%d_%s", now.UnixMilli(), suffix)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweep(now)
	c.entries[id] = quoteEntry{quote: q, expiresAt: expiresAt.UnixMilli()}

	return id, expiresAt
}

// Take resolves and consumes a quote. The entry is removed on every path
// that found it, both valid and expired.
func (c *QuoteCache) Take(id string) (*Quote, TakeStatus) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[id]
	if !ok {
		return nil, TakeNotFound
	}
	delete(c.entries, id)

	if now.UnixMilli() >= entry.expiresAt {
		return nil, TakeExpired
	}
	return entry.quote, TakeOK
}

// Len reports the number of live entries, expired ones included until swept.
func (c *QuoteCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// sweep drops all entries past their deadline. Caller holds the lock.
func (c *QuoteCache) sweep(now time.Time) {
	ms := now.UnixMilli()
	for id, entry := range c.entries {
		if ms >= entry.expiresAt {
			delete(c.entries, id)
		}
	}
}
