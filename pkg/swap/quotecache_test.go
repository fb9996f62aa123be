package swap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuote() *Quote {
	return &Quote{
		Provider:    providerName,
		FromToken:   TonSymbol,
		ToToken:     "EQCxE6mUtQJKFnGfaROTKOtn4etqTFZBVToewmQhHSIuJwqY",
		FromAmount:  "1000000000",
		ToAmount:    "2000000",
		MinReceived: "1980000",
	}
}

func TestQuoteCachePutTake(t *testing.T) {
	c := NewQuoteCache()

	q := testQuote()
	id, deadline := c.Put(q)

	require.NotEmpty(t, id)
	assert.WithinDuration(t, time.Now().Add(defaultQuoteTTL), deadline, time.Second)

	got, status := c.Take(id)
	require.Equal(t, TakeOK, status)
	assert.Same(t, q, got)
}

func TestQuoteCacheSingleUse(t *testing.T) {
	c := NewQuoteCache()

	id, _ := c.Put(testQuote())

	_, status := c.Take(id)
	require.Equal(t, TakeOK, status)

	got, status := c.Take(id)
	assert.Nil(t, got)
	assert.Equal(t, TakeNotFound, status, "a consumed id must never resolve again")
}

func TestQuoteCacheUnknownID(t *testing.T) {
	c := NewQuoteCache()

	got, status := c.Take("quote_0_deadbeef")
	assert.Nil(t, got)
	assert.Equal(t, TakeNotFound, status)
}

func TestQuoteCacheProviderExpiry(t *testing.T) {
	c := NewQuoteCache()

	q := testQuote()
	q.ValidUntil = time.Now().Add(-time.Second).Unix()
	id, deadline := c.Put(q)

	assert.True(t, deadline.Before(time.Now()))

	got, status := c.Take(id)
	assert.Nil(t, got)
	assert.Equal(t, TakeExpired, status)

	// The expired take removed the entry.
	_, status = c.Take(id)
	assert.Equal(t, TakeNotFound, status)
}

func TestQuoteCacheFutureProviderExpiry(t *testing.T) {
	c := NewQuoteCache()

	q := testQuote()
	q.ValidUntil = time.Now().Add(5 * time.Minute).Unix()
	_, deadline := c.Put(q)

	assert.WithinDuration(t, time.Unix(q.ValidUntil, 0), deadline, time.Second)
}

func TestQuoteCacheSweepOnPut(t *testing.T) {
	c := NewQuoteCache()

	stale := testQuote()
	stale.ValidUntil = time.Now().Add(-time.Minute).Unix()
	c.Put(stale)
	require.Equal(t, 1, c.Len())

	c.Put(testQuote())
	assert.Equal(t, 1, c.Len(), "expired entries are swept on Put")
}
