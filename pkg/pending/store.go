package pending

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a pending transaction stays confirmable.
const DefaultTTL = 5 * time.Minute

// Store holds transfers awaiting explicit confirmation. Entries are kept in
// memory only; a restart drops all pending commitments.
//
// The store never evicts on its own: expiry is enforced by callers at the
// confirm/cancel boundary, which lets them tell "never existed" apart from
// "expired".
type Store struct {
	mu  sync.Mutex
	ttl time.Duration
	// txs preserves insertion order for List.
	txs []*Transaction
}

// NewStore creates a store with the given TTL. A zero or negative ttl falls
// back to DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{ttl: ttl}
}

// Create allocates an id, stamps creation and expiry times, stores the entry
// and returns the full record.
func (s *Store) Create(typ Type, walletName, description string, payload Payload) *Transaction {
	now := time.Now()

	tx := &Transaction{
		ID:          newID("tx", now),
		Type:        typ,
		WalletName:  walletName,
		Description: description,
		Payload:     payload,
		CreatedAt:   now.UnixMilli(),
		ExpiresAt:   now.Add(s.ttl).UnixMilli(),
	}

	s.mu.Lock()
	s.txs = append(s.txs, tx)
	s.mu.Unlock()

	return tx
}

// Get looks up a transaction without side effects. The entry may already be
// past its expiry; callers decide how to treat that.
func (s *Store) Get(id string) (*Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range s.txs {
		if tx.ID == id {
			return tx, true
		}
	}
	return nil, false
}

// Remove deletes the entry and reports whether it existed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, tx := range s.txs {
		if tx.ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return true
		}
	}
	return false
}

// List returns all stored transactions in insertion order.
func (s *Store) List() []*Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

// Count returns the number of stored transactions.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.txs)
}

// newID builds an id from the creation timestamp plus a random suffix, so ids
// are unique for the process lifetime with negligible collision probability.
func newID(prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), suffix)
}
