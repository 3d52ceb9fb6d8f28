package application

import "sync"

// RecordLocks serializes updates per (productID, channelID) stock
// record. The ledger and the reconciler share one lock set so their
// read-modify-write cycles never clobber each other. Locks are created
// lazily and never reclaimed; the key space is bounded by the catalog
// size.
type RecordLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRecordLocks creates an empty lock set.
func NewRecordLocks() *RecordLocks {
	return &RecordLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the record for a product/channel pair and returns the
// release function.
func (l *RecordLocks) acquire(productID, channelID string) func() {
	key := productID + "|" + channelID

	l.mu.Lock()
	lock, ok := l.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[key] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
