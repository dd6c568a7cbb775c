package service

import (
	"sort"
	"sync"
)

// addressLocks serializes ledger operations per wallet address. Lock
// acquires the mutexes for all given addresses in sorted order so a
// transfer locking a pair can never deadlock against another transfer
// locking the same pair in the opposite direction.
type addressLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

func newAddressLocks() *addressLocks {
	return &addressLocks{locks: make(map[string]*sync.RWMutex)}
}

func (l *addressLocks) get(address string) *sync.RWMutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[address]
	if !ok {
		m = &sync.RWMutex{}
		l.locks[address] = m
	}
	return m
}

// Lock acquires write locks for the given addresses in sorted order,
// skipping duplicates, and returns a function releasing them in
// reverse order.
func (l *addressLocks) Lock(addresses ...string) (unlock func()) {
	keys := dedupeSorted(addresses)
	held := make([]*sync.RWMutex, 0, len(keys))
	for _, k := range keys {
		m := l.get(k)
		m.Lock()
		held = append(held, m)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

// RLock acquires a read lock for one address, for history reads that
// must not interleave with an in-flight mutation of that wallet.
func (l *addressLocks) RLock(address string) (unlock func()) {
	m := l.get(address)
	m.RLock()
	return m.RUnlock
}

func dedupeSorted(addresses []string) []string {
	keys := make([]string, len(addresses))
	copy(keys, addresses)
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for i, k := range keys {
		if i == 0 || keys[i-1] != k {
			out = append(out, k)
		}
	}
	return out
}
