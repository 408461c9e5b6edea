package service

import (
	"sync"

	"github.com/google/uuid"
)

// studentLocks serializes ledger writes per student. Entries are dropped
// once no goroutine holds or waits on them.
type studentLocks struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*studentLock
}

type studentLock struct {
	mu   sync.Mutex
	refs int
}

func newStudentLocks() *studentLocks {
	return &studentLocks{entries: map[uuid.UUID]*studentLock{}}
}

func (l *studentLocks) lock(id uuid.UUID) (unlock func()) {
	l.mu.Lock()
	e, ok := l.entries[id]
	if !ok {
		e = &studentLock{}
		l.entries[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, id)
		}
		l.mu.Unlock()
	}
}

func (l *studentLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
