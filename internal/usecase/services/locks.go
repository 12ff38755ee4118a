package services

import "sync"

// accountLocker serialises read-check-write sequences per account number so
// two concurrent postings cannot both validate against the same stale
// balance snapshot.
type accountLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocker() *accountLocker {
	return &accountLocker{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for one account number and returns its release
// function.
func (l *accountLocker) lock(accountNumber string) func() {
	l.mu.Lock()
	m, ok := l.locks[accountNumber]
	if !ok {
		m = &sync.Mutex{}
		l.locks[accountNumber] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// lockPair acquires both account locks in a stable order so two transfers
// between the same accounts in opposite directions cannot deadlock.
func (l *accountLocker) lockPair(a, b string) func() {
	if b < a {
		a, b = b, a
	}
	unlockA := l.lock(a)
	unlockB := l.lock(b)
	return func() {
		unlockB()
		unlockA()
	}
}
