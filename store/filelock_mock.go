package store

import (
	"context"
	"sync"
	"time"
)

// MockFileLock is an in-memory FileLock for tests. A lock marked as held
// exclusively refuses every shared acquisition.
type MockFileLock struct {
	mu        sync.Mutex
	exclusive bool
	readers   int
	lockError error

	LockAttempts   int
	UnlockAttempts int
}

// TryRLockContext implements FileLock.TryRLockContext
func (m *MockFileLock) TryRLockContext(ctx context.Context, retryInterval time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LockAttempts++
	if m.lockError != nil {
		return false, m.lockError
	}
	if m.exclusive {
		return false, nil
	}
	m.readers++
	return true, nil
}

// Unlock implements FileLock.Unlock
func (m *MockFileLock) Unlock() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UnlockAttempts++
	if m.readers > 0 {
		m.readers--
	}
	return nil
}

// Readers returns the number of shared holders
func (m *MockFileLock) Readers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readers
}

// HoldExclusive simulates a writer owning the file
func (m *MockFileLock) HoldExclusive(held bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exclusive = held
}

// SetLockError sets an error to be returned on lock attempts
func (m *MockFileLock) SetLockError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lockError = err
}

// MockFileLockFactory hands out one MockFileLock per path
type MockFileLockFactory struct {
	mu    sync.Mutex
	locks map[string]*MockFileLock
}

// NewMockFileLockFactory creates an empty factory
func NewMockFileLockFactory() *MockFileLockFactory {
	return &MockFileLockFactory{locks: make(map[string]*MockFileLock)}
}

// New implements FileLockFactory.New
func (f *MockFileLockFactory) New(path string) FileLock {
	return f.Lock(path)
}

// Lock returns the mock lock for a path, creating it on first use
func (f *MockFileLockFactory) Lock(path string) *MockFileLock {
	f.mu.Lock()
	defer f.mu.Unlock()

	if lock, ok := f.locks[path]; ok {
		return lock
	}
	lock := &MockFileLock{}
	f.locks[path] = lock
	return lock
}
