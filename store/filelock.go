package store

import (
	"context"
	"time"

	"github.com/gofrs/flock"
)

// FileLock guards a contact file while LoadFile reads it. Readers share the
// lock; a writer holding it exclusively keeps them out until it is done.
type FileLock interface {
	TryRLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)
	Unlock() error
}

// FileLockFactory hands LoadFile the lock for a contact file
type FileLockFactory interface {
	New(path string) FileLock
}

// LockPath names the file locked on behalf of a contact file. Writers must
// take the same path.
func LockPath(contactFile string) string {
	return contactFile + ".lock"
}

// SiblingLockFactory locks LockPath(path) with flock(2), leaving the contact
// file untouched
type SiblingLockFactory struct{}

// New returns an unlocked lock for the contact file at path
func (SiblingLockFactory) New(path string) FileLock {
	return siblingLock{flock.New(LockPath(path))}
}

// siblingLock narrows *flock.Flock to the shared side used by readers
type siblingLock struct {
	*flock.Flock
}
