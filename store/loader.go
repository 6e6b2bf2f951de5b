package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/contactview/types"
)

// Constants for file locking
const (
	lockTimeout    = 3 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond
)

// ContactFile is the on-disk layout read by Load and LoadFile
type ContactFile struct {
	Contacts []types.Contact `yaml:"contacts"`
}

// LoaderOption configures LoadFile
type LoaderOption func(*loader)

type loader struct {
	lockFactory FileLockFactory
	readFile    func(string) ([]byte, error)
}

// WithFileLockFactory sets a custom FileLockFactory implementation
func WithFileLockFactory(factory FileLockFactory) LoaderOption {
	return func(l *loader) {
		l.lockFactory = factory
	}
}

// WithReadFile replaces os.ReadFile, mainly for tests
func WithReadFile(fn func(string) ([]byte, error)) LoaderOption {
	return func(l *loader) {
		l.readFile = fn
	}
}

// LoadFile reads a YAML contact file while holding a shared lock on it, so a
// writer holding the exclusive lock is never observed mid-write
func LoadFile(ctx context.Context, path string, opts ...LoaderOption) ([]types.Contact, error) {
	l := &loader{
		lockFactory: SiblingLockFactory{},
		readFile:    os.ReadFile,
	}
	for _, opt := range opts {
		opt(l)
	}

	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	lock := l.lockFactory.New(path)
	if err := acquireSharedLock(ctx, lock); err != nil {
		return nil, err
	}
	defer func() { _ = lock.Unlock() }()

	data, err := l.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contact file: %w", err)
	}
	return Load(bytes.NewReader(data))
}

// Load decodes a YAML contact file. An empty input yields no contacts.
func Load(r io.Reader) ([]types.Contact, error) {
	var file ContactFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse contact file: %w", err)
	}
	return file.Contacts, nil
}

// acquireSharedLock attempts to acquire a shared file lock with retry logic
func acquireSharedLock(ctx context.Context, lock FileLock) error {
	for i := 0; i < lockMaxRetries; i++ {
		locked, err := lock.TryRLockContext(ctx, lockRetryDelay)
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if locked {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}

	return fmt.Errorf("failed to acquire lock after %d attempts", lockMaxRetries)
}

// Fill adds contacts to the store and marks the given partitions populated
func Fill(s *Store, contacts []types.Contact, populated ...types.FilterType) []types.RecordID {
	ids := s.Add(contacts...)
	for _, t := range populated {
		s.Populate(t)
	}
	return ids
}
