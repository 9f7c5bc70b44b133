package storage

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotArchived is returned for keys the memory archive does not hold
var ErrNotArchived = errors.New("document not archived")

type archivedDocument struct {
	data        []byte
	contentType string
}

// MemoryArchive holds documents in process memory. It backs the CLI and
// deployments that run without object storage.
type MemoryArchive struct {
	mu   sync.RWMutex
	docs map[string]archivedDocument
}

// NewMemoryArchive creates an empty archive
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{docs: make(map[string]archivedDocument)}
}

// Store keeps a copy of data under key
func (m *MemoryArchive) Store(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return ErrEmptyKey
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = archivedDocument{data: buf, contentType: contentType}
	return nil
}

// Delete drops key; unknown keys are ignored
func (m *MemoryArchive) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}

// Exists reports whether key is held
func (m *MemoryArchive) Exists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.docs[key]
	return ok, nil
}

// DownloadURL returns a memory:// locator. It never expires.
func (m *MemoryArchive) DownloadURL(ctx context.Context, key string) (string, time.Time, error) {
	ok, err := m.Exists(ctx, key)
	if err != nil {
		return "", time.Time{}, err
	}
	if !ok {
		return "", time.Time{}, ErrNotArchived
	}
	return "memory://" + key, time.Time{}, nil
}

// Get returns the stored bytes and content type
func (m *MemoryArchive) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[key]
	return doc.data, doc.contentType, ok
}

// Len returns the number of archived documents
func (m *MemoryArchive) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}
