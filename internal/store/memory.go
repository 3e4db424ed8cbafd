package store

import (
	"context"
	"log"
	"sync"
	"time"

	"letterforge/internal/model"
)

// MemoryStore keeps documents in a process-local map with a fire-once
// expiry timer per entry. State is lost on restart and invisible to other
// instances; deployments that need more swap in RedisStore behind the same
// interface.
type MemoryStore struct {
	mu   sync.RWMutex
	ttl  time.Duration
	docs map[string]*memoryEntry
}

type memoryEntry struct {
	record model.DocumentRecord
	timer  *time.Timer
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryStore{
		ttl:  ttl,
		docs: make(map[string]*memoryEntry),
	}
}

func (s *MemoryStore) Create(_ context.Context, id string, record model.DocumentRecord) error {
	record.GeneratedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.docs[id]; ok {
		existing.timer.Stop()
	}

	timer := time.AfterFunc(s.ttl, func() {
		s.expire(id)
	})
	s.docs[id] = &memoryEntry{record: record, timer: timer}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*model.DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.docs[id]
	if !ok {
		return nil, ErrDocumentNotFound
	}

	record := entry.record
	record.Sections = append([]model.Section(nil), entry.record.Sections...)
	return &record, nil
}

func (s *MemoryStore) MarkPaid(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.docs[id]
	if !ok {
		return ErrDocumentNotFound
	}
	entry.record.IsPaid = true
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.docs[id]
	if !ok {
		return ErrDocumentNotFound
	}
	entry.timer.Stop()
	delete(s.docs, id)
	return nil
}

func (s *MemoryStore) expire(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The entry may already be gone if Delete raced the timer; that is fine.
	if _, ok := s.docs[id]; !ok {
		return
	}
	delete(s.docs, id)
	log.Printf("document %s expired and removed", id)
}
