package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// memoryDayCollection is an insertion-ordered in-memory DayCollection.
// It backs the upsert engine in tests and keeps the same alias-aware
// matching as the Mongo implementation.
type memoryDayCollection struct {
	mu   sync.Mutex
	seq  int
	docs []DayDoc
}

func newMemoryDayCollection() *memoryDayCollection {
	return &memoryDayCollection{}
}

func matchesDriverDay(fields bson.M, driverID string, dayRef time.Time) bool {
	ref, ok := fields["dayRef"].(time.Time)
	if !ok || !ref.Equal(dayRef) {
		return false
	}
	for _, field := range driverIDAliases {
		if v, ok := fields[field].(string); ok && v == driverID {
			return true
		}
	}
	return false
}

func copyFields(fields bson.M) bson.M {
	out := make(bson.M, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func (m *memoryDayCollection) FindForDay(_ context.Context, driverID string, dayRef time.Time) ([]DayDoc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []DayDoc
	for _, doc := range m.docs {
		if matchesDriverDay(doc.Fields, driverID, dayRef) {
			out = append(out, DayDoc{ID: doc.ID, Fields: copyFields(doc.Fields)})
		}
	}
	return out, nil
}

func (m *memoryDayCollection) Insert(_ context.Context, fields bson.M) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := fmt.Sprintf("mem-%d", m.seq)
	m.docs = append(m.docs, DayDoc{ID: id, Fields: copyFields(fields)})
	return id, nil
}

func (m *memoryDayCollection) Update(_ context.Context, id string, fields bson.M) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.docs {
		if m.docs[i].ID == id {
			for k, v := range fields {
				m.docs[i].Fields[k] = v
			}
			return nil
		}
	}
	return fmt.Errorf("memory collection: no document %q", id)
}

func (m *memoryDayCollection) DeleteForDay(_ context.Context, driverID string, dayRef time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []DayDoc
	var deleted int64
	for _, doc := range m.docs {
		if matchesDriverDay(doc.Fields, driverID, dayRef) {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	m.docs = kept
	return deleted, nil
}

func (m *memoryDayCollection) DeleteOthers(_ context.Context, driverID string, dayRef time.Time, keepID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []DayDoc
	var deleted int64
	for _, doc := range m.docs {
		if doc.ID != keepID && matchesDriverDay(doc.Fields, driverID, dayRef) {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	m.docs = kept
	return deleted, nil
}

// Seed inserts a raw document without touching timestamps. Test helper.
func (m *memoryDayCollection) Seed(fields bson.M) string {
	id, _ := m.Insert(context.Background(), fields)
	return id
}

// All returns every stored document in insertion order.
func (m *memoryDayCollection) All() []DayDoc {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]DayDoc, len(m.docs))
	for i, doc := range m.docs {
		out[i] = DayDoc{ID: doc.ID, Fields: copyFields(doc.Fields)}
	}
	return out
}
