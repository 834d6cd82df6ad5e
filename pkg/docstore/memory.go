package docstore

import (
	"context"
	"encoding/json"
	"reflect"
	"sync"
)

// MemoryStore is an in-process Store used by tests. Documents are kept
// JSON-normalized so value types match what a real backend returns after a
// round-trip.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]map[string]any)}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, collection, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return &Document{ID: id, Fields: deepCopy(fields)}, nil
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(collection, id, fields)
	return nil
}

// Update implements Store.
func (s *MemoryStore) Update(_ context.Context, collection, id string, updates FieldUpdates) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(collection, id, updates)
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections[collection], id)
	return nil
}

// Query implements Store with top-level field equality.
func (s *MemoryStore) Query(_ context.Context, collection, field string, value any) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := normalize(value)
	var out []Document
	for id, fields := range s.collections[collection] {
		if reflect.DeepEqual(fields[field], want) {
			out = append(out, Document{ID: id, Fields: deepCopy(fields)})
		}
	}
	return out, nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Document
	for id, fields := range s.collections[collection] {
		out = append(out, Document{ID: id, Fields: deepCopy(fields)})
	}
	return out, nil
}

// CommitBatch implements Store. Writes are applied in order to staged copies
// of the touched documents; the store itself is only mutated once every write
// has succeeded, so a failing batch leaves no partial state. Later writes in
// a batch observe the effects of earlier ones.
func (s *MemoryStore) CommitBatch(_ context.Context, writes []Write) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	type docKey struct{ collection, id string }
	staged := make(map[docKey]map[string]any) // nil value marks a deletion
	for _, w := range writes {
		k := docKey{w.Collection, w.ID}
		switch w.Op {
		case OpSet:
			staged[k] = deepCopy(w.Fields)
		case OpUpdate:
			fields, ok := staged[k]
			if !ok {
				current, exists := s.collections[k.collection][k.id]
				if !exists {
					return ErrNotFound
				}
				fields = deepCopy(current)
			}
			if fields == nil { // deleted earlier in this batch
				return ErrNotFound
			}
			if err := ApplyUpdates(fields, normalizeUpdates(w.Updates)); err != nil {
				return err
			}
			staged[k] = fields
		case OpDelete:
			staged[k] = nil
		}
	}
	for k, fields := range staged {
		if fields == nil {
			delete(s.collections[k.collection], k.id)
			continue
		}
		s.set(k.collection, k.id, fields)
	}
	return nil
}

// Ping implements Store.
func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) set(collection, id string, fields map[string]any) {
	coll, ok := s.collections[collection]
	if !ok {
		coll = make(map[string]map[string]any)
		s.collections[collection] = coll
	}
	coll[id] = deepCopy(fields)
}

func (s *MemoryStore) update(collection, id string, updates FieldUpdates) error {
	fields, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	return ApplyUpdates(fields, normalizeUpdates(updates))
}

func normalizeUpdates(updates FieldUpdates) FieldUpdates {
	normalized := make(FieldUpdates, len(updates))
	for path, value := range updates {
		if union, ok := value.(ArrayUnion); ok {
			values, _ := normalize(union.Values).([]any)
			normalized[path] = ArrayUnion{Values: values}
			continue
		}
		normalized[path] = normalize(value)
	}
	return normalized
}

func deepCopy(fields map[string]any) map[string]any {
	return normalize(fields).(map[string]any)
}

// normalize round-trips a value through JSON so stored types match what a
// real document backend hands back (float64 numbers, []any arrays).
func normalize(value any) any {
	raw, err := json.Marshal(value)
	if err != nil {
		return value
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return value
	}
	return out
}
