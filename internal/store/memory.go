package store

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// MemoryDatabase keeps documents in process. It backs the test suites and the
// "memory" store driver used for local development.
type MemoryDatabase struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
	unique      map[string][][]string
}

func NewMemory() *MemoryDatabase {
	return &MemoryDatabase{
		collections: make(map[string]*memoryCollection),
		unique:      make(map[string][][]string),
	}
}

func (m *MemoryDatabase) Collection(name string) Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.collection(name)
}

func (m *MemoryDatabase) collection(name string) *memoryCollection {
	c, ok := m.collections[name]
	if !ok {
		c = &memoryCollection{db: m, name: name, docs: make(map[string]bson.Raw)}
		m.collections[name] = c
	}
	return c
}

// EnsureIndexes only records unique constraints; lookups are linear.
func (m *MemoryDatabase) EnsureIndexes(ctx context.Context, indexes []Index) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, idx := range indexes {
		m.collection(idx.Collection)
		if idx.Unique {
			m.unique[idx.Collection] = append(m.unique[idx.Collection], idx.Fields)
		}
	}
	return nil
}

func (m *MemoryDatabase) Ping(ctx context.Context) error { return nil }

func (m *MemoryDatabase) Close(ctx context.Context) error { return nil }

type memoryCollection struct {
	db    *MemoryDatabase
	name  string
	docs  map[string]bson.Raw
	order []string
}

func (c *memoryCollection) Insert(ctx context.Context, id string, doc any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	if _, exists := c.docs[id]; exists {
		return ErrDuplicate
	}
	if c.violatesUnique(id, raw) {
		return ErrDuplicate
	}
	c.docs[id] = raw
	c.order = append(c.order, id)
	return nil
}

func (c *memoryCollection) Replace(ctx context.Context, id string, doc any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	if _, exists := c.docs[id]; !exists {
		return ErrNotFound
	}
	if c.violatesUnique(id, raw) {
		return ErrDuplicate
	}
	c.docs[id] = raw
	return nil
}

func (c *memoryCollection) Delete(ctx context.Context, id string) error {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	if _, exists := c.docs[id]; !exists {
		return ErrNotFound
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *memoryCollection) Get(ctx context.Context, id string, out any) error {
	c.db.mu.RLock()
	raw, ok := c.docs[id]
	c.db.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	return bson.Unmarshal(raw, out)
}

func (c *memoryCollection) Find(ctx context.Context, filter Filter) (Cursor, error) {
	matched, err := c.match(filter)
	if err != nil {
		return nil, err
	}
	return &memoryCursor{docs: matched, pos: -1}, nil
}

func (c *memoryCollection) Count(ctx context.Context, filter Filter) (int64, error) {
	matched, err := c.match(filter)
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

func (c *memoryCollection) match(filter Filter) ([]bson.Raw, error) {
	type wanted struct {
		key   string
		value bson.RawValue
	}
	conds := make([]wanted, 0, len(filter))
	for k, v := range filter {
		t, data, err := bson.MarshalValue(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode filter field %s: %w", k, err)
		}
		conds = append(conds, wanted{key: k, value: bson.RawValue{Type: t, Value: data}})
	}

	c.db.mu.RLock()
	defer c.db.mu.RUnlock()

	out := make([]bson.Raw, 0)
	for _, id := range c.order {
		raw := c.docs[id]
		ok := true
		for _, cond := range conds {
			got, err := raw.LookupErr(cond.key)
			if err != nil || got.Type != cond.value.Type || !bytes.Equal(got.Value, cond.value.Value) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, raw)
		}
	}
	return out, nil
}

// violatesUnique must be called with the write lock held.
func (c *memoryCollection) violatesUnique(id string, raw bson.Raw) bool {
	for _, fields := range c.db.unique[c.name] {
		key, ok := uniqueKey(raw, fields)
		if !ok {
			continue
		}
		for otherID, other := range c.docs {
			if otherID == id {
				continue
			}
			if otherKey, ok := uniqueKey(other, fields); ok && otherKey == key {
				return true
			}
		}
	}
	return false
}

func uniqueKey(raw bson.Raw, fields []string) (string, bool) {
	var b strings.Builder
	for _, f := range fields {
		v, err := raw.LookupErr(f)
		if err != nil {
			return "", false
		}
		b.WriteByte(byte(v.Type))
		b.Write(v.Value)
		b.WriteByte(0)
	}
	return b.String(), true
}

type memoryCursor struct {
	docs []bson.Raw
	pos  int
}

func (c *memoryCursor) Next(ctx context.Context) bool {
	if c.pos+1 >= len(c.docs) {
		return false
	}
	c.pos++
	return true
}

func (c *memoryCursor) Decode(v any) error {
	if c.pos < 0 || c.pos >= len(c.docs) {
		return ErrNotFound
	}
	return bson.Unmarshal(c.docs[c.pos], v)
}

func (c *memoryCursor) Err() error { return nil }

func (c *memoryCursor) Close(ctx context.Context) error { return nil }
