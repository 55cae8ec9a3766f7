// Package statetest builds in-memory league contexts for engine tests. The
// backend keeps flushed batches in a map, so tests can exercise flush paths
// without a database.
package statetest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/mcdev12/courtside/internal/cache"
	"github.com/mcdev12/courtside/internal/lock"
	"github.com/mcdev12/courtside/internal/random"
	"github.com/mcdev12/courtside/internal/state"
	"github.com/mcdev12/courtside/internal/store"
)

// Backend is an in-memory store.Backend substitute.
type Backend struct {
	Objects map[string][]byte // "collection/key" -> data
}

// NewBackend returns an empty in-memory backend.
func NewBackend() *Backend {
	return &Backend{Objects: map[string][]byte{}}
}

func (b *Backend) LoadCollection(_ context.Context, _ uuid.UUID, collection string) ([]store.Record, error) {
	var recs []store.Record
	prefix := collection + "/"
	for k, data := range b.Objects {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			recs = append(recs, store.Record{Key: k[len(prefix):], Data: data})
		}
	}
	return recs, nil
}

func (b *Backend) ApplyBatch(_ context.Context, _ uuid.UUID, batch store.Batch) error {
	for _, p := range batch.Puts {
		b.Objects[p.Collection+"/"+p.Key] = p.Data
	}
	for _, d := range batch.Deletes {
		delete(b.Objects, d.Collection+"/"+d.Key)
	}
	return nil
}

// Meta is an in-memory state.MetaStore substitute.
type Meta struct {
	Ints map[string]int
}

func (m *Meta) MetaAttributeInt(_ context.Context, key string) (int, error) {
	return m.Ints[key], nil
}

func (m *Meta) SetMetaAttributeInt(_ context.Context, key string, v int) error {
	if m.Ints == nil {
		m.Ints = map[string]int{}
	}
	m.Ints[key] = v
	return nil
}

// NewLeague returns a league context over an empty in-memory cache, seeded
// deterministically.
func NewLeague(t *testing.T, seed int64) *state.League {
	t.Helper()
	id := uuid.New()
	c := cache.New(id, NewBackend(), clockwork.NewFakeClock(), zerolog.Nop())
	ls := state.NewLeague(id, c, lock.NewRegistry(), random.NewSource(seed), zerolog.Nop())
	ls.Meta = &Meta{Ints: map[string]int{}}
	return ls
}
