package cache

import (
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/exp/slices"

	"github.com/mcdev12/courtside/internal/store"
)

// Table is one collection's in-memory state: rows keyed by primary key, a
// dirty set of pending upserts, and a deleted set of pending deletions. Rows
// are pointers; after mutating a row in place, callers must Put it back so
// the dirty set and any secondary index stay correct.
type Table[E any] struct {
	name  string
	pk    func(*E) int
	setPK func(*E, int)
	index func(*E) int // optional secondary index

	rows    map[int]*E
	indexed map[int]map[int]struct{} // index value -> set of pks
	indexOf map[int]int              // pk -> index value recorded at Put time
	dirty   map[int]struct{}
	deleted map[int]struct{}
	nextKey int
}

// NewTable builds a table. setPK may be nil for collections whose keys are
// always assigned by the caller (e.g. negotiations keyed by player ID).
func NewTable[E any](name string, pk func(*E) int, setPK func(*E, int)) *Table[E] {
	return &Table[E]{
		name:    name,
		pk:      pk,
		setPK:   setPK,
		rows:    make(map[int]*E),
		dirty:   make(map[int]struct{}),
		deleted: make(map[int]struct{}),
	}
}

// WithIndex adds a secondary index over an integer field.
func (t *Table[E]) WithIndex(fn func(*E) int) *Table[E] {
	t.index = fn
	t.indexed = make(map[int]map[int]struct{})
	t.indexOf = make(map[int]int)
	return t
}

// Get returns the row with the given primary key.
func (t *Table[E]) Get(key int) (*E, bool) {
	e, ok := t.rows[key]
	return e, ok
}

// All returns every row ordered by primary key.
func (t *Table[E]) All() []*E {
	keys := make([]int, 0, len(t.rows))
	for k := range t.rows {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]*E, len(keys))
	for i, k := range keys {
		out[i] = t.rows[k]
	}
	return out
}

// Find returns every row matching pred, ordered by primary key.
func (t *Table[E]) Find(pred func(*E) bool) []*E {
	var out []*E
	for _, e := range t.All() {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// ByIndex returns every row whose indexed value equals v, ordered by primary
// key. Lookups always reflect the latest Put, never a stale durable snapshot.
func (t *Table[E]) ByIndex(v int) []*E {
	if t.index == nil {
		return nil
	}
	keys := make([]int, 0, len(t.indexed[v]))
	for k := range t.indexed[v] {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]*E, len(keys))
	for i, k := range keys {
		out[i] = t.rows[k]
	}
	return out
}

// Len returns the number of rows.
func (t *Table[E]) Len() int { return len(t.rows) }

// Put upserts a row under its primary key and marks it for the next flush.
func (t *Table[E]) Put(e *E) {
	key := t.pk(e)
	t.unindex(key)
	t.rows[key] = e
	t.dirty[key] = struct{}{}
	delete(t.deleted, key)
	t.reindex(key, e)
	if key >= t.nextKey {
		t.nextKey = key + 1
	}
}

// Add assigns the next auto-increment primary key to the row, stores it, and
// returns the key.
func (t *Table[E]) Add(e *E) int {
	if t.setPK == nil {
		panic(fmt.Sprintf("cache: table %s has no auto-increment key", t.name))
	}
	key := t.nextKey
	t.setPK(e, key)
	t.Put(e)
	return key
}

// Delete removes a row and marks the deletion for the next flush.
func (t *Table[E]) Delete(key int) {
	if _, ok := t.rows[key]; ok {
		t.unindex(key)
		delete(t.rows, key)
	}
	delete(t.dirty, key)
	t.deleted[key] = struct{}{}
}

func (t *Table[E]) reindex(key int, e *E) {
	if t.index == nil {
		return
	}
	v := t.index(e)
	if t.indexed[v] == nil {
		t.indexed[v] = make(map[int]struct{})
	}
	t.indexed[v][key] = struct{}{}
	t.indexOf[key] = v
}

// unindex removes the key from the index bucket it was recorded under. The
// value must come from indexOf, not the row: rows are mutated in place before
// Put, so re-deriving the value from the row would miss the old bucket.
func (t *Table[E]) unindex(key int) {
	if t.index == nil {
		return
	}
	if v, ok := t.indexOf[key]; ok {
		delete(t.indexed[v], key)
		if len(t.indexed[v]) == 0 {
			delete(t.indexed, v)
		}
		delete(t.indexOf, key)
	}
}

// collection and the flushable methods below are the untyped surface the
// cache core uses to fill and flush tables uniformly.

func (t *Table[E]) collection() string { return t.name }

func (t *Table[E]) load(recs []store.Record) error {
	t.reset()
	for _, r := range recs {
		e := new(E)
		if err := json.Unmarshal(r.Data, e); err != nil {
			return fmt.Errorf("decode %s/%s: %w", t.name, r.Key, err)
		}
		key := t.pk(e)
		t.rows[key] = e
		t.reindex(key, e)
		if key >= t.nextKey {
			t.nextKey = key + 1
		}
	}
	return nil
}

func (t *Table[E]) collect(batch *store.Batch) error {
	for key := range t.dirty {
		data, err := json.Marshal(t.rows[key])
		if err != nil {
			return fmt.Errorf("encode %s/%d: %w", t.name, key, err)
		}
		batch.Puts = append(batch.Puts, store.Put{
			Collection: t.name,
			Key:        strconv.Itoa(key),
			Data:       data,
		})
	}
	for key := range t.deleted {
		batch.Deletes = append(batch.Deletes, store.Delete{
			Collection: t.name,
			Key:        strconv.Itoa(key),
		})
	}
	return nil
}

func (t *Table[E]) clearPending() {
	t.dirty = make(map[int]struct{})
	t.deleted = make(map[int]struct{})
}

func (t *Table[E]) pending() int { return len(t.dirty) + len(t.deleted) }

func (t *Table[E]) reset() {
	t.rows = make(map[int]*E)
	t.indexed = nil
	t.indexOf = nil
	if t.index != nil {
		t.indexed = make(map[int]map[int]struct{})
		t.indexOf = make(map[int]int)
	}
	t.dirty = make(map[int]struct{})
	t.deleted = make(map[int]struct{})
	t.nextKey = 0
}
