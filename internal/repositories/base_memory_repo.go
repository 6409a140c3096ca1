package repositories

import (
	"context"
	"sync"

	"github.com/poofware/listing-browser/internal/utils"
)

/*
Entity:

* `comparable` → lets us compare against the zero value of T (nil pointers)
* GetID → the identity every collection is keyed on
* Clone → the deep copy handed across the repository boundary
*/
type Entity[T any] interface {
	comparable
	GetID() string
	Clone() T
}

/*
BaseMemoryRepo holds one ordered, in-memory collection of T. Every method
runs under the repo's mutex, so a read-modify-write is atomic with respect
to every other call. Values never cross the boundary by reference: inserts
store a clone and reads return clones.

	• Insert(ctx, v) (T, error)
	• GetByID(ctx, id) (T, error)
	• List / Find / Any
	• Update(ctx, id, mutate) (T, error)
	• Delete(ctx, id) error
	• WithLock(fn) for compound operations
*/
type BaseMemoryRepo[T Entity[T]] struct {
	kind  string
	mu    sync.RWMutex
	items []T
}

// NewBaseMemoryRepo is called by concrete repositories. kind names the entity
// in not-found errors.
func NewBaseMemoryRepo[T Entity[T]](kind string) *BaseMemoryRepo[T] {
	return &BaseMemoryRepo[T]{kind: kind}
}

// -------------------------- public helpers --------------------------

func (b *BaseMemoryRepo[T]) Insert(_ context.Context, v T) (T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored := v.Clone()
	b.items = append(b.items, stored)
	return stored.Clone(), nil
}

func (b *BaseMemoryRepo[T]) GetByID(_ context.Context, id string) (T, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if i := b.indexOf(id); i >= 0 {
		return b.items[i].Clone(), nil
	}
	var zero T
	return zero, utils.NotFound(b.kind, id)
}

// List returns every item in insertion order.
func (b *BaseMemoryRepo[T]) List(ctx context.Context) ([]T, error) {
	return b.Find(ctx, nil)
}

// Find returns the items matching keep, in insertion order. A nil keep
// matches everything.
func (b *BaseMemoryRepo[T]) Find(_ context.Context, keep func(T) bool) ([]T, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]T, 0, len(b.items))
	for _, item := range b.items {
		if keep == nil || keep(item) {
			out = append(out, item.Clone())
		}
	}
	return out, nil
}

func (b *BaseMemoryRepo[T]) Any(_ context.Context, match func(T) bool) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, item := range b.items {
		if match(item) {
			return true, nil
		}
	}
	return false, nil
}

// Update runs mutate against a working copy of the item and stores the copy
// only if mutate succeeds.
func (b *BaseMemoryRepo[T]) Update(_ context.Context, id string, mutate func(T) error) (T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var zero T
	i := b.indexOf(id)
	if i < 0 {
		return zero, utils.NotFound(b.kind, id)
	}

	working := b.items[i].Clone()
	if err := mutate(working); err != nil {
		return zero, err
	}
	b.items[i] = working
	return working.Clone(), nil
}

func (b *BaseMemoryRepo[T]) Delete(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return utils.NotFound(b.kind, id)
	}
	b.items = append(b.items[:i], b.items[i+1:]...)
	return nil
}

// WithLock hands fn the live collection under the write lock. fn may reorder,
// grow or shrink the slice; whatever it leaves behind becomes the collection.
// Concrete repositories use it for compound operations that must not
// interleave with anything else.
func (b *BaseMemoryRepo[T]) WithLock(fn func(items []T) []T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = fn(b.items)
}

func (b *BaseMemoryRepo[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

// -------------------------- internals --------------------------

func (b *BaseMemoryRepo[T]) indexOf(id string) int {
	for i, item := range b.items {
		if item.GetID() == id {
			return i
		}
	}
	return -1
}
