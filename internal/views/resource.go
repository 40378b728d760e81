package views

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"github.com/pders01/neuronest/internal/api"
)

// ErrBusy is returned when an operation is started while the same one is outstanding
var ErrBusy = errors.New("request already in progress")

// Resource is a fetched, read-only value with loading and error state
type Resource[T any] struct {
	fetch func(ctx context.Context) (T, error)

	mu      sync.Mutex
	data    T
	loaded  bool
	loading bool
	err     error
}

// NewResource creates a resource backed by fetch
func NewResource[T any](fetch func(ctx context.Context) (T, error)) *Resource[T] {
	return &Resource[T]{fetch: fetch}
}

// Load runs the fetch. While it is running Err is nil.
func (r *Resource[T]) Load(ctx context.Context) error {
	r.mu.Lock()
	if r.loading {
		r.mu.Unlock()
		return ErrBusy
	}
	r.loading = true
	r.err = nil
	r.mu.Unlock()

	data, err := r.fetch(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false
	if err != nil {
		r.err = err
		return err
	}
	r.data = data
	r.loaded = true
	return nil
}

// Retry re-runs the same fetch
func (r *Resource[T]) Retry(ctx context.Context) error {
	return r.Load(ctx)
}

// Data returns the last successfully fetched value
func (r *Resource[T]) Data() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data
}

// isLoading reports an outstanding fetch
func (r *Resource[T]) isLoading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Err returns the last fetch error, suppressed while loading
func (r *Resource[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loading {
		return nil
	}
	return r.err
}

// ErrMessage is Err rendered for display
func (r *Resource[T]) ErrMessage() string {
	return api.Message(r.Err())
}

// Empty reports a successful fetch that returned nothing
func (r *Resource[T]) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		return false
	}
	v := reflect.ValueOf(r.data)
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Pointer:
		return v.IsNil()
	default:
		return false
	}
}
