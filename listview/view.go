package listview

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/linesmerrill/lifeline-api/feed"
	"github.com/linesmerrill/lifeline-api/filter"
)

var (
	// ErrDeclined is returned when the user does not confirm a destructive
	// action. No notification is raised for it.
	ErrDeclined = errors.New("action declined")
	// ErrBusy is returned when an action is started while another one on the
	// same view is still submitting.
	ErrBusy = errors.New("another action is in progress")
	// ErrClosed is returned for actions on a closed view.
	ErrClosed = errors.New("view closed")
)

// Validator checks a draft before anything is sent to the store
type Validator interface {
	Validate() error
}

// Config describes one resource for a View
type Config[T any] struct {
	// Table is the change feed table the view follows.
	Table string
	// Fetch loads the whole collection, newest first.
	Fetch func(ctx context.Context) ([]T, error)
	// Key returns the record id.
	Key func(T) string
	// Match is the local filter predicate.
	Match func(T, filter.Criteria) bool
	// Decode turns a change document into a record. Defaults to bson.
	Decode func(feed.Change) (T, error)

	Messages Messages
	Notifier Notifier

	// Patch applies feed changes to the collection by id instead of
	// refetching everything.
	Patch bool
	// RefetchOnSuccess refetches after a successful create or update,
	// for stores without a change feed.
	RefetchOnSuccess bool
	// OnChange is called after the collection was replaced or patched.
	OnChange func()
}

// View is the live, filtered collection of one page
type View[T any] struct {
	cfg Config[T]

	mu     sync.RWMutex
	items  []T
	loaded bool

	gen        atomic.Uint64
	closed     atomic.Bool
	loading    atomic.Bool
	submitting atomic.Bool

	sub *feed.Subscription
}

// New creates a view. Nothing is fetched until Refresh is called.
func New[T any](cfg Config[T]) *View[T] {
	cfg.Messages = cfg.Messages.withDefaults()
	if cfg.Notifier == nil {
		cfg.Notifier = NotifierFunc(func(Notification) {})
	}
	if cfg.Match == nil {
		cfg.Match = func(T, filter.Criteria) bool { return true }
	}
	if cfg.Decode == nil {
		cfg.Decode = func(c feed.Change) (T, error) {
			var t T
			err := c.Decode(&t)
			return t, err
		}
	}
	return &View[T]{cfg: cfg}
}

// Subscribe follows every change on the view's table until Close.
func (v *View[T]) Subscribe(b *feed.Broker, channel string) {
	v.sub = b.Subscribe(channel, v.cfg.Table, feed.OpAll, v.apply)
}

// Refresh fetches the whole collection. On failure the previous collection
// is kept and a destructive notification is raised.
func (v *View[T]) Refresh(ctx context.Context) error {
	if v.closed.Load() {
		return ErrClosed
	}
	gen := v.gen.Add(1)
	v.loading.Store(true)

	items, err := v.cfg.Fetch(ctx)

	v.mu.Lock()
	if v.closed.Load() || gen != v.gen.Load() {
		v.mu.Unlock()
		zap.S().Debugw("dropping superseded fetch", "table", v.cfg.Table, "generation", gen)
		return nil
	}
	v.loading.Store(false)
	if err != nil {
		v.mu.Unlock()
		zap.S().With(err).Errorw("failed to fetch collection", "table", v.cfg.Table)
		v.cfg.Notifier.Notify(failure(v.cfg.Messages.FetchFailed))
		return err
	}
	v.items = items
	v.loaded = true
	v.mu.Unlock()

	v.changed()
	return nil
}

// Items returns the records matching c, in collection order.
func (v *View[T]) Items(c filter.Criteria) []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return filter.Apply(v.items, c, v.cfg.Match)
}

// Get returns the record with the given id from the collection.
func (v *View[T]) Get(id string) (T, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, item := range v.items {
		if v.cfg.Key(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Loaded reports whether a fetch has succeeded yet
func (v *View[T]) Loaded() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loaded
}

// Loading reports whether a fetch is in flight
func (v *View[T]) Loading() bool {
	return v.loading.Load()
}

// Submitting reports whether an action is in flight
func (v *View[T]) Submitting() bool {
	return v.submitting.Load()
}

// Create validates draft and, only when it is complete, runs insert.
func (v *View[T]) Create(ctx context.Context, draft Validator, insert func(context.Context) error) error {
	if err := draft.Validate(); err != nil {
		v.cfg.Notifier.Notify(failure(v.cfg.Messages.Invalid))
		return err
	}
	return v.submit(ctx, insert, v.cfg.Messages.Created, v.cfg.Messages.CreateFailed, v.cfg.RefetchOnSuccess)
}

// Update runs update and reports done on success.
func (v *View[T]) Update(ctx context.Context, done string, update func(context.Context) error) error {
	return v.submit(ctx, update, done, v.cfg.Messages.UpdateFailed, v.cfg.RefetchOnSuccess)
}

// Remove asks confirm first and runs del only when it returns true. The
// collection is refetched after a successful delete.
func (v *View[T]) Remove(ctx context.Context, confirm func(prompt string) bool, del func(context.Context) error) error {
	if confirm == nil || !confirm(v.cfg.Messages.ConfirmDelete) {
		return ErrDeclined
	}
	return v.submit(ctx, del, v.cfg.Messages.Deleted, v.cfg.Messages.DeleteFailed, true)
}

// Notify raises n on the view's notifier
func (v *View[T]) Notify(n Notification) {
	v.cfg.Notifier.Notify(n)
}

// Close drops any in-flight fetch and stops following the feed.
func (v *View[T]) Close() {
	if v.closed.Swap(true) {
		return
	}
	v.gen.Add(1)
	if v.sub != nil {
		v.sub.Unsubscribe()
	}
}

func (v *View[T]) submit(ctx context.Context, op func(context.Context) error, ok, failed string, refetch bool) error {
	if v.closed.Load() {
		return ErrClosed
	}
	if !v.submitting.CompareAndSwap(false, true) {
		return ErrBusy
	}
	err := op(ctx)
	v.submitting.Store(false)

	if err != nil {
		zap.S().With(err).Errorw(failed, "table", v.cfg.Table)
		v.cfg.Notifier.Notify(failure(failed))
		return err
	}
	v.cfg.Notifier.Notify(success(ok))
	if refetch {
		_ = v.Refresh(ctx)
	}
	return nil
}

func (v *View[T]) apply(c feed.Change) {
	if v.closed.Load() {
		return
	}
	if !v.cfg.Patch || c.Resync() || v.loading.Load() || !v.Loaded() {
		_ = v.Refresh(context.Background())
		return
	}

	switch c.Op {
	case feed.OpDelete:
		v.mu.Lock()
		v.items = v.without(c.ID)
		v.mu.Unlock()
	case feed.OpInsert, feed.OpUpdate:
		item, err := v.cfg.Decode(c)
		if err != nil {
			zap.S().With(err).Debugw("change without usable document, refetching", "table", v.cfg.Table, "id", c.ID)
			_ = v.Refresh(context.Background())
			return
		}
		v.mu.Lock()
		v.items = v.upsert(item)
		v.mu.Unlock()
	default:
		_ = v.Refresh(context.Background())
		return
	}
	v.changed()
}

// upsert replaces the record in place, or puts a new one first since the
// collection is ordered newest first. Callers hold mu.
func (v *View[T]) upsert(item T) []T {
	id := v.cfg.Key(item)
	for i := range v.items {
		if v.cfg.Key(v.items[i]) == id {
			out := append([]T(nil), v.items...)
			out[i] = item
			return out
		}
	}
	return append([]T{item}, v.items...)
}

// without returns the collection minus id. Callers hold mu.
func (v *View[T]) without(id string) []T {
	out := make([]T, 0, len(v.items))
	for _, item := range v.items {
		if v.cfg.Key(item) != id {
			out = append(out, item)
		}
	}
	return out
}

func (v *View[T]) changed() {
	if v.cfg.OnChange != nil && !v.closed.Load() {
		v.cfg.OnChange()
	}
}
