package pagebloc

import (
	"context"
	"sync"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Bloc is the pagination state machine: the exclusive owner and only
// writer of a State snapshot. Callers mutate it solely by dispatching
// events; the Bloc fetches pages through its Repository and emits a new
// snapshot on every transition.
//
// Events are queued in a mailbox and handled strictly one at a time, in
// FIFO order, each to completion (including its fetch) before the next
// begins. A slow first-page fetch therefore cannot race a refresh, and no
// staleness guard is needed: results cannot arrive out of order.
//
// An in-flight fetch is never cancelled and has no Bloc-imposed timeout;
// the Repository owns its own timeout policy. A hung fetch leaves the
// Bloc in its loading status and stalls the mailbox until it resolves.
type Bloc[T any] struct {
	id   string
	repo Repository[T]
	cfg  config[T]
	log  zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mailbox chan Event
	done    chan struct{}

	mu      sync.RWMutex
	state   State[T]
	subs    map[int]chan State[T]
	nextSub int
	closed  bool
}

// New creates a Bloc fetching through repo and starts its mailbox.
// The initial snapshot is the default state (initial status, no items,
// page 0). Panics if repo is nil; that is a construction bug, not a
// runtime condition.
//
// Call Close when done to stop the mailbox and release subscribers.
func New[T any](repo Repository[T], opts ...Option[T]) *Bloc[T] {
	if repo == nil {
		panic("pagebloc: nil repository")
	}

	cfg := defaultConfig[T]()
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())

	b := &Bloc[T]{
		id:      uuid.NewString(),
		repo:    repo,
		cfg:     cfg,
		ctx:     ctx,
		cancel:  cancel,
		mailbox: make(chan Event, cfg.mailboxSize),
		done:    make(chan struct{}),
		state:   NewState[T](),
		subs:    make(map[int]chan State[T]),
	}
	b.log = cfg.logger.With().Str("bloc_id", b.id).Logger()

	go b.run()
	return b
}

// ID returns the instance identifier used in logs.
func (b *Bloc[T]) ID() string {
	return b.id
}

// State returns the current snapshot. The returned value, including its
// item slice, must be treated as read-only.
func (b *Bloc[T]) State() State[T] {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Subscribe registers an observer and returns its snapshot channel along
// with a cancel function. The current snapshot is delivered immediately;
// after that, one value arrives per state transition. Consecutive equal
// snapshots are not emitted.
//
// The channel is buffered; an observer that falls behind its buffer misses
// intermediate snapshots but can always read the latest via State. The
// channel is closed by cancel or by Close.
func (b *Bloc[T]) Subscribe() (<-chan State[T], func()) {
	ch := make(chan State[T], b.cfg.subscriberBuffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := b.nextSub
	b.nextSub++
	b.subs[id] = ch
	ch <- b.state
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Dispatch queues an event for processing. Events are handled in dispatch
// order. Dispatch blocks while the mailbox is full.
//
// It fails fast on programmer errors: a nil event returns ErrNilEvent, a
// RemoveItem without exactly one of Item and Match returns
// ErrInvalidRemoveTarget, and dispatching to a closed Bloc returns
// ErrBlocClosed. Rejected events never reach the state machine.
func (b *Bloc[T]) Dispatch(event Event) error {
	if event == nil {
		return ErrNilEvent
	}
	if remove, ok := event.(RemoveItem[T]); ok {
		if (remove.Item == nil) == (remove.Match == nil) {
			return ErrInvalidRemoveTarget
		}
	}

	// Checked before attempting the send: once closed, ctx.Done and a
	// non-full mailbox are both ready and select would pick between them
	// at random, accepting events the exited run loop never drains.
	select {
	case <-b.ctx.Done():
		return ErrBlocClosed
	default:
	}

	select {
	case <-b.ctx.Done():
		return ErrBlocClosed
	case b.mailbox <- event:
		return nil
	}
}

// Close stops the mailbox and closes all subscriber channels. Events still
// queued are discarded. Close blocks until the mailbox goroutine has
// exited and is safe to call more than once.
func (b *Bloc[T]) Close() {
	b.cancel()
	<-b.done
}

// run is the mailbox loop: the single goroutine that owns all state
// transitions.
func (b *Bloc[T]) run() {
	defer close(b.done)
	for {
		select {
		case <-b.ctx.Done():
			b.closeSubscribers()
			return
		case event := <-b.mailbox:
			b.handle(event)
		}
	}
}

// handle processes one event to completion. The switch is exhaustive over
// the event set; extending Event means extending this switch.
func (b *Bloc[T]) handle(event Event) {
	b.cfg.metrics.recordEvent(event.EventName())
	current := b.State()

	switch e := event.(type) {
	case LoadFirstPage:
		b.loadFirstPage(current)
	case LoadMore:
		b.loadMore(current)
	case Refresh:
		b.refresh(current)
	case Reset:
		b.emit(NewState[T]())
	case UpdateItem[T]:
		b.updateItem(current, e)
	case RemoveItem[T]:
		b.removeItem(current, e)
	case AddItem[T]:
		b.addItem(current, e)
	default:
		b.log.Error().
			Str("event", event.EventName()).
			Msg("Unknown event dropped")
	}
}

// loadFirstPage fetches page 1 and replaces the item list wholesale.
// Re-entrant: allowed from any status. On failure, previously loaded items
// are deliberately preserved so a consumer can keep stale content visible
// under an error banner.
func (b *Bloc[T]) loadFirstPage(current State[T]) {
	next := current
	next.Status = StatusFirstPageLoading
	next.Error = ""
	b.emit(next)

	result, err := b.fetch("first_page", 1)
	if err != nil {
		next.Status = StatusFirstPageError
		next.Error = err.Error()
		b.emit(next)
		return
	}

	next.Status = StatusFirstPageSuccess
	next.Items = cloneItems(result.Items)
	next.CurrentPage = 1
	next.HasReachedMax = !result.HasMore
	next.IsFirstLoad = false
	next.TotalItems = result.TotalItems
	next.TotalPages = result.TotalPages
	b.emit(next)
}

// loadMore fetches the page after the current one and appends its items.
// Absorbed without fetching or emitting while HasReachedMax is set or a
// load-more is already in flight. On failure the page counter stays put,
// so dispatching LoadMore again retries the same page.
func (b *Bloc[T]) loadMore(current State[T]) {
	if current.HasReachedMax || current.Status == StatusLoadingMore {
		b.log.Debug().
			Bool("has_reached_max", current.HasReachedMax).
			Str("status", string(current.Status)).
			Msg("Load more absorbed")
		return
	}

	next := current
	next.Status = StatusLoadingMore
	b.emit(next)

	page := current.CurrentPage + 1
	result, err := b.fetch("load_more", page)
	if err != nil {
		next.Status = StatusLoadMoreError
		next.Error = err.Error()
		b.emit(next)
		return
	}

	items := make([]T, 0, len(current.Items)+len(result.Items))
	items = append(items, current.Items...)
	items = append(items, result.Items...)

	next.Status = StatusLoadMoreSuccess
	next.Error = ""
	next.Items = items
	next.CurrentPage = page
	next.HasReachedMax = !result.HasMore
	if result.TotalItems.Valid {
		next.TotalItems = result.TotalItems
	}
	if result.TotalPages.Valid {
		next.TotalPages = result.TotalPages
	}
	b.emit(next)
}

// refresh re-fetches page 1 and replaces the item list wholesale, leaving
// existing items visible while the fetch is in flight. IsFirstLoad is not
// reset. On failure items and page are preserved, same as loadFirstPage.
func (b *Bloc[T]) refresh(current State[T]) {
	next := current
	next.Status = StatusRefreshing
	next.Error = ""
	b.emit(next)

	result, err := b.fetch("refresh", 1)
	if err != nil {
		next.Status = StatusRefreshError
		next.Error = err.Error()
		b.emit(next)
		return
	}

	next.Status = StatusRefreshSuccess
	next.Items = cloneItems(result.Items)
	next.CurrentPage = 1
	next.HasReachedMax = !result.HasMore
	next.TotalItems = result.TotalItems
	next.TotalPages = result.TotalPages
	b.emit(next)
}

// updateItem replaces matched elements in place, order preserved.
// A never-loaded list stays never-loaded.
func (b *Bloc[T]) updateItem(current State[T], e UpdateItem[T]) {
	if current.Items == nil {
		return
	}

	match := e.Match
	if match == nil {
		match = func(existing, updated T) bool {
			return b.cfg.equals(existing, updated)
		}
	}

	items := make([]T, len(current.Items))
	for i, existing := range current.Items {
		if match(existing, e.Item) {
			items[i] = e.Item
		} else {
			items[i] = existing
		}
	}

	next := current
	next.Items = items
	b.emit(next)
}

// removeItem filters out every matched element. Argument validity is
// checked at Dispatch. A never-loaded list stays never-loaded.
func (b *Bloc[T]) removeItem(current State[T], e RemoveItem[T]) {
	if current.Items == nil {
		return
	}

	selected := e.Match
	if selected == nil {
		selected = func(item T) bool {
			return b.cfg.equals(item, *e.Item)
		}
	}

	items := make([]T, 0, len(current.Items))
	for _, item := range current.Items {
		if !selected(item) {
			items = append(items, item)
		}
	}

	next := current
	next.Items = items
	if next.TotalItems.Valid {
		next.TotalItems = null.IntFrom(next.TotalItems.Int - 1)
	}
	b.emit(next)
}

// addItem inserts at the head or appends at the tail. A never-loaded list
// is treated as empty.
func (b *Bloc[T]) addItem(current State[T], e AddItem[T]) {
	items := make([]T, 0, len(current.Items)+1)
	if e.AtStart {
		items = append(items, e.Item)
		items = append(items, current.Items...)
	} else {
		items = append(items, current.Items...)
		items = append(items, e.Item)
	}

	next := current
	next.Items = items
	if next.TotalItems.Valid {
		next.TotalItems = null.IntFrom(next.TotalItems.Int + 1)
	}
	b.emit(next)
}

// fetch calls the repository and records metrics and logs for the attempt.
func (b *Bloc[T]) fetch(operation string, page int) (PageResult[T], error) {
	start := time.Now()
	result, err := b.repo.FetchPage(b.ctx, page, b.cfg.pageSize, b.cfg.filters)
	duration := time.Since(start)

	b.cfg.metrics.observeFetch(operation, duration, err)

	if err != nil {
		b.log.Warn().
			Err(err).
			Str("operation", operation).
			Int("page", page).
			Dur("duration", duration).
			Msg("Page fetch failed")
		return PageResult[T]{}, err
	}

	b.log.Debug().
		Str("operation", operation).
		Int("page", page).
		Int("items", len(result.Items)).
		Bool("has_more", result.HasMore).
		Dur("duration", duration).
		Msg("Page fetch complete")
	return result, nil
}

// emit installs the next snapshot and fans it out to subscribers.
// Snapshots equal to the current one are suppressed.
func (b *Bloc[T]) emit(next State[T]) {
	b.mu.Lock()
	if b.state.Equal(next) {
		b.mu.Unlock()
		return
	}
	b.state = next
	subscribers := make([]chan State[T], 0, len(b.subs))
	for _, sub := range b.subs {
		subscribers = append(subscribers, sub)
	}
	b.mu.Unlock()

	b.log.Debug().
		Str("status", string(next.Status)).
		Int("page", next.CurrentPage).
		Int("items", len(next.Items)).
		Bool("has_reached_max", next.HasReachedMax).
		Msg("State transition")

	for _, sub := range subscribers {
		select {
		case sub <- next:
		default:
			b.log.Warn().Msg("Subscriber lagging, snapshot dropped")
		}
	}
}

// closeSubscribers marks the Bloc closed and releases all observers.
func (b *Bloc[T]) closeSubscribers() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub)
	}
}

// cloneItems copies a page payload into a fresh, never-nil slice so the
// snapshot owns its backing array. A successful fetch always resolves the
// list, even when it resolved to empty.
func cloneItems[T any](items []T) []T {
	cloned := make([]T, len(items))
	copy(cloned, items)
	return cloned
}
