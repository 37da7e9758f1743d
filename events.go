package pagebloc

// Event is the closed set of operations a Bloc can be asked to perform.
// The concrete types below are the only implementations; the Bloc
// dispatches them through an exhaustive type switch, so adding a variant
// means extending that switch.
type Event interface {
	// EventName returns a stable identifier used in logs and metrics.
	EventName() string
}

// LoadFirstPage requests the first page. It is always allowed, including
// while another fetch is in flight or after a previous failure; it clears
// any prior error and replaces the item list wholesale on success.
type LoadFirstPage struct{}

// EventName implements Event.
func (LoadFirstPage) EventName() string { return "load_first_page" }

// LoadMore requests the page after the current one and appends its items.
// It is guarded: while HasReachedMax is set or a load-more is already in
// flight the event is absorbed without fetching or emitting.
type LoadMore struct{}

// EventName implements Event.
func (LoadMore) EventName() string { return "load_more" }

// Refresh re-fetches page 1 and replaces the item list wholesale on
// success. Existing items stay visible while the fetch is in flight, so a
// consumer can keep stale content on screen. Unlike LoadFirstPage it does
// not reset IsFirstLoad.
type Refresh struct{}

// EventName implements Event.
func (Refresh) EventName() string { return "refresh" }

// Reset synchronously replaces the state with the construction-time
// default snapshot. No fetch is issued.
type Reset struct{}

// EventName implements Event.
func (Reset) EventName() string { return "reset" }

// UpdateItem replaces every element matched by Match with Item, preserving
// order. When Match is nil the Bloc's equality function decides, comparing
// each existing element against Item. A no-op when the list has never
// loaded. Status, page, and totals are untouched.
type UpdateItem[T any] struct {
	Item  T
	Match MatchFunc[T]
}

// EventName implements Event.
func (UpdateItem[T]) EventName() string { return "update_item" }

// RemoveItem removes every element selected by Match, or every element
// equal to *Item when Match is nil. Exactly one of Item and Match must be
// set; Dispatch rejects the event with ErrInvalidRemoveTarget otherwise.
//
// TotalItems, when known, is decremented by one regardless of how many
// elements actually matched; keeping the count honest for multi-matches is
// the caller's responsibility.
type RemoveItem[T any] struct {
	Item  *T
	Match PredicateFunc[T]
}

// EventName implements Event.
func (RemoveItem[T]) EventName() string { return "remove_item" }

// AddItem inserts Item at the head of the list when AtStart is set,
// otherwise appends it. TotalItems, when known, is incremented by one.
// A never-loaded list is treated as empty, so the result is a one-element
// list.
type AddItem[T any] struct {
	Item    T
	AtStart bool
}

// EventName implements Event.
func (AddItem[T]) EventName() string { return "add_item" }
