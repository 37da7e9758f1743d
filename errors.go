package pagebloc

import (
	"github.com/friendsofgo/errors"
)

// Programmer errors surfaced by Dispatch. These are invalid invocations,
// not runtime states: they are returned immediately and never reach the
// state machine.
var (
	// ErrBlocClosed is returned when dispatching to a closed Bloc.
	ErrBlocClosed = errors.New("pagebloc: bloc is closed")

	// ErrNilEvent is returned when dispatching a nil event.
	ErrNilEvent = errors.New("pagebloc: nil event")

	// ErrInvalidRemoveTarget is returned when a RemoveItem event does not
	// carry exactly one of Item and Match.
	ErrInvalidRemoveTarget = errors.New("pagebloc: remove requires exactly one of Item or Match")
)
