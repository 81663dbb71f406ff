package app

import "errors"

var (
	// ErrNoSeats refuses the transition into payment (and boarding)
	// when the selected vehicle is full.
	ErrNoSeats = errors.New("no seats available")

	// ErrBadTransition reports an event fired from a screen it is not
	// defined for.
	ErrBadTransition = errors.New("event not valid for current screen")

	// ErrUnknownVehicle reports a selection of a vehicle ID outside the
	// fleet.
	ErrUnknownVehicle = errors.New("unknown vehicle")
)
