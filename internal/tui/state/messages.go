package state

import (
	"time"

	"github.com/cristianoliveira/alertdeck/internal/engine"
)

// StateMsg carries a new engine snapshot into the model.
type StateMsg struct {
	State engine.State
}

type updatesClosedMsg struct{}

type tickMsg time.Time

type clearStatusMsg struct {
	at time.Time
}

type actionDoneMsg struct {
	label string
	title string
	err   error
}
