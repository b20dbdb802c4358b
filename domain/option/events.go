package option

import (
	"github.com/x-xyz/gomarket/domain"
)

// Event is emitted by the engine with the option as it is after the event
type Event interface {
	Snapshot() *View
}

type MintedEvent struct {
	Id     uint64         `json:"id"`
	Writer domain.Address `json:"writer"`
	Option *Option        `json:"option"`
}

type ExercisedEvent struct {
	Id     uint64         `json:"id"`
	Owner  domain.Address `json:"owner"`
	Option *Option        `json:"option"`
}

type BurnedEvent struct {
	Id     uint64         `json:"id"`
	Caller domain.Address `json:"caller"`
	Option *Option        `json:"option"`
}

func (e MintedEvent) Snapshot() *View {
	return &View{Option: e.Option, State: StateActive, Owner: e.Writer}
}

func (e ExercisedEvent) Snapshot() *View {
	return &View{Option: e.Option, State: StateBurned}
}

func (e BurnedEvent) Snapshot() *View {
	return &View{Option: e.Option, State: StateBurned}
}
