package system

import (
	"github.com/voidrift/simcore/internal/core/event"
	coresys "github.com/voidrift/simcore/internal/core/system"
	"github.com/voidrift/simcore/internal/frame"
)

// EventSystem delivers the events emitted during the previous tick.
// Phase 0 (Input).
type EventSystem struct {
	bus *event.Bus
}

func NewEventSystem(bus *event.Bus) *EventSystem {
	return &EventSystem{bus: bus}
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *EventSystem) Update(_ *frame.Frame) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
