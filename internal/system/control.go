package system

import (
	coresys "github.com/voidrift/simcore/internal/core/system"
	"github.com/voidrift/simcore/internal/frame"
)

// Controller is the per-tick client callback. It may check entities out of
// the scene but must return them before it does.
type Controller interface {
	Control(f *frame.Frame)
}

// ControlSystem runs the client callback. Phase 1 (PreUpdate).
type ControlSystem struct {
	ctl Controller
}

func NewControlSystem(ctl Controller) *ControlSystem {
	return &ControlSystem{ctl: ctl}
}

func (s *ControlSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *ControlSystem) Update(f *frame.Frame) {
	s.ctl.Control(f)
}
