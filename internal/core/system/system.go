package system

import "github.com/voidrift/simcore/internal/frame"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: deliver last tick's events
	PhasePreUpdate               // 1: client logic, checkout/checkin
	PhaseUpdate                  // 2: scene graph traversal
	PhasePostUpdate              // 3: collision detection
	PhaseOutput                  // 4: finalize the frame buffer
)

// System is one stage of the tick.
type System interface {
	Phase() Phase
	Update(f *frame.Frame)
}
