package system

import (
	"encoding/hex"

	"go.uber.org/zap"

	coresys "github.com/voidrift/simcore/internal/core/system"
	"github.com/voidrift/simcore/internal/frame"
)

// OutputSystem seals the frame buffer. Phase 4 (Output).
type OutputSystem struct {
	out    []float32
	digest bool
	log    *zap.Logger
}

func NewOutputSystem(digest bool, log *zap.Logger) *OutputSystem {
	return &OutputSystem{digest: digest, log: log}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update(f *frame.Frame) {
	s.out = f.Buffer.Finalize()
	if s.digest {
		sum := f.Buffer.Digest()
		s.log.Debug("frame",
			zap.Float32("t", f.T),
			zap.Int("records", f.Buffer.Records()),
			zap.String("digest", hex.EncodeToString(sum[:8])),
		)
	}
}

// Output is the last sealed buffer. It aliases the frame buffer.
func (s *OutputSystem) Output() []float32 { return s.out }
