package system

import (
	"testing"

	"github.com/voidrift/simcore/internal/frame"
)

type probe struct {
	name  string
	phase Phase
	log   *[]string
}

func (p probe) Phase() Phase          { return p.phase }
func (p probe) Update(_ *frame.Frame) { *p.log = append(*p.log, p.name) }

func TestRunnerOrdersByPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(probe{"output", PhaseOutput, &log})
	r.Register(probe{"logic-a", PhasePreUpdate, &log})
	r.Register(probe{"input", PhaseInput, &log})
	r.Register(probe{"logic-b", PhasePreUpdate, &log})
	r.Register(probe{"scene", PhaseUpdate, &log})

	r.Tick(frame.New(16))

	want := []string{"input", "logic-a", "logic-b", "scene", "output"}
	if len(log) != len(want) {
		t.Fatalf("ran %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("ran %v, want %v", log, want)
			break
		}
	}
}
