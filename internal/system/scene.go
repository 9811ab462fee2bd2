package system

import (
	"github.com/go-gl/mathgl/mgl32"

	coresys "github.com/voidrift/simcore/internal/core/system"
	"github.com/voidrift/simcore/internal/frame"
	"github.com/voidrift/simcore/internal/scene"
)

// SceneSystem integrates every entity and writes the render records.
// Phase 2 (Update).
type SceneSystem struct {
	tree *scene.Tree
}

func NewSceneSystem(tree *scene.Tree) *SceneSystem {
	return &SceneSystem{tree: tree}
}

func (s *SceneSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *SceneSystem) Update(f *frame.Frame) {
	s.tree.RecursiveUpdate(s.tree.Root(), f.Dt, mgl32.Ident4(), f.Projection, f.Buffer)
}
