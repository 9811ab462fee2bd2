// Package frame carries per-tick input into the simulation and the packed
// render output back out.
package frame

import "github.com/go-gl/mathgl/mgl32"

// Frame is the state of one tick: clock, input and output.
type Frame struct {
	T          float32
	Dt         float32
	Keys       Keys
	Projection mgl32.Mat4
	Buffer     *Buffer
}

// New returns an idle frame with an output buffer of bufferSize floats.
func New(bufferSize int) *Frame {
	return &Frame{
		Projection: mgl32.Ident4(),
		Buffer:     NewBuffer(bufferSize),
	}
}

// Update starts a new tick and clears the output buffer.
func (f *Frame) Update(t, dt float32, keys Keys, projection mgl32.Mat4) {
	f.Buffer.Reset()
	f.T = t
	f.Dt = dt
	f.Keys = keys
	f.Projection = projection
}

func (f *Frame) Pressed(k Key) bool { return f.Keys.Pressed(k) }

// AddViewMatrix records Projection * m for id.
func (f *Frame) AddViewMatrix(id uint32, m mgl32.Mat4) {
	f.Buffer.AddMatrix(id, 0, 0, f.Projection.Mul4(m))
}
