package frame

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/crypto/blake2b"

	"github.com/voidrift/simcore/internal/core/arena"
)

// DefaultBufferSize is the float capacity of a frame buffer.
const DefaultBufferSize = 4000

// Value counts carried in the size field of a record.
const (
	ScalarSize = 1
	MatrixSize = 16
)

// Buffer is the packed per-frame output handed to the renderer.
//
// Layout: slot 0 holds the record count (written by Finalize), followed by
// records of the form
//
//	id, size, block, variable, value[size]
//
// Matrices are written row by row.
type Buffer struct {
	data    *arena.Arena[float32]
	records int
}

// NewBuffer allocates a buffer with room for capacity floats, including the
// count slot.
func NewBuffer(capacity int) *Buffer {
	b := &Buffer{data: arena.New[float32](capacity)}
	b.Reset()
	return b
}

// Reset drops every record and reserves the count slot.
func (b *Buffer) Reset() {
	b.data.Reset()
	b.data.Add(0)
	b.records = 0
}

func (b *Buffer) header(id uint32, size, block, variable int) {
	b.data.Add(float32(id))
	b.data.Add(float32(size))
	b.data.Add(float32(block))
	b.data.Add(float32(variable))
	b.records++
}

// AddFloat appends a scalar record.
func (b *Buffer) AddFloat(id uint32, block, variable int, v float32) {
	b.header(id, ScalarSize, block, variable)
	b.data.Add(v)
}

// AddMatrix appends a matrix record.
func (b *Buffer) AddMatrix(id uint32, block, variable int, m mgl32.Mat4) {
	b.header(id, MatrixSize, block, variable)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			b.data.Add(m.At(r, c))
		}
	}
}

// Records is the number of records appended since the last Reset.
func (b *Buffer) Records() int { return b.records }

// Len is the number of floats in use, including the count slot.
func (b *Buffer) Len() int { return b.data.Len() }

// Finalize writes the record count into slot 0 and returns the live data.
// The slice aliases the buffer and is valid until the next Reset.
func (b *Buffer) Finalize() []float32 {
	b.data.Set(0, float32(b.records))
	return b.data.Slice()
}

// Digest hashes the live contents. Equal simulations produce equal digests.
func (b *Buffer) Digest() [32]byte {
	raw := make([]byte, 4*b.data.Len())
	for i, f := range b.data.Slice() {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(f))
	}
	return blake2b.Sum256(raw)
}

// Record is one decoded entry of a finalized buffer.
type Record struct {
	ID       uint32
	Block    int
	Variable int
	Values   []float32
}

// Matrix rebuilds a matrix record's values.
func (r Record) Matrix() (mgl32.Mat4, bool) {
	if len(r.Values) != MatrixSize {
		return mgl32.Mat4{}, false
	}
	var m mgl32.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m.Set(row, col, r.Values[row*4+col])
		}
	}
	return m, true
}

// Decode walks the records of a finalized buffer. It stops early on a
// truncated record.
func Decode(buf []float32, fn func(Record)) {
	if len(buf) == 0 {
		return
	}
	n := int(buf[0])
	pos := 1
	for i := 0; i < n; i++ {
		if pos+4 > len(buf) {
			return
		}
		size := int(buf[pos+1])
		end := pos + 4 + size
		if end > len(buf) {
			return
		}
		fn(Record{
			ID:       uint32(buf[pos]),
			Block:    int(buf[pos+2]),
			Variable: int(buf[pos+3]),
			Values:   buf[pos+4 : end],
		})
		pos = end
	}
}
