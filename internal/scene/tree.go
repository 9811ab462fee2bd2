// Package scene keeps entities in an arena-backed tree and walks it once per
// tick to integrate, compose world matrices and emit render records.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/voidrift/simcore/internal/core/arena"
	"github.com/voidrift/simcore/internal/entity"
	"github.com/voidrift/simcore/internal/frame"
)

// Registrar receives the static renderer descriptor of every drawable thing
// once, when it enters the scene.
type Registrar interface {
	Register(id uint32, descriptor string)
}

// RegistrarFunc adapts a function to Registrar.
type RegistrarFunc func(id uint32, descriptor string)

func (f RegistrarFunc) Register(id uint32, descriptor string) { f(id, descriptor) }

// CheckoutError is the panic value raised when the checkout discipline is
// broken.
type CheckoutError struct {
	Node        arena.Handle
	Outstanding int
	Reason      string
}

func (e CheckoutError) Error() string {
	return fmt.Sprintf("%s (node %d, %d outstanding)", e.Reason, e.Node, e.Outstanding)
}

const errNotReturned = "not all entities returned"

// Node is one slot of the tree.
type Node struct {
	entity   entity.Entity
	children *arena.Arena[arena.Handle]
	matrix   mgl32.Mat4
	meta     bool
	out      bool
}

func (n *Node) Children() []arena.Handle { return n.children.Slice() }
func (n *Node) Matrix() mgl32.Mat4       { return n.matrix }
func (n *Node) Renderable() bool         { return n.meta }

// Tree is the scene graph. Node handles double as render ids; part ids are
// issued from Cap() upward so the two ranges never meet.
// Accessed only from the simulation goroutine, no locks.
type Tree struct {
	nodes         *arena.Arena[Node]
	childCapacity int
	registrar     Registrar
	outstanding   int
	nextPart      uint32
	log           *zap.Logger
}

// NewTree allocates a tree of capacity nodes, each holding up to
// childCapacity children.
func NewTree(capacity, childCapacity int, reg Registrar, log *zap.Logger) *Tree {
	return &Tree{
		nodes:         arena.New[Node](capacity),
		childCapacity: childCapacity,
		registrar:     reg,
		nextPart:      uint32(capacity),
		log:           log,
	}
}

func (t *Tree) Len() int         { return t.nodes.Len() }
func (t *Tree) Cap() int         { return t.nodes.Cap() }
func (t *Tree) Outstanding() int { return t.outstanding }

func (t *Tree) newNode(e entity.Entity) Node {
	return Node{
		entity:   e,
		children: arena.New[arena.Handle](t.childCapacity),
		matrix:   mgl32.Ident4(),
	}
}

// Root returns the root node, creating an empty one on first use.
func (t *Tree) Root() arena.Handle {
	if t.nodes.Len() == 0 {
		t.nodes.Add(t.newNode(entity.Blank{}))
	}
	return 0
}

// Node exposes the slot at h.
func (t *Tree) Node(h arena.Handle) *Node { return t.nodes.Ptr(h) }

// AddEntity places e under parent and registers it, and any parts it owns,
// with the renderer.
func (t *Tree) AddEntity(parent arena.Handle, e entity.Entity) arena.Handle {
	p := t.nodes.Ptr(parent)
	h := t.nodes.Add(t.newNode(e))
	p.children.Add(h)

	n := t.nodes.Ptr(h)
	if desc, ok := e.ShaderMetadata(); ok {
		n.meta = true
		t.registrar.Register(uint32(h), desc)
	}
	if c, ok := e.(entity.Composite); ok {
		for part := range c.Parts() {
			desc, ok := part.ShaderMetadata()
			if !ok {
				continue
			}
			part.BindRenderID(t.nextPart)
			t.registrar.Register(t.nextPart, desc)
			t.nextPart++
		}
	}
	t.log.Debug("entity added",
		zap.Uint32("node", uint32(h)),
		zap.Uint32("parent", uint32(parent)),
		zap.Stringer("kind", e.Kind()),
	)
	return h
}

// Entity peeks at the entity in h without taking it out.
func (t *Tree) Entity(h arena.Handle) entity.Entity {
	return t.nodes.Ptr(h).entity
}

// Checkout takes the entity out of h for exclusive mutation, leaving a Blank
// in its place. It must be returned with Checkin before the next
// RecursiveUpdate.
func (t *Tree) Checkout(h arena.Handle) entity.Entity {
	n := t.nodes.Ptr(h)
	if n.out {
		panic(CheckoutError{Node: h, Outstanding: t.outstanding, Reason: "entity already checked out"})
	}
	e := n.entity
	n.entity = entity.Blank{}
	n.out = true
	t.outstanding++
	return e
}

// Checkin returns a checked-out entity to h.
func (t *Tree) Checkin(h arena.Handle, e entity.Entity) {
	n := t.nodes.Ptr(h)
	if !n.out {
		panic(CheckoutError{Node: h, Outstanding: t.outstanding, Reason: "entity was not checked out"})
	}
	n.entity = e
	n.out = false
	t.outstanding--
}

// RecursiveUpdate walks the subtree at h depth-first. Each node updates its
// entity against the parent matrix, appends Projection * world for itself
// and its visible parts when renderable, then hands its own matrix down to
// its children.
func (t *Tree) RecursiveUpdate(h arena.Handle, dt float32, parent, projection mgl32.Mat4, buf *frame.Buffer) {
	if t.outstanding != 0 {
		panic(CheckoutError{Node: h, Outstanding: t.outstanding, Reason: errNotReturned})
	}
	t.update(h, dt, parent, projection, buf)
}

func (t *Tree) update(h arena.Handle, dt float32, parent, projection mgl32.Mat4, buf *frame.Buffer) {
	n := t.nodes.Ptr(h)
	n.matrix = n.entity.UpdateMatrix(dt, parent)

	if n.meta {
		buf.AddMatrix(uint32(h), 0, 0, projection.Mul4(n.matrix))
	}
	if c, ok := n.entity.(entity.Composite); ok {
		for part := range c.Parts() {
			if _, ok := part.ShaderMetadata(); ok && part.Visible() {
				buf.AddMatrix(part.RenderID(), 0, 0, projection.Mul4(part.Matrix()))
			}
		}
	}

	for _, child := range n.children.Slice() {
		t.update(child, dt, n.matrix, projection, buf)
	}
}

// Walk visits every node in handle order.
func (t *Tree) Walk(fn func(h arena.Handle, e entity.Entity)) {
	for h, n := range t.nodes.All() {
		fn(h, n.entity)
	}
}
