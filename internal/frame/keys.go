package frame

// Key is a bit position in the per-tick input mask.
type Key uint8

const (
	KeyW     Key = iota // 0: forward
	KeyA                // 1: yaw left
	KeyS                // 2: reverse
	KeyD                // 3: yaw right
	KeyQ                // 4: strafe left
	KeyE                // 5: strafe right
	KeySpace            // 6: fire
)

var keyNames = [...]string{"w", "a", "s", "d", "q", "e", "space"}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

// AllKeys lists every key in bit order.
var AllKeys = [...]Key{KeyW, KeyA, KeyS, KeyD, KeyQ, KeyE, KeySpace}

// Keys is the input bitmask delivered each tick.
type Keys uint8

// Pressed reports whether bit k is set.
func (m Keys) Pressed(k Key) bool {
	return m&(1<<k) > 0
}

// With returns m with k set.
func (m Keys) With(k Key) Keys {
	return m | 1<<k
}
