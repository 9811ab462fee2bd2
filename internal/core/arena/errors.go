package arena

import "fmt"

// CapacityError is the panic value raised when an Arena is full.
type CapacityError struct {
	Capacity int
}

func (e CapacityError) Error() string {
	return fmt.Sprintf("arena full: capacity %d exhausted", e.Capacity)
}

// IndexError is the panic value raised when a Handle points past the live
// prefix of an Arena.
type IndexError struct {
	Handle Handle
	Len    int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("arena index out of range: handle %d, len %d", e.Handle, e.Len)
}
