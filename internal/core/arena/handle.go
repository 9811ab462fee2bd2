package arena

// Handle is the position of an item inside one Arena. Handles are issued in
// increasing order starting at 0 and stay valid until the Arena is reset.
// A Handle carries no reference to its Arena; using it with another Arena is
// a caller error.
type Handle uint32

// Index returns the slot index as an int.
func (h Handle) Index() int { return int(h) }
