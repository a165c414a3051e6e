// Package search holds the shared state of an incremental search. A
// search field owns one State; every control searchable through that
// field holds a reference to the same State, so the last writer wins.
// This is safe under the module's single-threaded rendering contract.
package search

// Direction is the direction a search advances through the document.
type Direction int

const (
	// Forward searches toward the end of the document.
	Forward Direction = iota
	// Backward searches toward the start of the document.
	Backward
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Opposite returns the reversed direction.
func (d Direction) Opposite() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

// State describes one search: what to look for, which way, and whether
// case is ignored.
type State struct {
	Text       string
	Direction  Direction
	IgnoreCase bool
}
