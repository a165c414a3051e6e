package core

// Point is a screen coordinate in cells (0-indexed, X across, Y down).
type Point struct {
	X int
	Y int
}

// NewPoint creates a point.
func NewPoint(x, y int) Point {
	return Point{X: x, Y: y}
}

// Equal returns true if two points are the same coordinate.
func (p Point) Equal(other Point) bool {
	return p.X == other.X && p.Y == other.Y
}
