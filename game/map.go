package game

import "math"

// Map holds the bounds of the grid. Sides are always odd so that the center is
// a cell.
type Map struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewMap rounds even sides up to the next odd size.
func NewMap(height, width int) Map {
	if height%2 == 0 {
		height++
	}
	if width%2 == 0 {
		width++
	}
	return Map{Width: width, Height: height}
}

func (m Map) Center() Coord {
	return Coord{X: m.Width / 2, Y: m.Height / 2}
}

// LongestDist is the distance from the center to a corner.
func (m Map) LongestDist() float64 {
	c := m.Center()
	return math.Hypot(float64(c.X), float64(c.Y))
}

func (m Map) DistanceFromCenter(c Coord) float64 {
	center := m.Center()
	return math.Hypot(float64(c.X-center.X), float64(c.Y-center.Y))
}

// DistancePoints rewards being close to the center: LongestDist at the center,
// zero in the corners.
func (m Map) DistancePoints(c Coord) float64 {
	return m.LongestDist() - m.DistanceFromCenter(c)
}

func (m Map) OutOfBounds(c Coord) bool {
	return c.X < 0 || c.X >= m.Width || c.Y < 0 || c.Y >= m.Height
}

// Cells is the number of cells on the map.
func (m Map) Cells() int {
	return m.Width * m.Height
}
