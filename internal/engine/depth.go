package engine

import (
	"math"
)

// DepthBuffer holds the nearest occluding distance for each screen column
type DepthBuffer []float64

// NewDepthBuffer creates a buffer for the given number of columns, already reset
func NewDepthBuffer(columns int) DepthBuffer {
	d := make(DepthBuffer, columns)
	d.Reset()
	return d
}

// Reset marks every column as unoccluded
func (d DepthBuffer) Reset() {
	inf := math.Inf(1)
	for i := range d {
		d[i] = inf
	}
}

// Write records the wall distance for a column
func (d DepthBuffer) Write(column int, distance float64) {
	if column >= 0 && column < len(d) {
		d[column] = distance
	}
}

// TestAndSet claims a column for something at the given distance when nothing
// nearer was recorded this frame. Columns outside the buffer are rejected.
func (d DepthBuffer) TestAndSet(column int, distance float64) bool {
	if column < 0 || column >= len(d) {
		return false
	}
	if d[column] < distance {
		return false
	}
	d[column] = distance
	return true
}
