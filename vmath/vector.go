package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is the world/screen coordinate pair used across packages
type Vec = r2.Vec

// Box is an axis-aligned rectangle, Min inclusive
type Box = r2.Box

// DistanceSq returns squared euclidean distance between a and b
func DistanceSq(a, b Vec) float64 {
	return r2.Norm2(r2.Sub(a, b))
}

// Distance returns euclidean distance between a and b
func Distance(a, b Vec) float64 {
	return math.Sqrt(DistanceSq(a, b))
}

// Bounds returns the smallest box containing all points
// ok is false for an empty slice
func Bounds(points []Vec) (box Box, ok bool) {
	if len(points) == 0 {
		return Box{}, false
	}
	box.Min, box.Max = points[0], points[0]
	for _, p := range points[1:] {
		box.Min.X = math.Min(box.Min.X, p.X)
		box.Min.Y = math.Min(box.Min.Y, p.Y)
		box.Max.X = math.Max(box.Max.X, p.X)
		box.Max.Y = math.Max(box.Max.Y, p.Y)
	}
	return box, true
}
