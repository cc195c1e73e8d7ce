package optics

import "math"

// DistanceMetric measures the distance between two points of equal
// dimensionality. Spatial indexes prune in the cheaper reduced space
// (squared Euclidean, for instance); DistToRdist and RdistToDist convert
// between the two and must both be monotonically increasing.
type DistanceMetric interface {
	Distance(a, b []float64) float64
	ReducedDistance(a, b []float64) float64
	DistToRdist(d float64) float64
	RdistToDist(rd float64) float64
}

// unreduced provides the conversions of a metric whose reduced distance is
// the distance itself.
type unreduced struct{}

func (unreduced) DistToRdist(d float64) float64  { return d }
func (unreduced) RdistToDist(rd float64) float64 { return rd }

// DistanceFunc adapts a plain function into a DistanceMetric with no
// separate reduced form. Only the brute-force index accepts it.
type DistanceFunc func(a, b []float64) float64

func (f DistanceFunc) Distance(a, b []float64) float64        { return f(a, b) }
func (f DistanceFunc) ReducedDistance(a, b []float64) float64 { return f(a, b) }
func (DistanceFunc) DistToRdist(d float64) float64            { return d }
func (DistanceFunc) RdistToDist(rd float64) float64           { return rd }

// EuclideanMetric is the L2 distance. Its reduced form is the squared
// distance.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	return math.Sqrt(sumSquares(a, b))
}

func (EuclideanMetric) ReducedDistance(a, b []float64) float64 { return sumSquares(a, b) }
func (EuclideanMetric) DistToRdist(d float64) float64          { return d * d }
func (EuclideanMetric) RdistToDist(rd float64) float64         { return math.Sqrt(rd) }

func sumSquares(a, b []float64) float64 {
	var s float64
	for i, x := range a {
		d := x - b[i]
		s += d * d
	}
	return s
}

// ManhattanMetric is the L1 (city-block) distance.
type ManhattanMetric struct{ unreduced }

func (ManhattanMetric) Distance(a, b []float64) float64 {
	var s float64
	for i, x := range a {
		s += math.Abs(x - b[i])
	}
	return s
}

func (m ManhattanMetric) ReducedDistance(a, b []float64) float64 { return m.Distance(a, b) }

// ChebyshevMetric is the L-infinity distance: the largest per-axis gap.
type ChebyshevMetric struct{ unreduced }

func (ChebyshevMetric) Distance(a, b []float64) float64 {
	var m float64
	for i, x := range a {
		m = max(m, math.Abs(x-b[i]))
	}
	return m
}

func (m ChebyshevMetric) ReducedDistance(a, b []float64) float64 { return m.Distance(a, b) }

// CosineMetric is 1 minus the cosine similarity. It is not a true metric, so
// neither tree accepts it. Two zero vectors are at distance NaN.
type CosineMetric struct{ unreduced }

func (CosineMetric) Distance(a, b []float64) float64 {
	var dot, aa, bb float64
	for i, x := range a {
		dot += x * b[i]
		aa += x * x
		bb += b[i] * b[i]
	}
	return 1 - dot/math.Sqrt(aa*bb)
}

func (m CosineMetric) ReducedDistance(a, b []float64) float64 { return m.Distance(a, b) }

// MinkowskiMetric is the Lp distance for P >= 1. Its reduced form drops the
// final root. Panics if P < 1.
type MinkowskiMetric struct {
	P float64
}

func (m MinkowskiMetric) Distance(a, b []float64) float64 {
	return m.RdistToDist(m.ReducedDistance(a, b))
}

func (m MinkowskiMetric) ReducedDistance(a, b []float64) float64 {
	if m.P < 1 {
		panic("MinkowskiMetric: P must be >= 1")
	}
	var s float64
	for i, x := range a {
		s += math.Pow(math.Abs(x-b[i]), m.P)
	}
	return s
}

func (m MinkowskiMetric) DistToRdist(d float64) float64  { return math.Pow(d, m.P) }
func (m MinkowskiMetric) RdistToDist(rd float64) float64 { return math.Pow(rd, 1/m.P) }
