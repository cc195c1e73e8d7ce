package optics

import (
	"fmt"
	"math"
)

// undefinedDistance marks a core or reachability distance that has not been
// defined. It compares greater than every finite radius.
var undefinedDistance = math.Inf(1)

// PointDescriptor holds the per-point state of one ordering build.
// Undefined distances are stored as +Inf.
type PointDescriptor struct {
	// Index is the position of the point in the input dataset.
	Index int

	// CoreDistance is the distance to the MinPts-th nearest neighbor within
	// the build radius, or +Inf when the point has fewer neighbors.
	CoreDistance float64

	// ReachabilityDistance is the smallest distance at which the point is
	// reachable from an already processed core point, or +Inf when it was
	// never reached (the first point of every expansion).
	ReachabilityDistance float64

	// Processed is set once the point has been placed in the order.
	Processed bool
}

// HasCoreDistance reports whether the point is a core point for the build.
func (d PointDescriptor) HasCoreDistance() bool { return !math.IsInf(d.CoreDistance, 1) }

// HasReachability reports whether the point was reached from a core point.
func (d PointDescriptor) HasReachability() bool { return !math.IsInf(d.ReachabilityDistance, 1) }

func (d PointDescriptor) String() string {
	return fmt.Sprintf("(%d, core: %s, reachability: %s)",
		d.Index, formatDistance(d.CoreDistance), formatDistance(d.ReachabilityDistance))
}

func formatDistance(v float64) string {
	if math.IsInf(v, 1) {
		return "undefined"
	}
	return fmt.Sprintf("%g", v)
}

// ClusterOrder is the result of one ordering build: a descriptor arena
// addressed by point index plus the visit order of those points.
type ClusterOrder struct {
	// Descriptors has one entry per input point; Descriptors[i].Index == i.
	Descriptors []PointDescriptor

	// Order lists point indices in the order they were processed.
	Order []int

	// Radius and MinPts are the parameters the order was built with.
	Radius float64
	MinPts int
}

// Len returns the number of points in the order.
func (o *ClusterOrder) Len() int { return len(o.Order) }

// At returns the descriptor at position i of the visit order.
func (o *ClusterOrder) At(i int) PointDescriptor { return o.Descriptors[o.Order[i]] }

// CoreDistances returns the core distance of every point, indexed by point.
// Non-core points have +Inf.
func (o *ClusterOrder) CoreDistances() []float64 {
	out := make([]float64, len(o.Descriptors))
	for i, d := range o.Descriptors {
		out[i] = d.CoreDistance
	}
	return out
}
