package optics

import "gonum.org/v1/gonum/floats"

// ReachabilityPlot is the sequence of defined reachability distances of a
// cluster order, in visit order. Valleys in the plot are clusters; peaks
// separate them.
type ReachabilityPlot []float64

// Reachability projects the order onto its defined reachability distances.
func (o *ClusterOrder) Reachability() ReachabilityPlot {
	plot := make(ReachabilityPlot, 0, len(o.Order))
	for _, p := range o.Order {
		if d := o.Descriptors[p]; d.HasReachability() {
			plot = append(plot, d.ReachabilityDistance)
		}
	}
	return plot
}

// Max returns the largest value in the plot. It panics on an empty plot.
func (r ReachabilityPlot) Max() float64 {
	return floats.Max(r)
}
