package optics

import "math"

// BuildOrdering computes the OPTICS cluster order of the points behind q.
//
// Every point is visited exactly once. A point with at least minPts
// neighbors within eps is a core point: its core distance is the distance to
// its minPts-th nearest neighbor, and each unprocessed neighbor becomes
// reachable at max(distance, core distance). Reached points are expanded in
// ascending reachability order before the scan moves on to the next
// unprocessed point.
//
// Returns an error wrapping ErrInvalidParameter if q has no points, eps is
// negative or NaN, or minPts < 1.
func BuildOrdering(q NeighborQuery, eps float64, minPts int) (*ClusterOrder, error) {
	if err := validateOrdering(q, eps, minPts); err != nil {
		return nil, err
	}
	return newBuildContext(q, eps, minPts).run(), nil
}

func validateOrdering(q NeighborQuery, eps float64, minPts int) error {
	if q == nil || q.NumPoints() == 0 {
		return invalidParameter("dataset must not be empty")
	}
	if eps < 0 || math.IsNaN(eps) {
		return invalidParameter("radius must be >= 0, got %v", eps)
	}
	if minPts < 1 {
		return invalidParameter("MinPts must be >= 1, got %d", minPts)
	}
	return nil
}

// buildContext owns all mutable state of one ordering build, so concurrent
// builds over a shared NeighborQuery never touch each other's descriptors.
type buildContext struct {
	query    NeighborQuery
	eps      float64
	minPts   int
	order    *ClusterOrder
	frontier *seedFrontier

	// observe, when non-nil, is called every time a reachability distance is
	// assigned, with the previous value (+Inf if undefined).
	observe func(point int, prev, next float64)
}

func newBuildContext(q NeighborQuery, eps float64, minPts int) *buildContext {
	n := q.NumPoints()
	desc := make([]PointDescriptor, n)
	for i := range desc {
		desc[i] = PointDescriptor{
			Index:                i,
			CoreDistance:         undefinedDistance,
			ReachabilityDistance: undefinedDistance,
		}
	}
	return &buildContext{
		query:  q,
		eps:    eps,
		minPts: minPts,
		order: &ClusterOrder{
			Descriptors: desc,
			Order:       make([]int, 0, n),
			Radius:      eps,
			MinPts:      minPts,
		},
		frontier: newSeedFrontier(desc),
	}
}

func (b *buildContext) run() *ClusterOrder {
	desc := b.order.Descriptors
	for p := range desc {
		if desc[p].Processed {
			continue
		}
		b.visit(p)
		for !b.frontier.empty() {
			b.visit(b.frontier.popMin())
		}
	}
	return b.order
}

// visit places p in the order and, if p is a core point, pushes its
// unprocessed neighbors onto the frontier.
func (b *buildContext) visit(p int) {
	d := &b.order.Descriptors[p]
	d.Processed = true
	neighbors := b.query.Neighbors(p, b.eps)
	b.order.Order = append(b.order.Order, p)

	if len(neighbors) < b.minPts {
		return
	}
	sortNeighbors(neighbors)
	d.CoreDistance = neighbors[b.minPts-1].Distance
	b.updateFrontier(d.CoreDistance, neighbors)
}

// updateFrontier relaxes the reachability of every unprocessed neighbor of a
// core point with the given core distance.
func (b *buildContext) updateFrontier(coreDistance float64, neighbors []Neighbor) {
	for _, nb := range neighbors {
		d := &b.order.Descriptors[nb.Index]
		if d.Processed {
			continue
		}
		candidate := max(nb.Distance, coreDistance)
		// Unprocessed points are in the frontier exactly when reached.
		switch {
		case !b.frontier.contains(nb.Index):
			b.setReachability(d, candidate)
			b.frontier.insert(nb.Index)
		case candidate < d.ReachabilityDistance:
			b.setReachability(d, candidate)
			b.frontier.decrease(nb.Index)
		}
	}
}

func (b *buildContext) setReachability(d *PointDescriptor, r float64) {
	if b.observe != nil {
		b.observe(d.Index, d.ReachabilityDistance, r)
	}
	d.ReachabilityDistance = r
}
