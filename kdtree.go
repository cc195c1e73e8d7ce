package optics

import "math"

// KDTree is a KD-tree spatial index answering fixed-radius and
// nearest-neighbor queries. Each node keeps the axis-aligned bounding box of
// its points; the distance from a query to that box bounds the distance to
// every point inside, so the metric must decompose along coordinate axes
// (see KDTreeValidMetric).
type KDTree struct {
	binaryTree

	// lo[node*dims+j] and hi[node*dims+j] bound coordinate j within node.
	lo, hi []float64
	norm   boxNorm
}

// boxNorm is how per-axis gaps to a bounding box combine into a reduced
// distance, matching the metric's ReducedDistance.
type boxNorm int

const (
	normSquares boxNorm = iota // Euclidean
	normSum                    // Manhattan
	normMax                    // Chebyshev
	normPower                  // Minkowski
)

// NewKDTree builds a KD-tree from flat row-major data with n points of
// dimensionality dims. leafSize controls the max points per leaf node.
func NewKDTree(data []float64, n, dims int, metric DistanceMetric, leafSize int) *KDTree {
	t := &KDTree{binaryTree: newBinaryTree(data, n, dims, metric, leafSize)}
	switch metric.(type) {
	case ManhattanMetric:
		t.norm = normSum
	case ChebyshevMetric:
		t.norm = normMax
	case MinkowskiMetric:
		t.norm = normPower
	}
	capacity := cap(t.nodes) * dims
	t.lo = make([]float64, 0, capacity)
	t.hi = make([]float64, 0, capacity)
	t.geom = t
	if n > 0 {
		t.build(0, 0, n)
	}
	return t
}

func (t *KDTree) box(node int) (lo, hi []float64) {
	s := node * t.dims
	return t.lo[s : s+t.dims], t.hi[s : s+t.dims]
}

func (t *KDTree) fit(node, start, end int) {
	if need := (node + 1) * t.dims; need > len(t.lo) {
		t.lo = append(t.lo, make([]float64, need-len(t.lo))...)
		t.hi = append(t.hi, make([]float64, need-len(t.hi))...)
	}
	lo, hi := t.box(node)
	for j := range lo {
		lo[j], hi[j] = math.Inf(1), math.Inf(-1)
	}
	for _, p := range t.idx[start:end] {
		for j, v := range t.point(p) {
			lo[j], hi[j] = min(lo[j], v), max(hi[j], v)
		}
	}
}

func (t *KDTree) minDist(node int, query []float64) float64 {
	d := t.metric.RdistToDist(t.boxRdist(node, query))
	if t.norm == normPower {
		// math.Pow is not monotone to the last ulp.
		d -= boundSlack * d
	}
	return d
}

// boxRdist is the reduced distance from q to the nearest point of the
// node's bounding box.
func (t *KDTree) boxRdist(node int, q []float64) float64 {
	lo, hi := t.box(node)
	var rdist float64
	for j, x := range q {
		var gap float64
		switch {
		case x < lo[j]:
			gap = lo[j] - x
		case x > hi[j]:
			gap = x - hi[j]
		}
		switch t.norm {
		case normSquares:
			rdist += gap * gap
		case normSum:
			rdist += gap
		case normMax:
			rdist = max(rdist, gap)
		case normPower:
			rdist += math.Pow(gap, t.metric.(MinkowskiMetric).P)
		}
	}
	return rdist
}
