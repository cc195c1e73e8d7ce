package optics

// BallTree is a ball tree spatial index for fixed-radius and nearest-neighbor
// queries. Each node stores the centroid of its points and the radius of the
// smallest ball around it holding them all, so any metric satisfying the
// triangle inequality can prune.
type BallTree struct {
	binaryTree

	// centroids[node*dims : (node+1)*dims] is the mean of node's points.
	centroids []float64
}

// NewBallTree builds a ball tree from flat row-major data with n points
// of dimensionality dims. leafSize controls the max points per leaf node.
func NewBallTree(data []float64, n, dims int, metric DistanceMetric, leafSize int) *BallTree {
	t := &BallTree{binaryTree: newBinaryTree(data, n, dims, metric, leafSize)}
	t.centroids = make([]float64, 0, cap(t.nodes)*dims)
	t.geom = t
	if n > 0 {
		t.build(0, 0, n)
	}
	return t
}

func (t *BallTree) centroid(node int) []float64 {
	return t.centroids[node*t.dims : (node+1)*t.dims]
}

func (t *BallTree) fit(node, start, end int) {
	if need := (node + 1) * t.dims; need > len(t.centroids) {
		t.centroids = append(t.centroids, make([]float64, need-len(t.centroids))...)
	}
	c := t.centroid(node)
	clear(c)
	for _, p := range t.idx[start:end] {
		for j, v := range t.point(p) {
			c[j] += v
		}
	}
	count := float64(end - start)
	for j := range c {
		c[j] /= count
	}

	var radius float64
	for _, p := range t.idx[start:end] {
		radius = max(radius, t.metric.Distance(c, t.point(p)))
	}
	t.nodes[node].Radius = radius
}

func (t *BallTree) minDist(node int, query []float64) float64 {
	d, r := t.metric.Distance(query, t.centroid(node)), t.nodes[node].Radius
	return max(0, d-r-boundSlack*(d+r))
}
