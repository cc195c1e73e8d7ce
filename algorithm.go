package optics

import "fmt"

// Algorithm selects the NeighborQuery implementation used for coordinate data.
type Algorithm string

const (
	AlgorithmAuto     Algorithm = "auto"
	AlgorithmBrute    Algorithm = "brute"
	AlgorithmKDTree   Algorithm = "kdtree"
	AlgorithmBallTree Algorithm = "balltree"
)

// maxKDTreeDims is the dimensionality above which AlgorithmAuto prefers the
// ball tree: box bounds stop pruning well in high dimensions.
const maxKDTreeDims = 60

// isLpMetric reports whether m is one of the built-in Lp norms. Their
// distance grows with every per-axis gap and obeys the triangle inequality.
func isLpMetric(m DistanceMetric) bool {
	switch m.(type) {
	case EuclideanMetric, ManhattanMetric, ChebyshevMetric, MinkowskiMetric:
		return true
	}
	return false
}

// KDTreeValidMetric reports whether a KD-tree can index points under m.
// Box pruning needs a metric that decomposes along coordinate axes.
func KDTreeValidMetric(m DistanceMetric) bool { return isLpMetric(m) }

// BallTreeValidMetric reports whether a ball tree can index points under m.
// Ball pruning needs the triangle inequality, which only the built-in
// metrics guarantee; cosine distance and arbitrary functions fall back to
// the brute-force matrix.
func BallTreeValidMetric(m DistanceMetric) bool { return isLpMetric(m) }

// selectAlgorithm resolves AlgorithmAuto for the metric and dimensionality,
// and rejects explicit tree choices the metric cannot support.
func selectAlgorithm(cfg Config, dims int) (Algorithm, error) {
	switch cfg.Algorithm {
	case AlgorithmAuto:
		switch {
		case KDTreeValidMetric(cfg.Metric) && dims <= maxKDTreeDims:
			return AlgorithmKDTree, nil
		case BallTreeValidMetric(cfg.Metric):
			return AlgorithmBallTree, nil
		default:
			return AlgorithmBrute, nil
		}
	case AlgorithmKDTree:
		if !KDTreeValidMetric(cfg.Metric) {
			return "", invalidParameter("metric %T is not supported by the KD-tree", cfg.Metric)
		}
	case AlgorithmBallTree:
		if !BallTreeValidMetric(cfg.Metric) {
			return "", invalidParameter("metric %T is not supported by the ball tree", cfg.Metric)
		}
	}
	return cfg.Algorithm, nil
}

// newNeighborQuery builds the index chosen by algo over flat row-major data.
func newNeighborQuery(flatData []float64, n, dims int, cfg Config, algo Algorithm) (NeighborQuery, error) {
	switch algo {
	case AlgorithmKDTree:
		return NewKDTree(flatData, n, dims, cfg.Metric, cfg.LeafSize), nil
	case AlgorithmBallTree:
		return NewBallTree(flatData, n, dims, cfg.Metric, cfg.LeafSize), nil
	case AlgorithmBrute:
		dist := ComputePairwiseDistancesParallel(flatData, n, dims, cfg.Metric, cfg.Workers)
		return NewDistanceMatrix(dist, n), nil
	}
	return nil, fmt.Errorf("optics: unresolved algorithm %q", algo)
}
