package optics

import (
	"math"
	"runtime"

	"go.uber.org/zap"
)

// Config controls OPTICS ordering and cluster extraction.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Radius is the connectivity radius (eps): the neighborhood searched
	// around every point and the threshold used to separate clusters.
	// Must be >= 0. Default: 0.5.
	Radius float64

	// MinPts is the number of neighbors within Radius a point needs to be a
	// core point. Must be >= 1. Default: 5.
	MinPts int

	// ClusterCount requests a specific number of clusters. When the
	// extraction at Radius yields a different count, the reachability plot
	// is searched for a radius that produces ClusterCount clusters and, if
	// one is found, the ordering is rebuilt with it. 0 disables the search.
	// Must be >= 0. Default: 0.
	ClusterCount int

	// MaxIterations bounds the bisection steps of the radius search.
	// Default: 100.
	MaxIterations int

	// Metric is the distance function used for coordinate data. Ignored by
	// ProcessPrecomputed. Default: EuclideanMetric.
	Metric DistanceMetric

	// Algorithm selects the neighbor index for coordinate data.
	// "auto" picks a KD-tree for axis-decomposable metrics in up to 60
	// dimensions, a ball tree above that, and a brute-force distance matrix
	// for anything else. Default: "auto".
	Algorithm Algorithm

	// LeafSize controls the maximum number of points in a spatial tree leaf.
	// Default: 40.
	LeafSize int

	// Workers controls the goroutines used to compute the brute-force
	// distance matrix and to run Sweep builds. 0 means runtime.NumCPU().
	Workers int

	// Logger receives debug logs about the build. Default: zap.NewNop().
	Logger *zap.Logger
}

// Result contains the output of OPTICS clustering.
type Result struct {
	// Partition holds the clusters (point indices in visit order) and noise.
	Partition

	// Labels assigns each point its cluster index or -1 for noise.
	Labels []int

	// Order is the cluster order the partition was extracted from.
	Order *ClusterOrder

	// Ordering is the reachability plot of Order.
	Ordering ReachabilityPlot

	// Radius is the connectivity radius actually used. It differs from
	// Config.Radius when a ClusterCount search succeeded.
	Radius float64

	// Borders are the reachability plot positions separating clusters, as
	// reported by a successful ClusterCount search.
	Borders []int

	// Rebuilt reports whether the ordering was rebuilt with a searched radius.
	Rebuilt bool
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Radius:        0.5,
		MinPts:        5,
		MaxIterations: DefaultMaxIterations,
		Metric:        EuclideanMetric{},
		Algorithm:     AlgorithmAuto,
		LeafSize:      40,
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = AlgorithmAuto
	}
	if cfg.LeafSize == 0 {
		cfg.LeafSize = 40
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if cfg.Radius < 0 || math.IsNaN(cfg.Radius) {
		return invalidParameter("Radius must be >= 0, got %v", cfg.Radius)
	}
	if cfg.MinPts < 1 {
		return invalidParameter("MinPts must be >= 1, got %d", cfg.MinPts)
	}
	if cfg.ClusterCount < 0 {
		return invalidParameter("ClusterCount must be >= 0 (0 disables the search), got %d", cfg.ClusterCount)
	}
	if cfg.MaxIterations < 1 {
		return invalidParameter("MaxIterations must be >= 1, got %d", cfg.MaxIterations)
	}
	switch cfg.Algorithm {
	case AlgorithmAuto, AlgorithmBrute, AlgorithmKDTree, AlgorithmBallTree:
		// valid
	default:
		return invalidParameter("invalid Algorithm %q", cfg.Algorithm)
	}
	if cfg.LeafSize < 1 {
		return invalidParameter("LeafSize must be >= 1, got %d", cfg.LeafSize)
	}
	if cfg.Workers < 0 {
		return invalidParameter("Workers must be >= 0 (0 means runtime.NumCPU()), got %d", cfg.Workers)
	}
	if m, ok := cfg.Metric.(MinkowskiMetric); ok && !(m.P >= 1) {
		return invalidParameter("MinkowskiMetric P must be >= 1, got %v", m.P)
	}
	return nil
}

// Process runs OPTICS on coordinate data. Each element is a point; all points
// must have the same, non-zero dimensionality.
func Process(data [][]float64, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	q, err := coordinateQuery(data, cfg)
	if err != nil {
		return nil, err
	}
	return process(q, cfg)
}

// ProcessPrecomputed runs OPTICS on a precomputed distance matrix.
// distMatrix is a flat []float64 of length n*n in row-major order, where
// distMatrix[i*n+j] is the distance between points i and j. The matrix must be
// symmetric with a zero diagonal. The Config.Metric and Config.Algorithm
// fields are ignored.
func ProcessPrecomputed(distMatrix []float64, n int, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	q, err := matrixQuery(distMatrix, n)
	if err != nil {
		return nil, err
	}
	return process(q, cfg)
}

// coordinateQuery validates data and builds the configured neighbor index.
func coordinateQuery(data [][]float64, cfg Config) (NeighborQuery, error) {
	n := len(data)
	if n == 0 {
		return nil, invalidParameter("dataset must not be empty")
	}

	dims := len(data[0])
	if dims == 0 {
		return nil, invalidParameter("points must have at least one dimension")
	}
	flatData := make([]float64, n*dims)
	for i, row := range data {
		if len(row) != dims {
			return nil, invalidParameter("point %d has %d dimensions, want %d", i, len(row), dims)
		}
		copy(flatData[i*dims:], row)
	}

	algo, err := selectAlgorithm(cfg, dims)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug("building neighbor index",
		zap.String("algorithm", string(algo)),
		zap.Int("points", n),
		zap.Int("dims", dims))
	return newNeighborQuery(flatData, n, dims, cfg, algo)
}

// matrixQuery validates a precomputed distance matrix and wraps it.
func matrixQuery(distMatrix []float64, n int) (NeighborQuery, error) {
	if n <= 0 {
		return nil, invalidParameter("dataset must not be empty")
	}
	if len(distMatrix) != n*n {
		return nil, invalidParameter("distMatrix length %d does not match n*n = %d (n=%d)", len(distMatrix), n*n, n)
	}
	for i, d := range distMatrix {
		if d < 0 || math.IsNaN(d) {
			return nil, invalidParameter("distMatrix[%d][%d] must be a non-negative distance, got %v", i/n, i%n, d)
		}
	}
	for i := 0; i < n; i++ {
		if d := distMatrix[i*n+i]; d != 0 {
			return nil, invalidParameter("distMatrix[%d][%d] must be 0, got %v", i, i, d)
		}
		for j := i + 1; j < n; j++ {
			if a, b := distMatrix[i*n+j], distMatrix[j*n+i]; a != b {
				return nil, invalidParameter("distMatrix must be symmetric, [%d][%d] = %v but [%d][%d] = %v", i, j, a, j, i, b)
			}
		}
	}
	return NewDistanceMatrix(distMatrix, n), nil
}

// process builds the ordering, extracts clusters and, when a cluster count
// was requested and not met, rebuilds once with a searched radius.
func process(q NeighborQuery, cfg Config) (*Result, error) {
	log := cfg.Logger

	order, err := BuildOrdering(q, cfg.Radius, cfg.MinPts)
	if err != nil {
		return nil, err
	}
	part := ExtractClusters(order, cfg.Radius)
	log.Debug("extracted clusters",
		zap.Float64("radius", cfg.Radius),
		zap.Int("min_pts", cfg.MinPts),
		zap.Int("clusters", len(part.Clusters)),
		zap.Int("noise", len(part.Noise)))

	res := &Result{Radius: cfg.Radius}

	if cfg.ClusterCount > 0 && len(part.Clusters) != cfg.ClusterCount {
		radius, borders, ok := order.Reachability().FindRadius(cfg.ClusterCount, cfg.MaxIterations)
		if !ok {
			log.Debug("no radius yields the requested cluster count",
				zap.Int("requested", cfg.ClusterCount),
				zap.Int("found", len(part.Clusters)))
		} else {
			// The radius also bounds the neighborhoods visited, so the whole
			// ordering has to be rebuilt rather than re-extracted.
			log.Debug("rebuilding ordering with searched radius",
				zap.Float64("radius", radius),
				zap.Ints("borders", borders))
			order, err = BuildOrdering(q, radius, cfg.MinPts)
			if err != nil {
				return nil, err
			}
			part = ExtractClusters(order, radius)
			res.Radius = radius
			res.Borders = borders
			res.Rebuilt = true
		}
	}

	res.Partition = part
	res.Labels = part.Labels(q.NumPoints())
	res.Order = order
	res.Ordering = order.Reachability()
	return res, nil
}
