package optics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// EstimateRadius suggests a connectivity radius for the given MinPts: the
// empirical quantile of every point's distance to its MinPts-th nearest
// neighbor. A quantile around 0.9 places most points inside a dense
// neighborhood while leaving sparse outliers as noise.
//
// cfg.Metric, cfg.Algorithm and cfg.LeafSize choose how the neighbors are
// found; cfg.Radius and cfg.ClusterCount are ignored.
func EstimateRadius(data [][]float64, minPts int, quantile float64, cfg Config) (float64, error) {
	applyDefaults(&cfg)
	if minPts < 1 || minPts >= len(data) {
		return 0, invalidParameter("MinPts must be in [1, %d), got %d", len(data), minPts)
	}
	if quantile < 0 || quantile > 1 || math.IsNaN(quantile) {
		return 0, invalidParameter("quantile must be in [0, 1], got %v", quantile)
	}
	cfg.Radius = 0
	cfg.MinPts = minPts
	if err := validateConfig(&cfg); err != nil {
		return 0, err
	}

	q, err := coordinateQuery(data, cfg)
	if err != nil {
		return 0, err
	}

	kdist := KDistances(q, minPts)
	sort.Float64s(kdist)
	return stat.Quantile(quantile, stat.Empirical, kdist, nil), nil
}
