package optics

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// Sweep runs one independent ordering build and extraction per radius over a
// neighbor index built once from data. Builds run concurrently, at most
// cfg.Workers at a time, and each owns its descriptors. Results are returned
// in the order of radii. cfg.Radius and cfg.ClusterCount are ignored.
func Sweep(data [][]float64, radii []float64, cfg Config) ([]*Result, error) {
	applyDefaults(&cfg)
	cfg.ClusterCount = 0
	for _, r := range radii {
		if r < 0 || math.IsNaN(r) {
			return nil, invalidParameter("radius must be >= 0, got %v", r)
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	q, err := coordinateQuery(data, cfg)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, len(radii))
	var g errgroup.Group
	g.SetLimit(cfg.Workers)
	for i, r := range radii {
		g.Go(func() error {
			c := cfg
			c.Radius = r
			res, err := process(q, c)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
