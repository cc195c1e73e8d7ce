// Package config loads the optics command configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/TrevorS/optics"
)

// File is the on-disk configuration of one clustering run.
type File struct {
	Radius        float64 `yaml:"radius" validate:"gte=0"`
	MinPts        int     `yaml:"min_pts" validate:"gte=1"`
	ClusterCount  int     `yaml:"cluster_count" validate:"gte=0"`
	MaxIterations int     `yaml:"max_iterations" validate:"gte=0"`

	// Metric is one of euclidean, manhattan, chebyshev, cosine, minkowski.
	Metric     string  `yaml:"metric" validate:"omitempty,oneof=euclidean manhattan chebyshev cosine minkowski"`
	MinkowskiP float64 `yaml:"minkowski_p" validate:"omitempty,gte=1"`

	Algorithm string `yaml:"algorithm" validate:"omitempty,oneof=auto brute kdtree balltree"`
	LeafSize  int    `yaml:"leaf_size" validate:"gte=0"`
	Workers   int    `yaml:"workers" validate:"gte=0"`

	// Precomputed reads the dataset as an n×n distance matrix.
	Precomputed bool `yaml:"precomputed"`

	// EstimateQuantile, when > 0, replaces Radius with the estimated radius
	// at this k-distance quantile. Coordinate data only.
	EstimateQuantile float64 `yaml:"estimate_quantile" validate:"gte=0,lte=1"`
}

// Default mirrors optics.DefaultConfig.
func Default() File {
	d := optics.DefaultConfig()
	return File{
		Radius:        d.Radius,
		MinPts:        d.MinPts,
		MaxIterations: d.MaxIterations,
		Metric:        "euclidean",
		Algorithm:     string(d.Algorithm),
		LeafSize:      d.LeafSize,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads path over the defaults. Unknown keys are rejected.
func Load(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads YAML from r over the defaults and validates the result.
func Decode(r io.Reader) (File, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return File{}, err
	}
	cfg := Default()
	if len(bytes.TrimSpace(raw)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return File{}, fmt.Errorf("decode yaml: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return File{}, err
	}
	return cfg, nil
}

// Validate checks field ranges.
func (f File) Validate() error {
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			v := verrs[0]
			return fmt.Errorf("config: %s fails %q (value %v)", v.Field(), v.Tag(), v.Value())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DistanceMetric returns the metric named by the file.
func (f File) DistanceMetric() optics.DistanceMetric {
	switch f.Metric {
	case "manhattan":
		return optics.ManhattanMetric{}
	case "chebyshev":
		return optics.ChebyshevMetric{}
	case "cosine":
		return optics.CosineMetric{}
	case "minkowski":
		p := f.MinkowskiP
		if p == 0 {
			p = 2
		}
		return optics.MinkowskiMetric{P: p}
	default:
		return optics.EuclideanMetric{}
	}
}

// Options converts the file into a library Config.
func (f File) Options(logger *zap.Logger) optics.Config {
	return optics.Config{
		Radius:        f.Radius,
		MinPts:        f.MinPts,
		ClusterCount:  f.ClusterCount,
		MaxIterations: f.MaxIterations,
		Metric:        f.DistanceMetric(),
		Algorithm:     optics.Algorithm(f.Algorithm),
		LeafSize:      f.LeafSize,
		Workers:       f.Workers,
		Logger:        logger,
	}
}
