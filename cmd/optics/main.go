// Command optics clusters a CSV dataset with OPTICS and prints a JSON report.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TrevorS/optics"
	"github.com/TrevorS/optics/internal/config"
	"github.com/TrevorS/optics/internal/dataset"
	"github.com/TrevorS/optics/internal/report"
)

type options struct {
	dataPath   string
	configPath string
	matrix     bool
	radius     float64
	minPts     int
	clusters   int
	estimate   float64
	debug      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.dataPath, "data", "", "CSV file with one point (or matrix row) per line; - for stdin")
	flag.StringVar(&opts.configPath, "config", "", "optional YAML configuration file")
	flag.BoolVar(&opts.matrix, "matrix", false, "treat the data as a precomputed n×n distance matrix")
	flag.Float64Var(&opts.radius, "radius", -1, "connectivity radius (overrides config)")
	flag.IntVar(&opts.minPts, "minpts", 0, "minimum neighbors of a core point (overrides config)")
	flag.IntVar(&opts.clusters, "clusters", -1, "requested number of clusters (overrides config)")
	flag.Float64Var(&opts.estimate, "estimate", 0, "estimate the radius at this k-distance quantile (0..1)")
	flag.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flag.Parse()

	logger, err := newLogger(opts.debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	if err := run(opts, runID, logger, os.Stdout); err != nil {
		logger.Error("clustering failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(opts options, runID string, logger *zap.Logger, out io.Writer) error {
	if opts.dataPath == "" {
		return fmt.Errorf("-data is required")
	}

	file := config.Default()
	if opts.configPath != "" {
		var err error
		if file, err = config.Load(opts.configPath); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	applyFlags(&file, opts)
	if err := file.Validate(); err != nil {
		return err
	}

	in, err := openInput(opts.dataPath)
	if err != nil {
		return err
	}
	defer in.Close()

	cfg := file.Options(logger)

	var res *optics.Result
	if file.Precomputed {
		dist, n, err := dataset.ReadMatrix(in)
		if err != nil {
			return fmt.Errorf("read matrix: %w", err)
		}
		logger.Info("loaded distance matrix", zap.Int("points", n))
		res, err = optics.ProcessPrecomputed(dist, n, cfg)
		if err != nil {
			return err
		}
	} else {
		points, err := dataset.ReadPoints(in)
		if err != nil {
			return fmt.Errorf("read points: %w", err)
		}
		logger.Info("loaded points", zap.Int("points", len(points)))
		if file.EstimateQuantile > 0 {
			r, err := optics.EstimateRadius(points, cfg.MinPts, file.EstimateQuantile, cfg)
			if err != nil {
				return fmt.Errorf("estimate radius: %w", err)
			}
			logger.Info("estimated radius",
				zap.Float64("quantile", file.EstimateQuantile),
				zap.Float64("radius", r))
			cfg.Radius = r
		}
		res, err = optics.Process(points, cfg)
		if err != nil {
			return err
		}
	}

	logger.Info("clustering complete",
		zap.Int("clusters", len(res.Clusters)),
		zap.Int("noise", len(res.Noise)),
		zap.Float64("radius", res.Radius),
		zap.Bool("rebuilt", res.Rebuilt))

	return report.Write(out, report.New(runID, res))
}

// applyFlags lets explicitly set command-line flags override the file.
func applyFlags(file *config.File, opts options) {
	if opts.matrix {
		file.Precomputed = true
	}
	if opts.radius >= 0 {
		file.Radius = opts.radius
	}
	if opts.minPts > 0 {
		file.MinPts = opts.minPts
	}
	if opts.clusters >= 0 {
		file.ClusterCount = opts.clusters
	}
	if opts.estimate > 0 {
		file.EstimateQuantile = opts.estimate
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data: %w", err)
	}
	return f, nil
}
