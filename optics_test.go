package optics

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 0.5, cfg.Radius)
	assert.Equal(t, 5, cfg.MinPts)
	assert.Zero(t, cfg.ClusterCount)
	assert.Equal(t, DefaultMaxIterations, cfg.MaxIterations)
	assert.Equal(t, EuclideanMetric{}, cfg.Metric)
	assert.Equal(t, AlgorithmAuto, cfg.Algorithm)
	assert.Equal(t, 40, cfg.LeafSize)
	require.NoError(t, validateConfig(&cfg))
}

func TestProcess_InvalidConfig(t *testing.T) {
	data := twoBlobs(1, 5)
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative radius", func(c *Config) { c.Radius = -1 }},
		{"NaN radius", func(c *Config) { c.Radius = math.NaN() }},
		{"zero MinPts", func(c *Config) { c.MinPts = 0 }},
		{"negative ClusterCount", func(c *Config) { c.ClusterCount = -2 }},
		{"negative MaxIterations", func(c *Config) { c.MaxIterations = -1 }},
		{"unknown algorithm", func(c *Config) { c.Algorithm = "octree" }},
		{"negative LeafSize", func(c *Config) { c.LeafSize = -5 }},
		{"negative Workers", func(c *Config) { c.Workers = -1 }},
		{"minkowski P below 1", func(c *Config) { c.Metric = MinkowskiMetric{P: 0.5} }},
		{"minkowski NaN P", func(c *Config) { c.Metric = MinkowskiMetric{P: math.NaN()} }},
		{"balltree minkowski P below 1", func(c *Config) {
			c.Algorithm = AlgorithmBallTree
			c.Metric = MinkowskiMetric{P: 0.5}
		}},
		{"brute minkowski P below 1", func(c *Config) {
			c.Algorithm = AlgorithmBrute
			c.Metric = MinkowskiMetric{P: 0.5}
		}},
		{"kdtree with cosine", func(c *Config) {
			c.Algorithm = AlgorithmKDTree
			c.Metric = CosineMetric{}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			_, err := Process(data, cfg)
			require.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestProcess_InvalidData(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name string
		data [][]float64
	}{
		{"nil", nil},
		{"empty", [][]float64{}},
		{"zero dimensions", [][]float64{{}, {}}},
		{"ragged rows", [][]float64{{0, 0}, {1}, {2, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Process(tt.data, cfg)
			require.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestProcessPrecomputed_InvalidMatrix(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name   string
		matrix []float64
		n      int
	}{
		{"empty", nil, 0},
		{"length mismatch", []float64{0, 1, 1}, 2},
		{"negative distance", []float64{0, -1, -1, 0}, 2},
		{"NaN distance", []float64{0, math.NaN(), math.NaN(), 0}, 2},
		{"non-zero diagonal", []float64{0, 1, 1, 0.5}, 2},
		{"asymmetric", []float64{0, 1, 2, 1, 0, 3, 2, 4, 0}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ProcessPrecomputed(tt.matrix, tt.n, cfg)
			require.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestProcess_TwoBlobs(t *testing.T) {
	data := twoBlobs(7, 5)
	cfg := DefaultConfig()
	cfg.Radius = 2
	cfg.MinPts = 2

	res, err := Process(data, cfg)
	require.NoError(t, err)

	require.Len(t, res.Clusters, 2)
	assert.Empty(t, res.Noise)
	assert.Equal(t, []int{5, 5}, res.Sizes())
	requirePartitionCovers(t, res.Partition, len(data))

	// The scan starts at point 0, so the first blob comes first.
	first := slices.Clone(res.Clusters[0])
	slices.Sort(first)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, first)
	assert.Equal(t, 0, res.Clusters[0][0])

	for i, label := range res.Labels {
		assert.Equal(t, i/5, label, "point %d", i)
	}
	assert.Equal(t, 2.0, res.Radius)
	assert.False(t, res.Rebuilt)
	assert.Nil(t, res.Borders)
	assert.Len(t, res.Ordering, len(data)-2)
	assert.Equal(t, res.Order.Reachability(), res.Ordering)
}

func TestProcess_SinglePointIsNoise(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinPts = 1

	res, err := Process([][]float64{{1, 2}}, cfg)
	require.NoError(t, err)
	assert.Empty(t, res.Clusters)
	assert.Equal(t, []int{0}, res.Noise)
	assert.Equal(t, []int{-1}, res.Labels)
	assert.Empty(t, res.Ordering)
}

func TestProcess_MinPtsAboveDatasetSize(t *testing.T) {
	data := twoBlobs(3, 4)
	cfg := DefaultConfig()
	cfg.Radius = 100
	cfg.MinPts = len(data)

	res, err := Process(data, cfg)
	require.NoError(t, err)
	assert.Empty(t, res.Clusters)
	assert.Len(t, res.Noise, len(data))
}

func TestProcess_IndexEquivalence(t *testing.T) {
	data := randomPoints(11, 80, 2, 10)
	cfg := DefaultConfig()
	cfg.Radius = 1.5
	cfg.MinPts = 4

	pre, err := ProcessPrecomputed(pairwise(data, EuclideanMetric{}), len(data), cfg)
	require.NoError(t, err)
	requirePartitionCovers(t, pre.Partition, len(data))

	for _, algo := range []Algorithm{AlgorithmBrute, AlgorithmKDTree, AlgorithmBallTree} {
		t.Run(string(algo), func(t *testing.T) {
			c := cfg
			c.Algorithm = algo
			res, err := Process(data, c)
			require.NoError(t, err)
			assert.Equal(t, pre.Order.Order, res.Order.Order)
			assert.Equal(t, pre.Partition, res.Partition)
			assert.Equal(t, pre.Ordering, res.Ordering)
		})
	}
}

func TestProcess_PermutationInvariance(t *testing.T) {
	data := twoBlobs(21, 12)
	// Add a far outlier so noise is part of the comparison.
	data = append(data, []float64{50, -50})

	perm := make([]int, len(data))
	for i := range perm {
		perm[i] = (i*7 + 3) % len(data)
	}
	shuffled := make([][]float64, len(data))
	for i, p := range perm {
		shuffled[i] = data[p]
	}

	cfg := DefaultConfig()
	cfg.Radius = 2
	cfg.MinPts = 3

	a, err := Process(data, cfg)
	require.NoError(t, err)
	b, err := Process(shuffled, cfg)
	require.NoError(t, err)

	sizesA, sizesB := a.Sizes(), b.Sizes()
	slices.Sort(sizesA)
	slices.Sort(sizesB)
	assert.Equal(t, []int{12, 12}, sizesA)
	assert.Equal(t, sizesA, sizesB)
	assert.Len(t, a.Noise, 1)
	assert.Len(t, b.Noise, 1)

	// Same grouping under the permutation.
	for i := range shuffled {
		for j := range shuffled {
			same := a.Labels[perm[i]] == a.Labels[perm[j]]
			assert.Equal(t, same, b.Labels[i] == b.Labels[j], "points %d and %d", i, j)
		}
	}
}

func TestProcess_ClusterCountRebuild(t *testing.T) {
	data := twoBlobs(5, 5)
	cfg := DefaultConfig()
	cfg.Radius = 20
	cfg.MinPts = 2
	cfg.ClusterCount = 2

	// At radius 20 both blobs are one cluster.
	single := cfg
	single.ClusterCount = 0
	res, err := Process(data, single)
	require.NoError(t, err)
	require.Len(t, res.Clusters, 1)

	res, err = Process(data, cfg)
	require.NoError(t, err)
	assert.True(t, res.Rebuilt)
	assert.Equal(t, []int{4}, res.Borders)
	assert.Greater(t, res.Radius, 1.0)
	assert.Less(t, res.Radius, 13.0)
	assert.Equal(t, res.Radius, res.Order.Radius)
	assert.Equal(t, []int{5, 5}, res.Sizes())
	assert.Empty(t, res.Noise)
}

func TestProcess_ClusterCountNotFound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Radius = 10
	cfg.MinPts = 1
	cfg.ClusterCount = 3

	res, err := Process(line(0, 1, 2, 3), cfg)
	require.NoError(t, err)
	assert.False(t, res.Rebuilt)
	assert.Nil(t, res.Borders)
	assert.Equal(t, 10.0, res.Radius)
	assert.Equal(t, [][]int{{0, 1, 2, 3}}, res.Clusters)
}

func TestProcess_ClusterCountAlreadyMet(t *testing.T) {
	data := twoBlobs(5, 5)
	cfg := DefaultConfig()
	cfg.Radius = 2
	cfg.MinPts = 2
	cfg.ClusterCount = 2

	res, err := Process(data, cfg)
	require.NoError(t, err)
	assert.False(t, res.Rebuilt)
	assert.Equal(t, 2.0, res.Radius)
}

func TestProcess_Logs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := DefaultConfig()
	cfg.Radius = 20
	cfg.MinPts = 2
	cfg.ClusterCount = 2
	cfg.Algorithm = AlgorithmKDTree
	cfg.Logger = zap.New(core)

	_, err := Process(twoBlobs(5, 5), cfg)
	require.NoError(t, err)

	index := logs.FilterMessage("building neighbor index").All()
	require.Len(t, index, 1)
	assert.Equal(t, "kdtree", index[0].ContextMap()["algorithm"])

	extracted := logs.FilterMessage("extracted clusters").All()
	require.Len(t, extracted, 1)
	assert.EqualValues(t, 1, extracted[0].ContextMap()["clusters"])
	assert.Equal(t, 1, logs.FilterMessage("rebuilding ordering with searched radius").Len())
}
