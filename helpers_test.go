package optics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const floatTol = 1e-10

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// newTestRNG creates a deterministic RNG for test data generation.
func newTestRNG(seed int64) *testRNG {
	// Simple LCG, enough for generating test points.
	return &testRNG{state: uint64(seed)}
}

type testRNG struct {
	state uint64
}

func (r *testRNG) Float64() float64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return float64(r.state>>11) / float64(1<<53)
}

// twoBlobs returns two tight groups of perBlob points each, centered at
// (0,0) and (10,10), with every point within 0.5 of its center per axis.
func twoBlobs(seed int64, perBlob int) [][]float64 {
	rng := newTestRNG(seed)
	data := make([][]float64, 0, 2*perBlob)
	for _, c := range []float64{0, 10} {
		for i := 0; i < perBlob; i++ {
			data = append(data, []float64{c + rng.Float64()*0.5, c + rng.Float64()*0.5})
		}
	}
	return data
}

func randomPoints(seed int64, n, dims int, scale float64) [][]float64 {
	rng := newTestRNG(seed)
	data := make([][]float64, n)
	for i := range data {
		data[i] = make([]float64, dims)
		for j := range data[i] {
			data[i][j] = rng.Float64() * scale
		}
	}
	return data
}

func flatten(data [][]float64) (flat []float64, n, dims int) {
	n = len(data)
	if n == 0 {
		return nil, 0, 0
	}
	dims = len(data[0])
	flat = make([]float64, 0, n*dims)
	for _, row := range data {
		flat = append(flat, row...)
	}
	return flat, n, dims
}

func pairwise(data [][]float64, metric DistanceMetric) []float64 {
	flat, n, dims := flatten(data)
	return ComputePairwiseDistances(flat, n, dims, metric)
}

// requirePartitionCovers checks every index in [0, n) appears exactly once
// across the clusters and the noise.
func requirePartitionCovers(t *testing.T, part Partition, n int) {
	t.Helper()
	seen := make([]int, n)
	total := len(part.Noise)
	for _, idx := range part.Noise {
		seen[idx]++
	}
	for c, members := range part.Clusters {
		require.NotEmpty(t, members, "cluster %d is empty", c)
		total += len(members)
		for _, idx := range members {
			seen[idx]++
		}
	}
	require.Equal(t, n, total, "clusters + noise must account for every point")
	for i, s := range seen {
		require.Equal(t, 1, s, "point %d appears %d times", i, s)
	}
}
