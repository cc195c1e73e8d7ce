package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrevorS/optics"
)

func process(t *testing.T, data [][]float64, radius float64) *optics.Result {
	t.Helper()
	cfg := optics.DefaultConfig()
	cfg.Radius = radius
	cfg.MinPts = 1
	res, err := optics.Process(data, cfg)
	require.NoError(t, err)
	return res
}

func TestNew(t *testing.T) {
	// Reachability plot: 1, 3, 1
	data := [][]float64{{0}, {1}, {4}, {5}}
	res := process(t, data, 4)

	rep := New("run-1", res)
	assert.Equal(t, "run-1", rep.RunID)
	assert.Equal(t, 4, rep.Points)
	assert.Equal(t, 4.0, rep.Radius)
	assert.Equal(t, 1, rep.MinPts)
	assert.Equal(t, []int{4}, rep.ClusterSizes)
	assert.Equal(t, []int{}, rep.Noise)
	assert.Equal(t, []int{0, 0, 0, 0}, rep.Labels)
	assert.Equal(t, []float64{1, 3, 1}, rep.Ordering)

	assert.InDelta(t, 5.0/3, rep.Summary.Mean, 1e-12)
	assert.InDelta(t, 3.0, rep.Summary.Max, 1e-12)
	// Sample standard deviation of {1, 3, 1}.
	assert.InDelta(t, 1.1547005383792515, rep.Summary.StdDev, 1e-12)
}

func TestNew_AllNoise(t *testing.T) {
	res := process(t, [][]float64{{0}, {10}}, 1)
	rep := New("run-2", res)
	assert.Equal(t, [][]int{}, rep.Clusters)
	assert.Equal(t, []int{0, 1}, rep.Noise)
	assert.Zero(t, rep.Summary)
}

func TestWrite(t *testing.T) {
	res := process(t, [][]float64{{0}, {10}}, 1)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, New("run-3", res)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-3", decoded["run_id"])
	assert.Equal(t, []any{}, decoded["clusters"])
	assert.Equal(t, []any{0.0, 1.0}, decoded["noise"])
	assert.NotContains(t, decoded, "borders")
}
