package optics

import (
	"cmp"
	"slices"
)

// Neighbor is a point found within a query radius together with its
// distance to the query point.
type Neighbor struct {
	Index    int
	Distance float64
}

// NeighborQuery answers fixed-radius neighborhood queries over a dataset.
// Implementations must be safe for concurrent read-only use.
type NeighborQuery interface {
	// NumPoints returns the number of points in the dataset.
	NumPoints() int

	// Neighbors returns every point other than point itself whose distance
	// to point is <= radius. The order of the result is unspecified.
	Neighbors(point int, radius float64) []Neighbor
}

// KNNQuery is implemented by spatial indexes that can also answer
// k-nearest-neighbor queries.
type KNNQuery interface {
	NeighborQuery

	// QueryKNN finds the k nearest neighbors for each row in queryData.
	// queryData is flat row-major with queryRows rows.
	// Returns per-query neighbor indices and distances (both sorted by distance).
	QueryKNN(queryData []float64, queryRows, k int) (indices [][]int, distances [][]float64)

	// Data returns the flat row-major point data owned by the index.
	Data() []float64
}

// sortNeighbors orders neighbors by ascending distance, breaking ties by
// index, so every NeighborQuery yields the same sequence for equal distances.
func sortNeighbors(neighbors []Neighbor) {
	slices.SortFunc(neighbors, func(a, b Neighbor) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
}
