package optics

import "math"

// KDistances returns, for every point of q, the distance to its k-th nearest
// neighbor other than itself. k is clamped to [0, n-1]; with k == 0 every
// distance is 0.
//
// A spatial index answers with one KNN query per point. Any other
// NeighborQuery is asked for the unbounded neighborhood of each point.
//
// Unlike a core distance, a k-distance is not bounded by a radius, which
// makes the sorted k-distances a guide for choosing one.
func KDistances(q NeighborQuery, k int) []float64 {
	n := q.NumPoints()
	if n == 0 {
		return nil
	}
	k = max(0, min(k, n-1))
	out := make([]float64, n)
	if k == 0 {
		return out
	}

	if idx, ok := q.(KNNQuery); ok {
		// Self takes one of the k+1 slots unless duplicates crowd it out.
		indices, distances := idx.QueryKNN(idx.Data(), n, k+1)
		for p := range out {
			out[p] = kthDistance(knnNeighbors(p, indices[p], distances[p]), k)
		}
		return out
	}

	for p := range out {
		out[p] = kthDistance(q.Neighbors(p, math.Inf(1)), k)
	}
	return out
}

// knnNeighbors turns one row of a KNN answer into neighbors of point.
func knnNeighbors(point int, indices []int, distances []float64) []Neighbor {
	out := make([]Neighbor, 0, len(indices))
	for i, j := range indices {
		if j != point {
			out = append(out, Neighbor{Index: j, Distance: distances[i]})
		}
	}
	return out
}

// kthDistance is the distance of the k-th closest of neighbors (1-based).
func kthDistance(neighbors []Neighbor, k int) float64 {
	sortNeighbors(neighbors)
	return neighbors[k-1].Distance
}
