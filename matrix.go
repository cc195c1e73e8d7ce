package optics

// DistanceMatrix answers neighborhood queries from a precomputed n×n
// distance matrix by scanning one row and filtering by radius.
type DistanceMatrix struct {
	dist []float64 // flat row-major, dist[i*n+j]
	n    int
}

// NewDistanceMatrix wraps a flat row-major n*n distance matrix. The slice is
// not copied and must not be modified while the matrix is in use.
func NewDistanceMatrix(distMatrix []float64, n int) *DistanceMatrix {
	return &DistanceMatrix{dist: distMatrix, n: n}
}

func (m *DistanceMatrix) NumPoints() int { return m.n }

// At returns the distance between points i and j.
func (m *DistanceMatrix) At(i, j int) float64 { return m.dist[i*m.n+j] }

// Neighbors returns all points j != point with dist[point][j] <= radius.
func (m *DistanceMatrix) Neighbors(point int, radius float64) []Neighbor {
	row := m.dist[point*m.n : (point+1)*m.n]
	var out []Neighbor
	for j, d := range row {
		if j != point && d <= radius {
			out = append(out, Neighbor{Index: j, Distance: d})
		}
	}
	return out
}
