package optics

import "sync"

// ComputePairwiseDistances computes the full n×n distance matrix of flat
// row-major data with n rows and dims columns. The result is flat, row-major
// and symmetric with a zero diagonal.
func ComputePairwiseDistances(data []float64, n, dims int, metric DistanceMetric) []float64 {
	out := make([]float64, n*n)
	for i := 0; i < n; i++ {
		fillRow(out, data, n, dims, i, metric)
	}
	return out
}

// ComputePairwiseDistancesParallel is ComputePairwiseDistances spread over
// numWorkers goroutines; numWorkers <= 1 runs sequentially. The result is
// bitwise identical to the sequential one.
func ComputePairwiseDistancesParallel(data []float64, n, dims int, metric DistanceMetric, numWorkers int) []float64 {
	if numWorkers <= 1 || n <= 1 {
		return ComputePairwiseDistances(data, n, dims, metric)
	}

	out := make([]float64, n*n)
	workers := min(numWorkers, n)

	// Rows are dealt round-robin: row i holds n-i-1 cells, so contiguous
	// ranges would leave the first worker with most of the triangle. Every
	// cell belongs to exactly one row.
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Go(func() {
			for i := w; i < n; i += workers {
				fillRow(out, data, n, dims, i, metric)
			}
		})
	}
	wg.Wait()
	return out
}

// fillRow computes d(i, j) for every j > i and mirrors it below the diagonal.
func fillRow(out, data []float64, n, dims, i int, metric DistanceMetric) {
	a := data[i*dims : (i+1)*dims]
	for j := i + 1; j < n; j++ {
		d := metric.Distance(a, data[j*dims:(j+1)*dims])
		out[i*n+j] = d
		out[j*n+i] = d
	}
}
