package optics

// Partition is the flat clustering extracted from a cluster order.
// Every point index appears exactly once, either in one cluster or in Noise.
type Partition struct {
	// Clusters lists the member indices of each cluster in visit order.
	Clusters [][]int

	// Noise lists the indices of points not assigned to any cluster.
	Noise []int
}

// Labels returns the cluster id of every point (0-indexed, in the order
// clusters were opened) or -1 for noise. n is the number of points.
func (p Partition) Labels(n int) []int {
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	for id, members := range p.Clusters {
		for _, idx := range members {
			labels[idx] = id
		}
	}
	return labels
}

// Sizes returns the number of members of each cluster.
func (p Partition) Sizes() []int {
	sizes := make([]int, len(p.Clusters))
	for i, c := range p.Clusters {
		sizes[i] = len(c)
	}
	return sizes
}

// ExtractClusters separates the order into clusters at radius eps in a single
// pass. A point that is not reachable within eps opens a new cluster if it is
// a core point within eps and is noise otherwise; every other point joins the
// most recently opened cluster.
func ExtractClusters(order *ClusterOrder, eps float64) Partition {
	var part Partition
	current := -1 // index into part.Clusters; -1 appends to noise

	for _, p := range order.Order {
		d := order.Descriptors[p]
		if !d.HasReachability() || d.ReachabilityDistance > eps {
			if d.HasCoreDistance() && d.CoreDistance <= eps {
				part.Clusters = append(part.Clusters, []int{p})
				current = len(part.Clusters) - 1
			} else {
				part.Noise = append(part.Noise, p)
			}
			continue
		}
		if current < 0 {
			part.Noise = append(part.Noise, p)
		} else {
			part.Clusters[current] = append(part.Clusters[current], p)
		}
	}

	return part
}
