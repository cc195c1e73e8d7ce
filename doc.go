// Package optics implements OPTICS (Ordering Points To Identify the
// Clustering Structure), a density-based clustering algorithm.
//
// OPTICS does not assign points to clusters directly. It visits every point
// in an order that respects density connectivity and records two distances
// per point: the core distance (how dense its neighborhood is) and the
// reachability distance (how close it is to the points visited before it).
// Clusters are then separated by a second pass over that order at a chosen
// radius.
//
// Basic usage:
//
//	cfg := optics.DefaultConfig()
//	cfg.Radius = 0.8
//	cfg.MinPts = 4
//	result, err := optics.Process(data, cfg)
//	// result.Clusters[c] lists the point indices of cluster c in visit order
//	// result.Noise lists the points that belong to no cluster
//	// result.Ordering is the reachability plot
//
// For precomputed distance matrices:
//
//	result, err := optics.ProcessPrecomputed(distMatrix, n, cfg)
//
// # Requesting a cluster count
//
// Set Config.ClusterCount to ask for a specific number of clusters. When the
// configured radius yields a different count, the reachability plot is
// searched for a radius that separates it into ClusterCount valleys and the
// ordering is rebuilt with that radius. Result.Radius reports the radius
// actually used.
//
// # Lower-level building blocks
//
// BuildOrdering, ExtractClusters and the ReachabilityPlot methods expose
// each stage separately, over any NeighborQuery: KDTree, BallTree or
// DistanceMatrix.
package optics
