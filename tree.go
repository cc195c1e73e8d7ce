package optics

import (
	"cmp"
	"container/heap"
	"math"
	"slices"
)

// NodeData describes a single node in a spatial tree. A node owns the points
// at tree positions [IdxStart, IdxEnd) of the index permutation. Slots of the
// node array the build never reached have IdxStart == IdxEnd.
type NodeData struct {
	IdxStart, IdxEnd int
	IsLeaf           bool
	Radius           float64 // ball tree radius; 0 for KD-tree
}

func (nd NodeData) empty() bool { return nd.IdxStart == nd.IdxEnd }

// boundSlack is the relative margin a lower bound gives up when its
// arithmetic can round above the true distance, so a point lying exactly at
// the query radius is never pruned with its subtree.
const boundSlack = 1e-9

// nodeGeometry is the per-node summary a tree prunes its searches with.
type nodeGeometry interface {
	// fit summarizes the points at tree positions [start, end) as node.
	fit(node, start, end int)

	// minDist bounds from below the distance from query to every point of node.
	minDist(node int, query []float64) float64
}

// binaryTree is the array layout shared by KDTree and BallTree: node i has
// children 2i+1 and 2i+2, and idx permutes the points so that every node
// owns a contiguous range of it.
type binaryTree struct {
	data     []float64 // flat row-major point data (n * dims)
	n, dims  int
	leafSize int
	metric   DistanceMetric
	idx      []int // tree position -> original index
	nodes    []NodeData
	built    int
	geom     nodeGeometry
}

func newBinaryTree(data []float64, n, dims int, metric DistanceMetric, leafSize int) binaryTree {
	leafSize = max(leafSize, 1)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return binaryTree{
		data:     slices.Clone(data),
		n:        n,
		dims:     dims,
		leafSize: leafSize,
		metric:   metric,
		idx:      idx,
		nodes:    make([]NodeData, 0, treeCapacity(n, leafSize)),
	}
}

// treeCapacity is the node count of a median-split tree over n points: the
// halves of a split differ by at most one point, so every leaf sits at the
// same depth or one above it.
func treeCapacity(n, leafSize int) int {
	leaves := max(1, (n+leafSize-1)/leafSize)
	width := 1
	for width < leaves {
		width <<= 1
	}
	return 2*width - 1
}

// build splits positions [start, end) at the median of their widest
// coordinate until no leaf holds more than leafSize points.
func (t *binaryTree) build(node, start, end int) {
	if node >= len(t.nodes) {
		t.nodes = append(t.nodes, make([]NodeData, node+1-len(t.nodes))...)
	}
	leaf := end-start <= t.leafSize
	t.nodes[node] = NodeData{IdxStart: start, IdxEnd: end, IsLeaf: leaf}
	t.geom.fit(node, start, end)
	t.built++
	if leaf {
		return
	}

	dim := t.widestDim(start, end)
	slices.SortFunc(t.idx[start:end], func(a, b int) int {
		return cmp.Compare(t.data[a*t.dims+dim], t.data[b*t.dims+dim])
	})
	mid := start + (end-start)/2
	t.build(2*node+1, start, mid)
	t.build(2*node+2, mid, end)
}

func (t *binaryTree) widestDim(start, end int) int {
	best, bestSpread := 0, -1.0
	for d := 0; d < t.dims; d++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, p := range t.idx[start:end] {
			v := t.data[p*t.dims+d]
			lo, hi = min(lo, v), max(hi, v)
		}
		if hi-lo > bestSpread {
			best, bestSpread = d, hi-lo
		}
	}
	return best
}

func (t *binaryTree) point(p int) []float64 {
	return t.data[p*t.dims : (p+1)*t.dims]
}

// lowerBound is geom.minDist, or +Inf for a slot holding no points.
func (t *binaryTree) lowerBound(node int, query []float64) float64 {
	if node >= len(t.nodes) || t.nodes[node].empty() {
		return math.Inf(1)
	}
	return t.geom.minDist(node, query)
}

func (t *binaryTree) Data() []float64           { return t.data }
func (t *binaryTree) NumPoints() int            { return t.n }
func (t *binaryTree) NumFeatures() int          { return t.dims }
func (t *binaryTree) IdxArray() []int           { return t.idx }
func (t *binaryTree) NodeDataArray() []NodeData { return t.nodes }

// NumNodes returns the number of nodes the build created.
func (t *binaryTree) NumNodes() int { return t.built }

// Neighbors returns all points within radius of point, excluding point
// itself. Subtrees whose lower bound exceeds radius are pruned.
func (t *binaryTree) Neighbors(point int, radius float64) []Neighbor {
	if t.n == 0 {
		return nil
	}
	return t.collect(0, point, t.point(point), radius, nil)
}

func (t *binaryTree) collect(node, self int, query []float64, radius float64, out []Neighbor) []Neighbor {
	if t.lowerBound(node, query) > radius {
		return out
	}
	nd := t.nodes[node]
	if !nd.IsLeaf {
		out = t.collect(2*node+1, self, query, radius, out)
		return t.collect(2*node+2, self, query, radius, out)
	}
	for _, p := range t.idx[nd.IdxStart:nd.IdxEnd] {
		if p == self {
			continue
		}
		if d := t.metric.Distance(query, t.point(p)); d <= radius {
			out = append(out, Neighbor{Index: p, Distance: d})
		}
	}
	return out
}

// QueryKNN finds the k nearest neighbors for each row in queryData. Results
// are sorted by ascending distance.
func (t *binaryTree) QueryKNN(queryData []float64, queryRows, k int) ([][]int, [][]float64) {
	indices := make([][]int, queryRows)
	distances := make([][]float64, queryRows)
	if t.n == 0 || k <= 0 {
		return indices, distances
	}

	for q := 0; q < queryRows; q++ {
		h := make(knnHeap, 0, min(k, t.n))
		t.nearest(0, queryData[q*t.dims:(q+1)*t.dims], k, &h)
		indices[q], distances[q] = h.drain()
	}
	return indices, distances
}

// nearest descends into the closer child first and visits the other only
// while it may still hold one of the k nearest points.
func (t *binaryTree) nearest(node int, query []float64, k int, h *knnHeap) {
	nd := t.nodes[node]
	if nd.IsLeaf {
		for _, p := range t.idx[nd.IdxStart:nd.IdxEnd] {
			h.offer(knnItem{index: p, dist: t.metric.Distance(query, t.point(p))}, k)
		}
		return
	}

	near, far := 2*node+1, 2*node+2
	nearDist, farDist := t.lowerBound(near, query), t.lowerBound(far, query)
	if farDist < nearDist {
		near, far, farDist = far, near, nearDist
	}
	t.nearest(near, query, k, h)
	if h.Len() < k || farDist < (*h)[0].dist {
		t.nearest(far, query, k, h)
	}
}

type knnItem struct {
	index int
	dist  float64
}

// knnHeap is a max-heap on distance holding the best candidates so far.
type knnHeap []knnItem

func (h knnHeap) Len() int           { return len(h) }
func (h knnHeap) Less(i, j int) bool { return h[i].dist > h[j].dist }
func (h knnHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *knnHeap) Push(x any)        { *h = append(*h, x.(knnItem)) }
func (h *knnHeap) Pop() any {
	old := *h
	item := old[len(old)-1]
	*h = old[:len(old)-1]
	return item
}

// offer keeps it if the heap has room or it beats the current worst.
func (h *knnHeap) offer(it knnItem, k int) {
	switch {
	case h.Len() < k:
		heap.Push(h, it)
	case it.dist < (*h)[0].dist:
		(*h)[0] = it
		heap.Fix(h, 0)
	}
}

// drain empties the heap in ascending distance order.
func (h *knnHeap) drain() ([]int, []float64) {
	idx := make([]int, h.Len())
	dist := make([]float64, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		it := heap.Pop(h).(knnItem)
		idx[i], dist[i] = it.index, it.dist
	}
	return idx, dist
}
