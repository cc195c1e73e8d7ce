package optics

import "container/heap"

// seedFrontier is a min-heap of unprocessed point indices ordered by
// reachability distance, with a position map so a lowered reachability can
// be restored in O(log n). Equal reachabilities pop in insertion order.
type seedFrontier struct {
	desc  []PointDescriptor // build arena; keys are read from here
	items []int             // heap of point indices
	pos   []int             // heap position per point, -1 when absent
	seq   []int             // insertion sequence per point
	next  int
}

func newSeedFrontier(desc []PointDescriptor) *seedFrontier {
	pos := make([]int, len(desc))
	for i := range pos {
		pos[i] = -1
	}
	return &seedFrontier{
		desc: desc,
		pos:  pos,
		seq:  make([]int, len(desc)),
	}
}

func (f *seedFrontier) Len() int { return len(f.items) }

func (f *seedFrontier) Less(i, j int) bool {
	a, b := f.items[i], f.items[j]
	ra, rb := f.desc[a].ReachabilityDistance, f.desc[b].ReachabilityDistance
	if ra != rb {
		return ra < rb
	}
	return f.seq[a] < f.seq[b]
}

func (f *seedFrontier) Swap(i, j int) {
	f.items[i], f.items[j] = f.items[j], f.items[i]
	f.pos[f.items[i]] = i
	f.pos[f.items[j]] = j
}

func (f *seedFrontier) Push(x any) {
	p := x.(int)
	f.pos[p] = len(f.items)
	f.items = append(f.items, p)
}

func (f *seedFrontier) Pop() any {
	n := len(f.items)
	p := f.items[n-1]
	f.items = f.items[:n-1]
	f.pos[p] = -1
	return p
}

// insert adds point p, whose reachability has just been defined.
func (f *seedFrontier) insert(p int) {
	f.seq[p] = f.next
	f.next++
	heap.Push(f, p)
}

// decrease restores heap order after p's reachability was lowered.
func (f *seedFrontier) decrease(p int) {
	heap.Fix(f, f.pos[p])
}

// popMin removes and returns the point with the smallest reachability.
func (f *seedFrontier) popMin() int {
	return heap.Pop(f).(int)
}

func (f *seedFrontier) contains(p int) bool { return f.pos[p] >= 0 }

func (f *seedFrontier) empty() bool { return len(f.items) == 0 }
