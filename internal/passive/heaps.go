package passive

import "github.com/superpose/superpose/internal/clause"

// ageHeap and weightHeap are container/heap.Interface implementations
// over the same *clause.Clause pointers a bucket tracks; tie-breaking
// uses clause numeric id. Popped entries that are no
// longer in the bucket's membership set (because the sibling heap
// already served them) are lazily discarded by the caller rather than
// spliced out here, the standard lazy-deletion approach for a dual-
// keyed priority queue.
type ageHeap []*clause.Clause

func (h ageHeap) Len() int { return len(h) }
func (h ageHeap) Less(i, j int) bool {
	if h[i].Age() != h[j].Age() {
		return h[i].Age() < h[j].Age()
	}
	return h[i].ID() < h[j].ID()
}
func (h ageHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *ageHeap) Push(x interface{}) {
	*h = append(*h, x.(*clause.Clause))
}
func (h *ageHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

type weightHeap []*clause.Clause

func (h weightHeap) Len() int { return len(h) }
func (h weightHeap) Less(i, j int) bool {
	if h[i].Weight() != h[j].Weight() {
		return h[i].Weight() < h[j].Weight()
	}
	return h[i].ID() < h[j].ID()
}
func (h weightHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *weightHeap) Push(x interface{}) {
	*h = append(*h, x.(*clause.Clause))
}
func (h *weightHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
