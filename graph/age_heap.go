package graph

import "github.com/richinsley/avgraph/avfilter"

// ageEntry tracks one link's most recently delivered PTS for Graph.Oldest.
type ageEntry struct {
	link *avfilter.Link
	pts  int64
}

// ageHeap is a container/heap.Interface min-heap over ageEntry.pts.
type ageHeap []*ageEntry

func (h ageHeap) Len() int            { return len(h) }
func (h ageHeap) Less(i, j int) bool  { return h[i].pts < h[j].pts }
func (h ageHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *ageHeap) Push(x interface{}) { *h = append(*h, x.(*ageEntry)) }
func (h *ageHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// upsert updates the recorded PTS for link, adding a new entry if this is
// link's first delivery.
func (h *ageHeap) upsert(link *avfilter.Link) {
	for _, e := range *h {
		if e.link == link {
			e.pts = link.CurrentPTS
			return
		}
	}
	*h = append(*h, &ageEntry{link: link, pts: link.CurrentPTS})
}
