package furnace

import (
	"container/heap"
	"time"
)

// jobHeap implements a min-heap of cook jobs ordered by EndTime. Jobs
// finishing soonest are at the top.
type jobHeap []*Job

func (h jobHeap) Len() int {
	return len(h)
}

func (h jobHeap) Less(i, j int) bool {
	return h[i].EndTime.Before(h[j].EndTime)
}

func (h jobHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *jobHeap) Push(x any) {
	*h = append(*h, x.(*Job))
}

func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	job := old[n-1]
	old[n-1] = nil // Avoid memory leak
	*h = old[0 : n-1]
	return job
}

// Peek returns the job with the earliest end time without removing it.
// Returns nil if the heap is empty.
func (h *jobHeap) Peek() *Job {
	if len(*h) == 0 {
		return nil
	}
	return (*h)[0]
}

func newJobHeap() *jobHeap {
	h := &jobHeap{}
	heap.Init(h)
	return h
}

// popFinished extracts all jobs that have finished by the given time, in
// completion order (earliest first).
func (h *jobHeap) popFinished(now time.Time) []*Job {
	var finished []*Job
	for {
		job := h.Peek()
		if job == nil {
			break
		}
		// If the earliest job isn't done yet, none are
		if now.Before(job.EndTime) {
			break
		}
		heap.Pop(h)
		finished = append(finished, job)
	}
	return finished
}
