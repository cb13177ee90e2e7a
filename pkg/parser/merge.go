package parser

import (
	"container/heap"
	"context"
	"io"
	"time"
)

// MergedSource combines multiple EventSources into a single stream ordered
// by timestamp (oldest first), giving a unified timeline across files.
// Events without timestamps order by the last timestamp seen on their
// source, so their arrival order within a file is preserved.
type MergedSource struct {
	sources []EventSource
	lastTS  []time.Time
	heap    *eventHeap
	seq     int
	started bool
	closed  bool
}

// NewMergedSource creates an EventSource that merges multiple sources
// chronologically.
func NewMergedSource(sources ...EventSource) *MergedSource {
	return &MergedSource{
		sources: sources,
		lastTS:  make([]time.Time, len(sources)),
		heap:    &eventHeap{},
	}
}

// Next returns the next event in timestamp order across all sources.
// Returns io.EOF when all sources are exhausted.
func (m *MergedSource) Next(ctx context.Context) (*LogEvent, error) {
	if !m.started && !m.closed {
		m.started = true
		if err := m.initHeap(ctx); err != nil {
			return nil, err
		}
	}

	if m.heap.Len() == 0 {
		return nil, io.EOF
	}

	item := heap.Pop(m.heap).(*heapItem)
	event := item.event

	// Refill from the same source.
	if next, err := m.sources[item.sourceIdx].Next(ctx); err == nil {
		m.push(next, item.sourceIdx)
	} else if err != io.EOF {
		return nil, err
	}

	return event, nil
}

func (m *MergedSource) initHeap(ctx context.Context) error {
	heap.Init(m.heap)

	for i, src := range m.sources {
		event, err := src.Next(ctx)
		if err == io.EOF {
			continue // Empty source
		}
		if err != nil {
			return err
		}
		m.push(event, i)
	}

	return nil
}

func (m *MergedSource) push(event *LogEvent, sourceIdx int) {
	if event.HasTimestamp() {
		m.lastTS[sourceIdx] = event.Timestamp
	}
	m.seq++
	heap.Push(m.heap, &heapItem{
		event:     event,
		orderTS:   m.lastTS[sourceIdx],
		seq:       m.seq,
		sourceIdx: sourceIdx,
	})
}

// Close releases all source resources.
func (m *MergedSource) Close() error {
	m.closed = true
	var firstErr error
	for _, src := range m.sources {
		if err := src.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// heapItem wraps a LogEvent with its ordering key for the priority queue.
type heapItem struct {
	event     *LogEvent
	orderTS   time.Time
	seq       int
	sourceIdx int
}

// eventHeap implements heap.Interface for timestamp-ordered merging.
type eventHeap []*heapItem

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if !h[i].orderTS.Equal(h[j].orderTS) {
		return h[i].orderTS.Before(h[j].orderTS)
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(*heapItem))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}
