package pathify

import (
	"fmt"
	"math"
)

type itemVW struct {
	Point
	area       float64
	prev, next int32 // indices into items
	heapIdx    int32
}

func (item itemVW) String() string {
	return fmt.Sprintf("%v %v (%v→·→%v)", item.Point, item.area, item.prev, item.next)
}

// VisvalingamWhyatt simplifies polylines with the Visvalingam-Whyatt algorithm. Its buffers are reused between calls, so it must not be used concurrently.
type VisvalingamWhyatt struct {
	heap  heapVW
	items []itemVW
}

// NewVisvalingamWhyatt returns a new simplifier.
func NewVisvalingamWhyatt() *VisvalingamWhyatt {
	return &VisvalingamWhyatt{}
}

// Simplify removes the points of the open polyline that span a triangle with their neighbors with an area smaller than tolerance, smallest first. The first and last points are always kept. The input slice is not modified.
func (s *VisvalingamWhyatt) Simplify(pts []Point, tolerance float64) []Point {
	if len(pts) < 3 {
		return append([]Point{}, pts...)
	}

	computeArea := func(a, b, c Point) float64 {
		return math.Abs(a.PerpDot(b) + b.PerpDot(c) + c.PerpDot(a))
	}
	tolerance *= 2.0 // save on 0.5 multiply in computeArea

	n := len(pts)
	if cap(s.items) < n {
		s.items = make([]itemVW, 0, n)
	} else {
		s.items = s.items[:0]
	}
	s.heap.Reset(n - 2)

	for i, pt := range pts {
		area := math.NaN()
		if 0 < i && i < n-1 {
			area = computeArea(pts[i-1], pt, pts[i+1])
		}
		next := int32(i + 1)
		if i == n-1 {
			next = -1
		}
		s.items = append(s.items, itemVW{
			Point: pt,
			area:  area,
			prev:  int32(i - 1),
			next:  next,
		})
	}
	for i := 1; i < n-1; i++ {
		s.heap.Append(&s.items[i])
	}
	s.heap.Init()

	for 0 < len(s.heap) {
		item := s.heap.Pop()
		if tolerance <= item.area {
			break
		}

		// remove current point from linked list, this invalidates those items in the queue
		s.items[item.prev].next = item.next
		s.items[item.next].prev = item.prev

		// update previous point
		if prev := &s.items[item.prev]; prev.prev != -1 {
			prev.area = computeArea(s.items[prev.prev].Point, prev.Point, s.items[prev.next].Point)
			s.heap.Fix(int(prev.heapIdx))
		}

		// update next point
		if next := &s.items[item.next]; next.next != -1 {
			next.area = computeArea(s.items[next.prev].Point, next.Point, s.items[next.next].Point)
			s.heap.Fix(int(next.heapIdx))
		}
	}

	q := make([]Point, 0, n)
	for i := int32(0); i != -1; i = s.items[i].next {
		q = append(q, s.items[i].Point)
	}
	return q
}

type heapVW []*itemVW

func (q *heapVW) Reset(capacity int) {
	if cap(*q) < capacity {
		*q = heapVW(make([]*itemVW, 0, capacity))
	} else {
		*q = (*q)[:0]
	}
}

func (q heapVW) Init() {
	n := len(q)
	for i := n/2 - 1; 0 <= i; i-- {
		q.down(i, n)
	}
}

func (q *heapVW) Append(item *itemVW) {
	item.heapIdx = int32(len(*q))
	*q = append(*q, item)
}

func (q *heapVW) Pop() *itemVW {
	n := len(*q) - 1
	q.swap(0, n)
	q.down(0, n)

	item := (*q)[n]
	(*q) = (*q)[:n]
	return item
}

func (q heapVW) Fix(i int) {
	if !q.down(i, len(q)) {
		q.up(i)
	}
}

func (q heapVW) less(i, j int) bool {
	return q[i].area < q[j].area
}

func (q heapVW) swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].heapIdx, q[j].heapIdx = int32(i), int32(j)
}

// from container/heap
func (q heapVW) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !q.less(j, i) {
			break
		}
		q.swap(i, j)
		j = i
	}
}

func (q heapVW) down(i0, n int) bool {
	i := i0
	for {
		j1 := 2*i + 1
		if n <= j1 || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && q.less(j2, j1) {
			j = j2 // = 2*i + 2  // right child
		}
		if !q.less(j, i) {
			break
		}
		q.swap(i, j)
		i = j
	}
	return i0 < i
}
