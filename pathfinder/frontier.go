package pathfinder

import (
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/zyedidia/generic/queue"
)

// node is a search entry: a coordinate plus the cost it was reached with.
type node struct {
	pos  maze.Point
	cost int
}

// frontier holds discovered nodes that are not finalized yet.
type frontier interface {
	push(n node)
	pop() node
	empty() bool
}

// fifoFrontier pops nodes in discovery order.
type fifoFrontier struct {
	q *queue.Queue[node]
}

func newFIFOFrontier() *fifoFrontier {
	return &fifoFrontier{q: queue.New[node]()}
}

func (f *fifoFrontier) push(n node) { f.q.Enqueue(n) }
func (f *fifoFrontier) pop() node   { return f.q.Dequeue() }
func (f *fifoFrontier) empty() bool { return f.q.Empty() }

// costFrontier is a binary min-heap on cost alone, laid out the way the
// C++ standard library's push_heap/pop_heap lay it out. Pop walks the hole
// down to a leaf, taking the right child unless the left one is cheaper,
// and then sifts the displaced last element back up. Equal costs therefore
// come out in a fixed order that a textbook sift-down does not reproduce,
// and that order decides which of several shortest routes is returned.
type costFrontier struct {
	nodes []node
}

func newCostFrontier() *costFrontier {
	return &costFrontier{}
}

func (f *costFrontier) push(n node) {
	f.nodes = append(f.nodes, n)
	f.siftUp(len(f.nodes)-1, n)
}

func (f *costFrontier) pop() node {
	top := f.nodes[0]
	last := len(f.nodes) - 1
	moved := f.nodes[last]
	f.nodes = f.nodes[:last]
	if last > 0 {
		f.siftDown(moved)
	}
	return top
}

func (f *costFrontier) empty() bool { return len(f.nodes) == 0 }

// siftUp places n at hole, moving strictly costlier parents down.
func (f *costFrontier) siftUp(hole int, n node) {
	parent := (hole - 1) / 2
	for hole > 0 && f.nodes[parent].cost > n.cost {
		f.nodes[hole] = f.nodes[parent]
		hole = parent
		parent = (hole - 1) / 2
	}
	f.nodes[hole] = n
}

// siftDown refills the root hole after a pop and reinserts n.
func (f *costFrontier) siftDown(n node) {
	length := len(f.nodes)
	hole, child := 0, 0
	for child < (length-1)/2 {
		child = 2 * (child + 1)
		if f.nodes[child].cost > f.nodes[child-1].cost {
			child--
		}
		f.nodes[hole] = f.nodes[child]
		hole = child
	}
	if length%2 == 0 && child == (length-2)/2 {
		child = 2 * (child + 1)
		f.nodes[hole] = f.nodes[child-1]
		hole = child - 1
	}
	f.siftUp(hole, n)
}
