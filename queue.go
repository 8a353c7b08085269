package huffman

import (
	"container/heap"

	"github.com/chronos-tachyon/assert"
)

// type queueItem + type nodeQueue {{{

// queueItem is a tree node waiting to be merged.  key is the smallest Symbol
// anywhere under the node; since the leaves hold distinct symbols, no two
// items share a key and (weight, key) is a total order.
type queueItem struct {
	index  int32
	weight uint64
	key    Symbol
}

// nodeQueue is a min-priority queue of tree nodes ordered by ascending
// weight, then ascending key.
type nodeQueue struct {
	list []queueItem
}

func (q *nodeQueue) Init() {
	heap.Init(q)
}

// PushItem inserts an item into the queue.
func (q *nodeQueue) PushItem(item queueItem) {
	heap.Push(q, item)
}

// PopItem removes and returns the item with the smallest ordering key.
func (q *nodeQueue) PopItem() queueItem {
	assert.Assertf(len(q.list) != 0, "PopItem called on an empty queue")
	return heap.Pop(q).(queueItem)
}

func (q *nodeQueue) Len() int {
	return len(q.list)
}

func (q *nodeQueue) Swap(i, j int) {
	q.list[i], q.list[j] = q.list[j], q.list[i]
}

func (q *nodeQueue) Less(i, j int) bool {
	a, b := q.list[i], q.list[j]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.key < b.key
}

func (q *nodeQueue) Push(x interface{}) {
	q.list = append(q.list, x.(queueItem))
}

func (q *nodeQueue) Pop() interface{} {
	last := uint(len(q.list)) - 1
	x := q.list[last]
	q.list = q.list[:last]
	return x
}

var _ heap.Interface = (*nodeQueue)(nil)

// }}}
