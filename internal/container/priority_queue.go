package container

import "container/heap"

// item 优先队列中单个元素，索引由heap.Interface的方法维护。
type item[T any] struct {
	Value    T
	Priority float64
	index    int
}

// priorityQueue 实现heap.Interface，内部按Priority升序出队（最小堆）。
type priorityQueue[T any] []*item[T]

func (pq priorityQueue[T]) Len() int { return len(pq) }

func (pq priorityQueue[T]) Less(i, j int) bool { return pq[i].Priority < pq[j].Priority }

func (pq priorityQueue[T]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue[T]) Push(x any) {
	it := x.(*item[T])
	it.index = len(*pq)
	*pq = append(*pq, it)
}

func (pq *priorityQueue[T]) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*pq = old[:n-1]
	return it
}

// PriorityQueue 是一个通用最小优先队列，供Dijkstra最短路与准入队列使用。
//
// 功能：按Priority（越小越先出队）管理任意类型的元素。
// 说明：改写自车道压力调度用的优先队列实现，去除了非堆化的批量Push路径，
// 本仓库内的用法都需要严格的堆序，因此只保留按堆序的Push/Pop（及Peek）。
type PriorityQueue[T any] struct {
	queue priorityQueue[T]
}

// NewPriorityQueue 创建一个空的优先队列。
func NewPriorityQueue[T any]() *PriorityQueue[T] {
	q := &PriorityQueue[T]{queue: make(priorityQueue[T], 0)}
	heap.Init(&q.queue)
	return q
}

// Len 返回队列中元素个数。
func (q *PriorityQueue[T]) Len() int { return len(q.queue) }

// Push 按堆序插入一个元素。
func (q *PriorityQueue[T]) Push(value T, priority float64) {
	heap.Push(&q.queue, &item[T]{Value: value, Priority: priority})
}

// Pop 弹出优先级最小的元素。
func (q *PriorityQueue[T]) Pop() (value T, priority float64, ok bool) {
	if q.Len() == 0 {
		return value, 0, false
	}
	it := heap.Pop(&q.queue).(*item[T])
	return it.Value, it.Priority, true
}

// Peek 查看优先级最小的元素但不弹出。
func (q *PriorityQueue[T]) Peek() (value T, priority float64, ok bool) {
	if q.Len() == 0 {
		return value, 0, false
	}
	return q.queue[0].Value, q.queue[0].Priority, true
}
