package workerpool

// queue is an unbounded FIFO. It doesn't provide thread-safety, the pool guards it.
type queue[T any] struct {
	items []T
	head  int
}

func (q *queue[T]) Push(item T) {
	if q.head > 0 && q.head >= len(q.items)/2 {
		// at least half of the slice is consumed, so move the pending items to the front
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}

	q.items = append(q.items, item)
}

func (q *queue[T]) Pop() (item T, ok bool) {
	if q.Len() == 0 {
		return item, false
	}

	var zero T
	item = q.items[q.head]
	q.items[q.head] = zero
	q.head++

	return item, true
}

func (q *queue[T]) Len() int {
	return len(q.items) - q.head
}
