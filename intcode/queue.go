package intcode

// Queue is the first-in first-out input queue of a machine.
type Queue struct {
	Data []Cell
}

func (q *Queue) Push(values ...Cell) {
	q.Data = append(q.Data, values...)
}

func (q *Queue) Pop() (value Cell, ok bool) {
	value, ok = q.Peek()
	if ok {
		q.Data = q.Data[1:]
	}
	return
}

func (q *Queue) Empty() bool {
	return len(q.Data) == 0
}

func (q *Queue) Len() int {
	return len(q.Data)
}

func (q *Queue) Peek() (value Cell, ok bool) {
	if q.Empty() {
		return
	}

	return q.Data[0], true
}

func (q *Queue) Reset() {
	q.Data = nil
}
