package intcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_Push(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{}
	assert.True(q.Empty())

	q.Push(12345678)
	assert.False(q.Empty())
	assert.Equal(1, q.Len())
	assert.Equal(Cell(12345678), q.Data[0])

	q.Push(1, 2, 3)
	assert.Equal(4, q.Len())
}

func TestQueue_Pop(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{}
	q.Push(-5)
	q.Push(7)

	val, ok := q.Pop()
	assert.True(ok)
	assert.Equal(Cell(-5), val)
	assert.Equal(1, q.Len())

	val, ok = q.Pop()
	assert.True(ok)
	assert.Equal(Cell(7), val)
	assert.True(q.Empty())
}

func TestQueue_Pop_Empty(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{}
	val, ok := q.Pop()
	assert.False(ok)
	assert.Equal(Cell(0), val)
}

func TestQueue_Peek(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{}
	q.Push(1, 2)

	val, ok := q.Peek()
	assert.True(ok)
	assert.Equal(Cell(1), val)
	assert.Equal(2, q.Len())
}

func TestQueue_Reset(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{}
	q.Push(1, 2)
	q.Reset()
	assert.True(q.Empty())

	q.Reset()
	assert.True(q.Empty())
}
