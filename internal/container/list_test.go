package container

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListPushAndRemoveFirst(t *testing.T) {
	l := NewList[int]()
	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)
	require.Equal(t, 3, l.Len())
	require.Equal(t, []int{1, 2, 3}, l.Values())

	v, ok := l.RemoveFirst()
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.Equal(t, []int{2, 3}, l.Values())
}

func TestListRemoveMiddleNode(t *testing.T) {
	l := NewList[string]()
	l.PushBack("a")
	n := l.PushBack("b")
	l.PushBack("c")
	l.Remove(n)
	require.Equal(t, []string{"a", "c"}, l.Values())
	require.Equal(t, "a", l.First().Value)
	require.Equal(t, "c", l.Last().Value)
}

func TestListEmptyRemoveFirst(t *testing.T) {
	l := NewList[int]()
	_, ok := l.RemoveFirst()
	require.False(t, ok)
}

func TestPriorityQueueOrdering(t *testing.T) {
	q := NewPriorityQueue[string]()
	q.Push("c", 3)
	q.Push("a", 1)
	q.Push("b", 2)

	v, p, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, "a", v)
	require.Equal(t, 1.0, p)

	v, _, _ = q.Pop()
	require.Equal(t, "b", v)

	v, _, _ = q.Pop()
	require.Equal(t, "c", v)

	_, _, ok = q.Pop()
	require.False(t, ok)
}
