package listbacking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBothBackingsImplementSameContract(t *testing.T) {
	for _, kind := range []Kind{VecDeque, LinkedList} {
		assert := assert.New(t)
		l := New(kind)

		l.PushBack("b")
		l.PushFront("a")
		l.PushBack("c")
		assert.Equal(3, l.Len())

		got := l.Range(0, 2)
		assert.Equal([]string{"a", "b", "c"}, got)

		v, ok := l.PopFront()
		assert.True(ok)
		assert.Equal("a", v)

		v, ok = l.PopBack()
		assert.True(ok)
		assert.Equal("c", v)

		assert.Equal(1, l.Len())
	}
}

func TestPopOnEmptyReturnsFalse(t *testing.T) {
	for _, kind := range []Kind{VecDeque, LinkedList} {
		assert := assert.New(t)
		l := New(kind)

		_, ok := l.PopFront()
		assert.False(ok)
		_, ok = l.PopBack()
		assert.False(ok)
	}
}

func TestGrowsPastInitialCapacity(t *testing.T) {
	assert := assert.New(t)
	l := New(VecDeque)

	for i := 0; i < 100; i++ {
		l.PushBack(string(rune('a' + i%26)))
	}
	assert.Equal(100, l.Len())

	for i := 0; i < 100; i++ {
		_, ok := l.PopFront()
		assert.True(ok)
	}
	_, ok := l.PopFront()
	assert.False(ok)
}
