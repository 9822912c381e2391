package hashtable

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetGetDelete(t *testing.T) {
	assert := assert.New(t)
	tb := New(FNVHasher{})

	tb.Set("a", 1)
	tb.Set("b", 2)

	v, ok := tb.Get("a")
	assert.True(ok)
	assert.Equal(1, v)

	_, ok = tb.Get("missing")
	assert.False(ok)

	assert.True(tb.Delete("a"))
	_, ok = tb.Get("a")
	assert.False(ok)
	assert.False(tb.Delete("a"))
}

func TestSetOverwritesExistingKey(t *testing.T) {
	assert := assert.New(t)
	tb := New(FNVHasher{})

	tb.Set("k", "first")
	tb.Set("k", "second")

	v, ok := tb.Get("k")
	assert.True(ok)
	assert.Equal("second", v)
	assert.Equal(1, tb.size())
}

func TestGrowsAcrossManyInsertions(t *testing.T) {
	assert := assert.New(t)
	tb := New(DefaultHasher{})

	const n = 500
	for i := 0; i < n; i++ {
		tb.Set(fmt.Sprintf("key-%d", i), i)
	}
	assert.Equal(n, tb.size())

	for i := 0; i < n; i++ {
		v, ok := tb.Get(fmt.Sprintf("key-%d", i))
		assert.True(ok)
		assert.Equal(i, v)
	}
}

func TestDeleteThenReinsertSameKey(t *testing.T) {
	assert := assert.New(t)
	tb := New(FNVHasher{})

	tb.Set("k", 1)
	tb.Delete("k")
	tb.Set("k", 2)

	v, ok := tb.Get("k")
	assert.True(ok)
	assert.Equal(2, v)
}

func TestForEachVisitsAllLiveEntries(t *testing.T) {
	assert := assert.New(t)
	tb := New(FNVHasher{})

	want := map[string]any{"a": 1, "b": 2, "c": 3}
	for k, v := range want {
		tb.Set(k, v)
	}
	tb.Delete("b")
	delete(want, "b")

	got := map[string]any{}
	tb.forEach(func(k string, v any) { got[k] = v })
	assert.Equal(want, got)
}
