package container_test

import (
	"testing"

	"github.com/flurry-dev/flurry/core/container"
	"github.com/stretchr/testify/assert"
)

func TestOrderedMap(t *testing.T) {
	m := container.NewOrderedMap(
		container.Pair[string, int]{First: "delta", Second: 4},
		container.Pair[string, int]{First: "alpha", Second: 1},
		container.Pair[string, int]{First: "charlie", Second: 3},
		container.Pair[string, int]{First: "bravo", Second: 2},
	)

	assert.Equal(t, 4, m.Len(), "the length of the ordered map must match the initializer arguments' length")
	assert.Equal(t, container.List[string]{"alpha", "bravo", "charlie", "delta"}, m.Keys(), "keys must be sorted")
	assert.Equal(t, container.List[int]{1, 2, 3, 4}, m.Values(), "values must follow sorted key order")

	newMap := container.NewOrderedMap[string, int]()
	m.Scan(func(entry container.Pair[string, int]) {
		newMap.Add(entry.First, entry.Second)
	})
	assert.EqualValues(t, m, newMap, "Scan must visit every element")

	newMap = container.NewOrderedMap[string, int]()
	newMap.AddAll(m)
	newMap.Remove("alpha")
	assert.Equal(t, 3, newMap.Len())
	assert.False(t, newMap.Contains("alpha"))

	v, ok := m.Get("charlie")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	assert.True(t, container.Any[container.Pair[string, int]](m, func(entry container.Pair[string, int]) bool {
		return entry.Second == 2
	}))
	assert.True(t, container.All[container.Pair[string, int]](m, func(entry container.Pair[string, int]) bool {
		return entry.Second > 0
	}))

	cp := m.Copy()
	cp.Add("echo", 5)
	assert.Equal(t, 4, m.Len(), "copy must not alias the original")
}

func TestMapBasics(t *testing.T) {
	m := container.NewMap(
		container.Pair[string, int]{First: "a", Second: 1},
		container.Pair[string, int]{First: "b", Second: 2},
	)

	assert.True(t, m.Contains("a"))
	assert.ElementsMatch(t, container.List[string]{"a", "b"}, m.Keys())

	total := container.Fold[container.Pair[string, int]](m, 0, func(acc int, entry container.Pair[string, int]) int {
		return acc + entry.Second
	})
	assert.Equal(t, 3, total)

	list := container.ListOf[container.Pair[string, int]](m)
	assert.Equal(t, 2, list.Len())

	back := container.MapOf[string, int](list)
	assert.EqualValues(t, m, back)
}
