package ctx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/totalconf/core/ctx"
)

func TestLookupFindsTheMostRecentBinding(t *testing.T) {
	c := ctx.Empty[int]().Insert("x", 1).Insert("x", 2)
	v, ok := c.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestLookupMissesAnUnboundName(t *testing.T) {
	_, ok := ctx.Empty[int]().Lookup("ghost")
	assert.False(t, ok)
}

func TestToListOldestFirstReversesToList(t *testing.T) {
	c := ctx.Empty[int]().Insert("a", 1).Insert("b", 2)
	newestFirst := c.ToList()
	oldestFirst := c.ToListOldestFirst()
	assert.Equal(t, "b", newestFirst[0].Name)
	assert.Equal(t, "a", oldestFirst[0].Name)
}

func TestVisibleNamesDeduplicatesShadowedBindings(t *testing.T) {
	c := ctx.Empty[int]().Insert("x", 1).Insert("y", 2).Insert("x", 3)
	names := c.VisibleNames()
	assert.Len(t, names, 2, "x is shadowed, so it must only appear once")
	assert.ElementsMatch(t, []string{"x", "y"}, names)
}

func TestVisibleNamesOfAnEmptyContextIsEmpty(t *testing.T) {
	assert.Empty(t, ctx.Empty[int]().VisibleNames())
}
