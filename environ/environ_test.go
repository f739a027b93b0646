package environ

import (
	"testing"

	"github.com/luthersystems/pairlisp/lisp"
	"github.com/luthersystems/pairlisp/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func AssertIntEqual(t *testing.T, expect int32, v lisp.LVal) {
	t.Helper()
	x, ok := lisp.GetInt(v)
	if assert.True(t, ok, "not an integer: %v", v) {
		assert.Equal(t, expect, x)
	}
}

func TestRoot(t *testing.T) {
	env := New()
	assert.Equal(t, 0, env.Len())
	assert.Nil(t, env.Parent())
	env.Set("a", lisp.Int(1))
	_, ok := env.Get("b")
	assert.False(t, ok)
	_, ok = env.Get("never-interned-anywhere")
	assert.False(t, ok)
	v, ok := env.Get("a")
	if assert.True(t, ok) {
		AssertIntEqual(t, 1, v)
	}
	env.Set("a", lisp.Int(2))
	assert.Equal(t, 1, env.Len())
	v, ok = env.Get("a")
	if assert.True(t, ok) {
		AssertIntEqual(t, 2, v)
	}
}

func TestChild(t *testing.T) {
	root := New()
	root.Set("a", lisp.Int(1))
	root.Set("b", lisp.Int(2))
	env := root.Extend()
	assert.Equal(t, 0, env.Len())
	assert.Equal(t, 2, root.Arena().Len())
	env.Set("b", lisp.Int(3))
	env.Set("c", lisp.Int(4))
	v, ok := env.Get("a")
	if assert.True(t, ok) {
		AssertIntEqual(t, 1, v)
	}
	v, ok = env.Get("b")
	if assert.True(t, ok) {
		AssertIntEqual(t, 3, v)
	}
	v, ok = root.Get("b")
	if assert.True(t, ok) {
		AssertIntEqual(t, 2, v) // child writes never reach the parent
	}
	_, ok = root.Get("c")
	assert.False(t, ok)

	parent := env.Parent()
	require.NotNil(t, parent)
	v, ok = parent.Get("b")
	if assert.True(t, ok) {
		AssertIntEqual(t, 2, v)
	}

	grandchild := env.Extend()
	v, ok = grandchild.Get("c")
	if assert.True(t, ok) {
		AssertIntEqual(t, 4, v)
	}
	v, ok = grandchild.Get("a")
	if assert.True(t, ok) {
		AssertIntEqual(t, 1, v)
	}
}

func TestRelease(t *testing.T) {
	root := New()
	arena := root.Arena()
	child := root.Extend()
	child.Set("x", lisp.Int(1))
	assert.Equal(t, 2, arena.Len())
	assert.Panics(t, func() { root.Release() }, "root still has a live child")

	child.Release()
	assert.False(t, child.Live())
	assert.True(t, root.Live())
	assert.Equal(t, 1, arena.Len())
	assert.Panics(t, func() { child.Get("x") })
	assert.Panics(t, func() { child.Set("x", lisp.Int(2)) })
	assert.Panics(t, func() { child.Extend() })

	// the released slot is reused with a new generation
	next := root.Extend()
	assert.Equal(t, child.index, next.index)
	assert.NotEqual(t, child.gen, next.gen)
	assert.Equal(t, 0, next.Len())
	_, ok := next.Get("x")
	assert.False(t, ok)
	assert.False(t, child.Live())
	next.Release()

	root.Release()
	assert.Equal(t, 0, arena.Len())
	assert.False(t, root.Live())
}

func TestMergeFrom(t *testing.T) {
	root := New()
	root.Set("a", lisp.Int(1))
	scratch := New()
	scratch.Set("a", lisp.Int(10))
	scratch.Set("b", lisp.Int(20))
	child := scratch.Extend()
	child.Set("c", lisp.Int(30))

	root.MergeFrom(child)
	_, ok := root.Get("a")
	assert.True(t, ok)
	v, _ := root.Get("a")
	AssertIntEqual(t, 1, v)
	v, ok = root.Get("c")
	if assert.True(t, ok) {
		AssertIntEqual(t, 30, v)
	}
	_, ok = root.Get("b")
	assert.False(t, ok, "parents of the merged frame are not copied")

	root.MergeFrom(scratch)
	v, _ = root.Get("a")
	AssertIntEqual(t, 10, v)
	v, _ = root.Get("b")
	AssertIntEqual(t, 20, v)
	assert.Equal(t, 3, root.Len())
}

func TestMergeFrom_tables(t *testing.T) {
	local := NewArena(symbol.NewTable()).NewRoot()
	local.Set("only-local-name", lisp.Int(5))
	global := New()
	global.MergeFrom(local)
	v, ok := global.Get("only-local-name")
	if assert.True(t, ok) {
		AssertIntEqual(t, 5, v)
	}
}

func TestRootNames(t *testing.T) {
	root := New()
	root.Set("zeta", lisp.Int(1))
	root.Set("alpha", lisp.Int(2))
	root.Set("zeta", lisp.Int(3))
	child := root.Extend()
	grandchild := child.Extend()
	assert.Equal(t, root.ref, grandchild.Root().ref)
	assert.Equal(t, root.ref, root.Root().ref)
	assert.Equal(t, []string{"zeta", "alpha"}, root.Names())
	assert.Empty(t, grandchild.Names())
}
