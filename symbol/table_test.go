package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	table := newTable()
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, ID(1), table.Intern("testing"))
	assert.Equal(t, ID(2), table.Intern("hello"))
	assert.Equal(t, ID(1), table.Intern("testing"))
	assert.Equal(t, 2, table.Len())
	id, ok := table.Peek("hello")
	assert.True(t, ok)
	assert.Equal(t, ID(2), id)
	_, ok = table.Peek("notfound")
	assert.False(t, ok)
	s, ok := table.Symbol(1)
	assert.True(t, ok)
	assert.Equal(t, "testing", s)
	_, ok = table.Symbol(3)
	assert.False(t, ok)
}

func TestTable_seeded(t *testing.T) {
	table := NewTable(TableRow{"x", 7}, TableRow{"car", 3})
	id, ok := table.Peek("x")
	assert.True(t, ok)
	assert.Equal(t, ID(7), id)
	assert.Equal(t, ID(8), table.Intern("y"), "new ids follow the largest seeded id")
	s, ok := table.Symbol(3)
	assert.True(t, ok)
	assert.Equal(t, "car", s)
}

func TestString(t *testing.T) {
	table := NewTable()
	hello := table.Intern("hello")
	assert.Equal(t, "hello", String(hello, table))
	assert.Equal(t, "#<SYMBOL 0x1234>", String(0x1234, table))
}

func TestIntern(t *testing.T) {
	id := Intern("symbol-test-global")
	assert.Equal(t, id, Intern("symbol-test-global"))
	s, ok := DefaultGlobalTable.Symbol(id)
	assert.True(t, ok)
	assert.Equal(t, "symbol-test-global", s)
}
