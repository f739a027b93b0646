// Package symbol interns symbol names so that environments can key bindings
// by a small integer instead of by string.
package symbol

import (
	"fmt"
	"sync"
)

// An ID identifies an interned symbol within a Table.  The zero ID is never
// assigned to a symbol.
type ID uint32

// DefaultGlobalTable is the default symbol table, shared by all environments
// that are not given a table of their own.
var DefaultGlobalTable = NewTable()

// Intern uses DefaultGlobalTable to intern s and returns its ID.
func Intern(s string) ID {
	return DefaultGlobalTable.Intern(s)
}

// Table maps symbol IDs to strings.
type Table interface {
	// Len returns the number of symbols interned in the table.
	Len() int
	// Intern inserts the given symbol into the table if it is not present and
	// returns its ID.
	Intern(symbol string) ID
	// Peek retrieves the ID of a symbol without automatically interning it.
	// Peek returns true iff the symbol has been interned into the table.
	Peek(symbol string) (ID, bool)
	// Symbol returns the symbol associated with id.
	Symbol(id ID) (string, bool)
}

// String returns the symbol for id in table.  String otherwise returns a
// diagnostic string describing id.
func String(id ID, table Table) string {
	s, ok := table.Symbol(id)
	if !ok {
		return fmt.Sprintf("#<SYMBOL %#x>", uint32(id))
	}
	return s
}

// TableRow is a single symbol mapping.
type TableRow struct {
	Symbol string
	ID     ID
}

// NewTable returns an empty Table that is safe for concurrent use.  Rows may
// be given to seed the table.
func NewTable(rows ...TableRow) Table {
	return newTable(rows...)
}

// table is a generic table
type table struct {
	sync   sync.RWMutex
	lastid ID
	i      map[ID]string
	s      map[string]ID
}

var _ Table = (*table)(nil)

func newTable(r ...TableRow) *table {
	t := &table{
		i: make(map[ID]string),
		s: make(map[string]ID),
	}
	for i := range r {
		t.i[r[i].ID] = r[i].Symbol
		t.s[r[i].Symbol] = r[i].ID
		if r[i].ID > t.lastid {
			t.lastid = r[i].ID
		}
	}
	return t
}

// Len implements the Table interface
func (t *table) Len() int {
	t.sync.RLock()
	defer t.sync.RUnlock()
	return len(t.s)
}

// Intern implements the Table interface
func (t *table) Intern(s string) ID {
	t.sync.Lock()
	defer t.sync.Unlock()
	if id, ok := t.s[s]; ok {
		return id
	}
	if t.lastid == ^ID(0) {
		panic("too many symbols interned")
	}
	t.lastid++
	t.s[s] = t.lastid
	t.i[t.lastid] = s
	return t.lastid
}

// Peek implements the Table interface
func (t *table) Peek(s string) (ID, bool) {
	t.sync.RLock()
	defer t.sync.RUnlock()
	id, ok := t.s[s]
	return id, ok
}

// Symbol implements the Table interface
func (t *table) Symbol(id ID) (string, bool) {
	t.sync.RLock()
	defer t.sync.RUnlock()
	s, ok := t.i[id]
	return s, ok
}
