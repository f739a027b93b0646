package environ

import (
	"github.com/luthersystems/pairlisp/lisp"
	"github.com/luthersystems/pairlisp/symbol"
)

// Arena holds the frames of one evaluation session.  Frames are addressed by
// index and a generation counter: when a frame is released its slot is
// returned to a free list and the slot's generation is bumped, invalidating
// every Environ handle that still refers to it.
//
// An Arena is not safe for concurrent use.
type Arena struct {
	symbols symbol.Table
	frames  []frame
	free    []int
	live    int
}

type frame struct {
	gen      uint32
	live     bool
	parent   ref
	children int
	bindings *bindings
}

// ref addresses a frame.  The root of a chain has a parent ref with index -1.
type ref struct {
	index int
	gen   uint32
}

var noParent = ref{index: -1}

// NewArena returns an empty Arena whose frames intern variable names in
// symbols.  If symbols is nil symbol.DefaultGlobalTable is used.
func NewArena(symbols symbol.Table) *Arena {
	if symbols == nil {
		symbols = symbol.DefaultGlobalTable
	}
	return &Arena{symbols: symbols}
}

// Len returns the number of live frames in the arena.
func (a *Arena) Len() int {
	return a.live
}

// NewRoot returns an empty frame without a parent.
func (a *Arena) NewRoot() *Environ {
	return a.alloc(noParent)
}

func (a *Arena) alloc(parent ref) *Environ {
	var i int
	if n := len(a.free); n > 0 {
		i = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		i = len(a.frames)
		a.frames = append(a.frames, frame{bindings: newBindings(0)})
	}
	f := &a.frames[i]
	f.live = true
	f.parent = parent
	f.children = 0
	a.live++
	return &Environ{arena: a, ref: ref{index: i, gen: f.gen}}
}

// get returns the frame addressed by r.  get panics if the frame has been
// released.
func (a *Arena) get(r ref) *frame {
	if r.index < 0 || r.index >= len(a.frames) {
		panic("environ: invalid environment reference")
	}
	f := &a.frames[r.index]
	if !f.live || f.gen != r.gen {
		panic("environ: use of released environment")
	}
	return f
}

// Environ is a handle to one frame of an Arena.  A frame holds its own
// bindings and is in the scope of its parent's bindings.  Lookups walk the
// parent chain innermost first while writes only ever touch the frame itself.
type Environ struct {
	arena *Arena
	ref
}

// New returns a root environment in a new Arena.  Each evaluation session
// starts from one root.
func New() *Environ {
	return NewArena(nil).NewRoot()
}

// Extend returns an empty environment whose lookups fall through to env on
// a miss.
func (env *Environ) Extend() *Environ {
	env.frame().children++
	return env.arena.alloc(env.ref)
}

// Release discards the frame of env.  Its bindings become unreachable and
// env, along with any other handle to the frame, must not be used again.
// Release panics if environments extending env are still live.
func (env *Environ) Release() {
	f := env.frame()
	if f.children > 0 {
		panic("environ: release of environment with live children")
	}
	if f.parent != noParent {
		env.arena.get(f.parent).children--
	}
	f.bindings.reset()
	f.live = false
	f.gen++
	env.arena.free = append(env.arena.free, env.index)
	env.arena.live--
}

// Live returns true if the frame of env has not been released.
func (env *Environ) Live() bool {
	if env.index < 0 || env.index >= len(env.arena.frames) {
		return false
	}
	f := &env.arena.frames[env.index]
	return f.live && f.gen == env.gen
}

// Arena returns the arena env was allocated in.
func (env *Environ) Arena() *Arena {
	return env.arena
}

func (env *Environ) frame() *frame {
	return env.arena.get(env.ref)
}

// Parent returns the environment env extends, or nil if env is a root.
func (env *Environ) Parent() *Environ {
	f := env.frame()
	if f.parent == noParent {
		return nil
	}
	return &Environ{arena: env.arena, ref: f.parent}
}

// Len returns the number of local bindings in env.
func (env *Environ) Len() int {
	return env.frame().bindings.Len()
}

// Get returns the value bound to name in the nearest frame of the chain
// starting at env.  Get returns false if name is bound nowhere in the chain.
func (env *Environ) Get(name string) (lisp.LVal, bool) {
	id, ok := env.arena.symbols.Peek(name)
	if !ok {
		return lisp.Nil(), false
	}
	f := env.frame()
	for {
		v, ok := f.bindings.Get(id)
		if ok {
			return v, true
		}
		if f.parent == noParent {
			return lisp.Nil(), false
		}
		f = env.arena.get(f.parent)
	}
}

// Set binds name to v in env, overwriting any previous binding of name in
// env.  Set never modifies a parent frame.
func (env *Environ) Set(name string, v lisp.LVal) {
	env.frame().bindings.Put(env.arena.symbols.Intern(name), v)
}

// MergeFrom copies every binding local to other into env.  Bindings in
// other's parents are not copied.  Names bound in both are overwritten with
// other's values.
func (env *Environ) MergeFrom(other *Environ) {
	dst := env.frame().bindings
	src := other.frame().bindings
	same := env.arena.symbols == other.arena.symbols
	for _, p := range src.pairs {
		if same {
			dst.Put(p.name, p.value)
			continue
		}
		name := symbol.String(p.name, other.arena.symbols)
		dst.Put(env.arena.symbols.Intern(name), p.value)
	}
}

// Root returns the outermost environment of the chain starting at env.
func (env *Environ) Root() *Environ {
	r := env.ref
	for {
		f := env.arena.get(r)
		if f.parent == noParent {
			return &Environ{arena: env.arena, ref: r}
		}
		r = f.parent
	}
}

// Names returns the names bound locally in env in the order they were first
// bound.
func (env *Environ) Names() []string {
	pairs := env.frame().bindings.pairs
	names := make([]string, len(pairs))
	for i := range pairs {
		names[i] = symbol.String(pairs[i].name, env.arena.symbols)
	}
	return names
}
