package script

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// ErrStateClosed is returned when running code on a closed state.
var ErrStateClosed = errors.New("script state is closed")

// State wraps a gopher-lua state restricted to the safe part of the
// standard library: base, package, table, string and math. dofile,
// loadfile and load are removed and the package search paths are
// blanked, so require can only reach modules preloaded into the
// state.
//
// A State is not safe for concurrent use.
type State struct {
	L      *lua.LState
	closed bool
}

// NewState creates a sandboxed Lua state.
func NewState() *State {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	// The package library must open first so require exists before
	// the other libraries register themselves.
	for _, open := range []lua.LGFunction{
		lua.OpenPackage,
		lua.OpenBase,
		lua.OpenTable,
		lua.OpenString,
		lua.OpenMath,
	} {
		open(L)
	}

	for _, name := range []string{"dofile", "loadfile", "load"} {
		L.SetGlobal(name, lua.LNil)
	}
	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}

	return &State{L: L}
}

// Preload registers a module loader that scripts reach with
// require(name).
func (s *State) Preload(name string, loader lua.LGFunction) {
	s.L.PreloadModule(name, loader)
}

// DoString runs a Lua chunk. Panics raised by the runtime or by
// bindings are recovered into errors.
func (s *State) DoString(code string) (err error) {
	if s.closed {
		return ErrStateClosed
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return s.L.DoString(code)
}

// Close releases the Lua state.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}
