// Package automation drives parameter changes from Lua scripts.
//
// A script defines a global function automate(block, time) that is called
// once before each rendered block. Inside it, set(id, value) writes a
// parameter and get(id) reads one:
//
//	function automate(block, time)
//	  set("DRIVE", 12 + 12 * math.sin(time))
//	end
//
// Only the base, table, string and math libraries are available.
package automation

import (
	"errors"
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
)

// EntryPoint is the name of the function called for every block.
const EntryPoint = "automate"

var (
	// ErrNoEntryPoint is returned when a script does not define automate.
	ErrNoEntryPoint = errors.New("automation: script does not define " + EntryPoint)
	// ErrScript wraps Lua compile and runtime errors.
	ErrScript = errors.New("automation: script error")
)

// Target receives parameter writes. param.Set satisfies it.
type Target interface {
	Get(id string) float64
	Set(id string, v float64) error
}

// Script is a loaded automation script. It is not safe for concurrent use.
type Script struct {
	state  *lua.LState
	fn     lua.LValue
	target Target
	name   string
}

// Load compiles source and runs its top level. name labels error messages.
func Load(name, source string, target Target) (*Script, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	s := &Script{state: L, target: target, name: name}

	L.SetGlobal("set", L.NewFunction(s.luaSet))
	L.SetGlobal("get", L.NewFunction(s.luaGet))

	if err := L.DoString(source); err != nil {
		L.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrScript, name, err)
	}

	fn := L.GetGlobal(EntryPoint)
	if fn.Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("%w: %s", ErrNoEntryPoint, name)
	}

	s.fn = fn

	return s, nil
}

// LoadFile reads and loads the script at path.
func LoadFile(path string, target Target) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Load(path, string(src), target)
}

// Run calls automate(block, seconds).
func (s *Script) Run(block int, seconds float64) error {
	err := s.state.CallByParam(lua.P{
		Fn:      s.fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(block), lua.LNumber(seconds))
	if err != nil {
		return fmt.Errorf("%w: %s: block %d: %v", ErrScript, s.name, block, err)
	}

	return nil
}

// Close releases the Lua state.
func (s *Script) Close() {
	s.state.Close()
}

func (s *Script) luaSet(L *lua.LState) int {
	id := L.CheckString(1)
	v := L.CheckNumber(2)

	if err := s.target.Set(id, float64(v)); err != nil {
		L.RaiseError("set(%q): %v", id, err)
	}

	return 0
}

func (s *Script) luaGet(L *lua.LState) int {
	L.Push(lua.LNumber(s.target.Get(L.CheckString(1))))
	return 1
}
