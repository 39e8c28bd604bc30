// Package scripting provides a sandboxed GopherLua execution environment for
// scripted fighting stances. It has no dependency on the combat package; the
// engine passes plain snapshots in and reads plain snapshots back.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit bounds the opcodes a single hook call may execute
// when the configuration leaves the limit at zero.
const DefaultInstructionLimit = 100_000

// unsafeGlobals are removed from every sandboxed state after the base library
// is opened.
var unsafeGlobals = []string{"dofile", "loadfile", "load", "collectgarbage", "require"}

// opBudget is a context that cancels itself once Done has been polled more
// than its budget allows. The VM polls Done once per opcode, so the budget is
// an exact instruction count.
type opBudget struct {
	context.Context
	left   atomic.Int64
	cancel context.CancelFunc
}

// Done spends one instruction.
func (b *opBudget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}

func newOpBudget(limit int) *opBudget {
	ctx, cancel := context.WithCancel(context.Background())
	b := &opBudget{Context: ctx, cancel: cancel}
	b.left.Store(int64(limit))
	return b
}

// NewSandboxedState creates a GopherLua state with only the base, table,
// string and math libraries, no file or module loading, and an instruction
// budget of instLimit opcodes (DefaultInstructionLimit when instLimit <= 0).
//
// Postcondition: the caller owns L and must call cancel and L.Close.
func NewSandboxedState(instLimit int) (L *lua.LState, cancel context.CancelFunc) {
	L = lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
	for _, name := range unsafeGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	return L, setBudget(L, instLimit)
}

// setBudget gives L a fresh instruction budget. Every hook call starts with a
// full budget.
func setBudget(L *lua.LState, instLimit int) context.CancelFunc {
	if instLimit <= 0 {
		instLimit = DefaultInstructionLimit
	}
	b := newOpBudget(instLimit)
	L.SetContext(b)
	return b.cancel
}
