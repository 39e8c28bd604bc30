package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers all engine.* Lua tables into L:
//
//	engine.log.debug/info/warn/error(msg)
//	engine.dice.rng(lo, hi), engine.dice.roll(n, sides), engine.dice.one_in(n)
//
// Dice draws go through the Manager's Roller, so scripted stances share the
// engine's random sequence.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetGlobal("engine", engine)

	logTbl := L.NewTable()
	for name, fn := range map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	} {
		L.SetField(logTbl, name, L.NewFunction(func(L *lua.LState) int {
			fn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	L.SetField(engine, "log", logTbl)

	diceTbl := L.NewTable()
	L.SetField(diceTbl, "rng", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(m.roller.Rng(L.CheckInt(1), L.CheckInt(2))))
		return 1
	}))
	L.SetField(diceTbl, "roll", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(m.roller.Dice(L.CheckInt(1), L.CheckInt(2))))
		return 1
	}))
	L.SetField(diceTbl, "one_in", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(m.roller.OneIn(L.CheckInt(1))))
		return 1
	}))
	L.SetField(engine, "dice", diceTbl)
}
