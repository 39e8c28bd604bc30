package scripting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/melee/internal/game/dice"
)

// StanceCall is the snapshot of an exchange handed to a stance hook and read
// back from it. Hooks may change the damage triple and the attacker's
// remaining dodges and blocks.
type StanceCall struct {
	Attacker   string
	Target     string
	Critical   bool
	Bash       int
	Cut        int
	Stab       int
	DodgesLeft int
	BlocksLeft int
}

// Manager owns one sandboxed LState holding every stance script.
//
// Manager is safe for concurrent use; calls into the VM are serialized.
type Manager struct {
	mu        sync.Mutex
	L         *lua.LState
	cancel    context.CancelFunc
	instLimit int
	roller    *dice.Roller
	logger    *zap.Logger
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: roller must be non-nil.
// Postcondition: Returns a non-nil Manager. A nil logger is replaced by a no-op logger.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{roller: roller, logger: logger}
}

// Load creates a sandboxed VM, registers all engine.* modules, then executes
// every *.lua file in scriptDir in lexicographic order. A previously loaded
// VM is replaced.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: returns error on Lua load failure and keeps the old VM.
func (m *Manager) Load(scriptDir string, instLimit int) error {
	L, cancel := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		cancel()
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	if m.L != nil {
		m.cancel()
		m.L.Close()
	}
	m.L = L
	m.cancel = cancel
	m.instLimit = instLimit
	m.mu.Unlock()
	m.logger.Info("scripting: loaded stance scripts",
		zap.String("dir", scriptDir),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

// Close releases the VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L != nil {
		m.cancel()
		m.L.Close()
		m.L = nil
	}
}

// HasHook reports whether a global function named hook is defined.
func (m *Manager) HasHook(hook string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L == nil {
		return false
	}
	_, ok := m.L.GetGlobal(hook).(*lua.LFunction)
	return ok
}

// CallHook calls the named Lua global function with a fresh instruction
// budget. Returns (LNil, nil) if the hook is not defined or no VM is loaded.
// Lua runtime errors are logged at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callLocked(hook, args...)
}

func (m *Manager) callLocked(hook string, args ...lua.LValue) (lua.LValue, error) {
	if m.L == nil {
		m.logger.Info("scripting: no VM loaded",
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}
	L := m.L
	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	m.cancel()
	m.cancel = setBudget(L, m.instLimit)

	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// CallStance runs a stance hook. The hook receives a table with the fields
// attacker, target, critical, bash, cut, stab, dodges_left and blocks_left,
// and may return a table with any of the numeric fields changed plus an
// optional messages array. A missing hook, a runtime error or a non-table
// return leaves call unchanged.
//
// Postcondition: Returns the updated snapshot and the messages to show.
func (m *Manager) CallStance(hook string, call StanceCall) (StanceCall, []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L == nil {
		m.logger.Warn("scripting: stance hook without a loaded VM",
			zap.String("hook", hook),
		)
		return call, nil
	}
	L := m.L
	if _, ok := L.GetGlobal(hook).(*lua.LFunction); !ok {
		m.logger.Warn("scripting: stance hook not defined",
			zap.String("hook", hook),
		)
		return call, nil
	}

	in := L.NewTable()
	in.RawSetString("attacker", lua.LString(call.Attacker))
	in.RawSetString("target", lua.LString(call.Target))
	in.RawSetString("critical", lua.LBool(call.Critical))
	in.RawSetString("bash", lua.LNumber(call.Bash))
	in.RawSetString("cut", lua.LNumber(call.Cut))
	in.RawSetString("stab", lua.LNumber(call.Stab))
	in.RawSetString("dodges_left", lua.LNumber(call.DodgesLeft))
	in.RawSetString("blocks_left", lua.LNumber(call.BlocksLeft))

	ret, err := m.callLocked(hook, in)
	if err != nil {
		m.logger.Warn("scripting: stance hook failed",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return call, nil
	}
	out, ok := ret.(*lua.LTable)
	if !ok {
		if ret != lua.LNil {
			m.logger.Warn("scripting: stance hook returned a non-table",
				zap.String("hook", hook),
				zap.String("type", ret.Type().String()),
			)
		}
		return call, nil
	}

	call.Bash = intField(out, "bash", call.Bash)
	call.Cut = intField(out, "cut", call.Cut)
	call.Stab = intField(out, "stab", call.Stab)
	call.DodgesLeft = intField(out, "dodges_left", call.DodgesLeft)
	call.BlocksLeft = intField(out, "blocks_left", call.BlocksLeft)

	var msgs []string
	if t, ok := out.RawGetString("messages").(*lua.LTable); ok {
		t.ForEach(func(_, v lua.LValue) {
			if s, ok := v.(lua.LString); ok {
				msgs = append(msgs, string(s))
			}
		})
	}
	return call, msgs
}

// intField reads a numeric field from t, returning def when absent or not a number.
func intField(t *lua.LTable, key string, def int) int {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return def
}
