// Package testutil provides deterministic randomness sources for tests that
// need to replay a melee exchange draw by draw.
package testutil

import (
	"fmt"
	"sync"
)

// ScriptedSource replays a fixed queue of Intn results and records the bound
// of every call, so tests can assert both the outcome and the draw order.
type ScriptedSource struct {
	mu       sync.Mutex
	values   []int
	calls    []int
	fallback func(n int) int
}

// NewScriptedSource returns a source that yields values in order.
// Once the queue is exhausted Intn panics unless a fallback was set with
// WithFallback.
func NewScriptedSource(values ...int) *ScriptedSource {
	return &ScriptedSource{values: append([]int(nil), values...)}
}

// WithFallback sets the function used after the queue runs dry.
//
// Postcondition: returns s for chaining.
func (s *ScriptedSource) WithFallback(fn func(n int) int) *ScriptedSource {
	s.fallback = fn
	return s
}

// Intn pops the next scripted value.
//
// Precondition: n > 0 and the scripted value lies in [0, n). A value outside
// that range means the script and the draw order disagree, and Intn panics.
func (s *ScriptedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 {
		panic("testutil: Intn called with n <= 0")
	}
	s.calls = append(s.calls, n)
	if len(s.values) == 0 {
		if s.fallback != nil {
			return s.fallback(n)
		}
		panic(fmt.Sprintf("testutil: scripted source exhausted at call %d (n=%d)", len(s.calls), n))
	}
	v := s.values[0]
	s.values = s.values[1:]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("testutil: scripted value %d out of range for Intn(%d) at call %d", v, n, len(s.calls)))
	}
	return v
}

// Calls returns the bound passed to each Intn call so far.
func (s *ScriptedSource) Calls() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.calls...)
}

// Remaining returns the number of scripted values not yet consumed.
func (s *ScriptedSource) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

// FuncSource adapts a function to dice.Source.
type FuncSource func(n int) int

// Intn calls f.
func (f FuncSource) Intn(n int) int { return f(n) }

// MaxSource always returns n-1, so every range roll lands on its upper bound,
// every die shows its highest face and OneIn(n>1) is always false.
func MaxSource() FuncSource {
	return func(n int) int { return n - 1 }
}

// MinSource always returns 0, so every range roll lands on its lower bound,
// every die shows 1 and OneIn is always true.
func MinSource() FuncSource {
	return func(int) int { return 0 }
}
