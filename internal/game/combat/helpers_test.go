package combat

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/melee/internal/game/dice"
)

func newTestEngine(t *testing.T, src dice.Source) *Engine {
	t.Helper()
	return NewEngine(dice.NewLoggedRoller(src, nil), zaptest.NewLogger(t), DefaultTuning(), nil, nil, nil)
}

func newTestEngineWith(t *testing.T, src dice.Source, world World, tuning Tuning) *Engine {
	t.Helper()
	return NewEngine(dice.NewLoggedRoller(src, nil), zaptest.NewLogger(t), tuning, world, nil, nil)
}

// newCharacter returns a bare-handed average fighter with 50 hp in every pool.
func newCharacter(id string, kind Kind) *Combatant {
	c := &Combatant{
		ID:         id,
		Name:       id,
		Kind:       kind,
		Faction:    id,
		Cur:        Stats{Str: 8, Dex: 8, Int: 8, Per: 8},
		Max:        Stats{Str: 8, Dex: 8, Int: 8, Per: 8},
		Skills:     map[Skill]int{},
		Speed:      100,
		DodgesLeft: 1,
		BlocksLeft: 1,
	}
	for p := range c.HP {
		c.HP[p] = 50
		c.MaxHP[p] = 50
	}
	return c
}

func newMonster(id string) *Combatant {
	return &Combatant{
		ID:           id,
		Name:         id,
		Kind:         KindMonster,
		Faction:      "monsters",
		Size:         SizeMedium,
		Speed:        100,
		HitPoints:    200,
		MaxHitPoints: 200,
	}
}

func newExchange(e *Engine, att, tgt *Combatant) *exchange {
	return &exchange{
		att:       att,
		tgt:       tgt,
		stance:    e.stanceOf(att),
		allowGrab: true,
		res:       &Result{},
	}
}
