package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/melee/internal/game/condition"
	"github.com/cory-johannsen/melee/internal/game/dice"
	"github.com/cory-johannsen/melee/internal/game/inventory"
	"github.com/cory-johannsen/melee/internal/game/technique"
	"github.com/cory-johannsen/melee/internal/testutil"
)

func allOffense() *inventory.WeaponDef {
	return &inventory.WeaponDef{
		ID:   "master",
		Name: "master blade",
		Bash: 10,
		Cut:  10,
		Techniques: technique.Set{
			technique.Sweep, technique.Precise, technique.Brutal,
			technique.Disarm, technique.Grab, technique.Rapid, technique.Throw, technique.Wide,
		},
	}
}

func TestPickTechnique_NoCandidatesDrawsNothing(t *testing.T) {
	src := testutil.NewScriptedSource()
	e := newTestEngine(t, src)
	x := newExchange(e, newCharacter("a", KindNPC), newMonster("m"))
	x.crit = true

	assert.Equal(t, technique.None, e.pickTechnique(x))
	assert.Empty(t, src.Calls())
}

func TestPickTechnique_CritOnlyTierFirst(t *testing.T) {
	// Precise alone qualifies; the draw picks between it and NONE.
	src := testutil.NewScriptedSource(0)
	e := newTestEngine(t, src)
	att := newCharacter("a", KindNPC)
	att.Weapon = &inventory.WeaponDef{ID: "w", Techniques: technique.Set{technique.Precise, technique.Rapid}}
	x := newExchange(e, att, newMonster("m"))
	x.crit = true

	assert.Equal(t, technique.Precise, e.pickTechnique(x))
	assert.Equal(t, []int{2}, src.Calls())
}

func TestPickTechnique_NoneIsAlwaysACandidate(t *testing.T) {
	src := testutil.NewScriptedSource(1)
	e := newTestEngine(t, src)
	att := newCharacter("a", KindNPC)
	att.Weapon = &inventory.WeaponDef{ID: "w", Techniques: technique.Set{technique.Rapid}}
	x := newExchange(e, att, newMonster("m"))

	assert.Equal(t, technique.None, e.pickTechnique(x))
}

func TestPickTechnique_SweepNeedsStandingGroundedTarget(t *testing.T) {
	e := newTestEngine(t, testutil.NewScriptedSource())
	att := newCharacter("a", KindNPC)
	att.Weapon = &inventory.WeaponDef{ID: "w", Techniques: technique.Set{technique.Sweep}}

	flier := newMonster("bat")
	flier.Flags = map[string]bool{FlagFlies: true}
	x := newExchange(e, att, flier)
	x.crit = true
	assert.Equal(t, technique.None, e.pickTechnique(x))

	down := newMonster("m")
	down.AddStatus(condition.Downed, 1, 0, 0)
	x = newExchange(e, att, down)
	x.crit = true
	assert.Equal(t, technique.None, e.pickTechnique(x))
}

func TestProperty_PickTechnique_CritOnlyNeedsCrit(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		grid := NewGrid()
		e := NewEngine(dice.NewLoggedRoller(dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")), nil), nil, DefaultTuning(), grid, nil, nil)
		att := newCharacter("a", KindNPC)
		att.Weapon = allOffense()
		att.Cur.Str = rapid.IntRange(0, 20).Draw(rt, "str")
		var tgt *Combatant
		if rapid.Bool().Draw(rt, "monster") {
			tgt = newMonster("m")
		} else {
			tgt = newCharacter("t", KindNPC)
			tgt.Weapon = bat()
		}
		tgt.Pos = Point{X: 1}
		require.NoError(rt, grid.Place(att))
		require.NoError(rt, grid.Place(tgt))
		bystanders := rapid.IntRange(0, 3).Draw(rt, "bystanders")
		for i := 0; i < bystanders; i++ {
			b := newCharacter("b", KindNPC)
			b.Pos = Point{X: -1, Y: i - 1}
			_ = grid.Place(b)
		}

		x := newExchange(e, att, tgt)
		x.allowGrab = rapid.Bool().Draw(rt, "allow_grab")
		got := e.pickTechnique(x)
		if got.CritOnly() {
			rt.Fatalf("picked %v without a critical", got)
		}
		if got == technique.Grab && !x.allowGrab {
			rt.Fatalf("picked grab during a follow-up")
		}
	})
}

func TestEnemiesAround_IgnoresSelfAndPrimary(t *testing.T) {
	grid := NewGrid()
	e := newTestEngineWith(t, testutil.NewScriptedSource(), grid, DefaultTuning())
	att := newCharacter("a", KindNPC)
	primary := newCharacter("p", KindNPC)
	primary.Pos = Point{X: 1}
	foe := newCharacter("f", KindNPC)
	foe.Pos = Point{X: -1, Y: 1}
	friend := newCharacter("friend", KindNPC)
	friend.Faction = att.Faction
	friend.Pos = Point{Y: -1}
	far := newCharacter("far", KindNPC)
	far.Pos = Point{X: 3}
	for _, c := range []*Combatant{att, primary, foe, friend, far} {
		require.NoError(t, grid.Place(c))
	}

	assert.Equal(t, 1-2, e.enemiesAround(att, primary))
	grid.Remove(friend)
	assert.Equal(t, 1, e.enemiesAround(att, primary))
}

func TestCanBeDisarmed(t *testing.T) {
	c := newCharacter("c", KindNPC)
	assert.False(t, canBeDisarmed(c))
	c.Weapon = bat()
	assert.True(t, canBeDisarmed(c))
	c.Weapon = &inventory.WeaponDef{ID: "style", Stance: "karate"}
	assert.False(t, canBeDisarmed(c))
	c.Weapon = &inventory.WeaponDef{ID: "knuckles", Flags: []string{inventory.FlagUnarmed}}
	assert.False(t, canBeDisarmed(c))
}

func TestPickTechnique_WideThreshold(t *testing.T) {
	tests := []struct {
		name  string
		techs technique.Set
		foes  int
		draw  int
		want  technique.Technique
		calls []int
	}{
		{"two foes suffice alone", technique.Set{technique.Wide}, 2, 0, technique.Wide, []int{2}},
		{"two foes lose to rapid", technique.Set{technique.Rapid, technique.Wide}, 2, 0, technique.Rapid, []int{2}},
		{"three foes join rapid", technique.Set{technique.Rapid, technique.Wide}, 3, 1, technique.Wide, []int{3}},
		{"one foe is not enough", technique.Set{technique.Wide}, 1, 0, technique.None, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := NewGrid()
			src := testutil.NewScriptedSource(tt.draw)
			e := newTestEngineWith(t, src, grid, DefaultTuning())
			att := newCharacter("a", KindNPC)
			att.Weapon = &inventory.WeaponDef{ID: "flail", Name: "flail", Techniques: tt.techs}
			tgt := newMonster("m")
			tgt.Pos = Point{X: 1}
			require.NoError(t, grid.Place(att))
			require.NoError(t, grid.Place(tgt))
			for i := 0; i < tt.foes; i++ {
				foe := newMonster("z")
				foe.Pos = Point{X: -1, Y: i - 1}
				require.NoError(t, grid.Place(foe))
			}

			assert.Equal(t, tt.want, e.pickTechnique(newExchange(e, att, tgt)))
			assert.Equal(t, tt.calls, src.Calls())
		})
	}
}
