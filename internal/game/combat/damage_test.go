package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/melee/internal/game/dice"
	"github.com/cory-johannsen/melee/internal/game/inventory"
	"github.com/cory-johannsen/melee/internal/testutil"
)

func TestBaseDamage(t *testing.T) {
	tests := []struct {
		str      int
		min, max int
	}{
		{8, 0, 4},
		{10, 0, 5},
		{20, 5, 15},
		// Both bonuses apply above 20: (24-9)/2 + 1.5*(24-20).
		{24, 13, 25},
		{-3, 0, 0},
	}
	for _, tt := range tests {
		lo := newTestEngine(t, testutil.MinSource())
		hi := newTestEngine(t, testutil.MaxSource())
		assert.Equal(t, tt.min, lo.BaseDamage(tt.str), "min for str %d", tt.str)
		assert.Equal(t, tt.max, hi.BaseDamage(tt.str), "max for str %d", tt.str)
	}
}

func bat() *inventory.WeaponDef {
	return &inventory.WeaponDef{ID: "bat", Name: "bat", Bash: 10, Volume: 5, Weight: 900}
}

func TestRollBash_ArmedAtMaximum(t *testing.T) {
	e := newTestEngine(t, testutil.MaxSource())
	c := newCharacter("c", KindNPC)
	c.Weapon = bat()

	// 14 raw bash is softened toward the limit of 13.
	assert.Equal(t, 17, e.rollBash(c, noStance, nil, false))
	assert.Equal(t, 29, e.rollBash(c, noStance, nil, true))
}

func TestRollBash_MonsterArmor(t *testing.T) {
	e := newTestEngine(t, testutil.MaxSource())
	c := newCharacter("c", KindNPC)
	c.Weapon = bat()
	m := newMonster("m")
	m.ArmorBash = 6

	assert.Equal(t, 11, e.rollBash(c, noStance, m, false))
	assert.Equal(t, 26, e.rollBash(c, noStance, m, true))
}

func TestRollBash_PlasticMonsterSoaksBash(t *testing.T) {
	e := newTestEngine(t, testutil.MaxSource())
	c := newCharacter("c", KindNPC)
	c.Weapon = bat()
	m := newMonster("m")
	m.Flags = map[string]bool{FlagPlastic: true}

	// 13 divided by 4 is 3, lifted to the skill floor of 4, plus 4 base.
	assert.Equal(t, 8, e.rollBash(c, noStance, m, false))
}

func TestRollCut_SkillScaling(t *testing.T) {
	src := testutil.NewScriptedSource()
	e := newTestEngine(t, src)
	c := newCharacter("c", KindNPC)
	c.Weapon = &inventory.WeaponDef{ID: "blade", Cut: 10}
	c.Skills[SkillCutting] = 5

	assert.Equal(t, 12, e.rollCut(c, nil, false))
	assert.Empty(t, src.Calls())
}

func TestRollCut_MonsterArmorHalvedOnCrit(t *testing.T) {
	e := newTestEngine(t, testutil.NewScriptedSource())
	c := newCharacter("c", KindNPC)
	c.Weapon = &inventory.WeaponDef{ID: "blade", Cut: 10}
	m := newMonster("m")
	m.ArmorCut = 4

	assert.Equal(t, 4, e.rollCut(c, m, false))
	assert.Equal(t, 6, e.rollCut(c, m, true))
}

func TestRollCut_SpearNeverCuts(t *testing.T) {
	e := newTestEngine(t, testutil.NewScriptedSource())
	c := newCharacter("c", KindNPC)
	c.Weapon = &inventory.WeaponDef{ID: "spear", Cut: 20, Flags: []string{inventory.FlagSpear}}
	assert.Zero(t, e.rollCut(c, nil, true))
}

func TestRollStab(t *testing.T) {
	e := newTestEngine(t, testutil.MinSource())
	c := newCharacter("c", KindNPC)
	c.Weapon = &inventory.WeaponDef{ID: "knife", Cut: 12, Flags: []string{inventory.FlagStab}}

	assert.Equal(t, 3, e.rollStab(c, nil, false))

	c.Skills[SkillStabbing] = 5
	assert.Equal(t, 6, e.rollStab(c, nil, true))

	fast := newMonster("fast")
	fast.Speed = 150
	c.Skills[SkillStabbing] = 0
	// rng(5, 10) bonus at its minimum.
	assert.Equal(t, 8, e.rollStab(c, fast, false))
}

func TestRollStab_BareClaws(t *testing.T) {
	e := newTestEngine(t, testutil.NewScriptedSource())
	c := newCharacter("c", KindNPC)
	assert.Zero(t, e.rollStab(c, nil, false))

	c.Traits = map[string]bool{TraitClaws: true}
	assert.Equal(t, 6, e.rollStab(c, nil, false))

	c.Worn = inventory.Worn{{ID: "gloves", Coverage: []inventory.BodyPart{inventory.PartHands}}}
	assert.Zero(t, e.rollStab(c, nil, false))
}

func TestProperty_DamageRollsNonNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := NewEngine(dice.NewLoggedRoller(dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")), nil), nil, DefaultTuning(), nil, nil, nil)
		c := newCharacter("c", KindNPC)
		c.Cur.Str = rapid.IntRange(-5, 30).Draw(rt, "str")
		c.Skills[SkillBashing] = rapid.IntRange(0, 10).Draw(rt, "bashing")
		c.Skills[SkillCutting] = rapid.IntRange(0, 10).Draw(rt, "cutting")
		c.Skills[SkillStabbing] = rapid.IntRange(0, 10).Draw(rt, "stabbing")
		c.Weapon = &inventory.WeaponDef{
			ID:    "w",
			Bash:  rapid.IntRange(0, 40).Draw(rt, "bash"),
			Cut:   rapid.IntRange(0, 40).Draw(rt, "cut"),
			Flags: []string{rapid.SampledFrom([]string{"", inventory.FlagStab, inventory.FlagSpear}).Draw(rt, "flag")},
		}
		m := newMonster("m")
		m.ArmorBash = rapid.IntRange(0, 50).Draw(rt, "armor_bash")
		m.ArmorCut = rapid.IntRange(0, 50).Draw(rt, "armor_cut")
		m.Speed = rapid.IntRange(50, 300).Draw(rt, "speed")
		crit := rapid.Bool().Draw(rt, "crit")

		for _, tgt := range []*Combatant{nil, m} {
			if v := e.rollBash(c, noStance, tgt, crit); v < 0 {
				rt.Fatalf("bash %d", v)
			}
			if v := e.rollCut(c, tgt, crit); v < 0 {
				rt.Fatalf("cut %d", v)
			}
			if v := e.rollStab(c, tgt, crit); v < 0 {
				rt.Fatalf("stab %d", v)
			}
		}
	})
}

func TestStuckPenalty(t *testing.T) {
	e := newTestEngine(t, testutil.NewScriptedSource())
	c := newCharacter("c", KindNPC)
	c.Weapon = &inventory.WeaponDef{ID: "blade", Cut: 10}

	// 4*10 + 5*6 + 4*6 = 94, under the cap of 100.
	assert.Equal(t, 94, e.stuckPenalty(c, newCharacter("t", KindNPC), false))

	m := newMonster("m")
	m.ArmorBash, m.ArmorCut = 10, 10
	assert.Equal(t, 100, e.stuckPenalty(c, m, false))

	c.Weapon = &inventory.WeaponDef{ID: "style", Stance: "karate"}
	assert.Zero(t, e.stuckPenalty(c, m, false))
}
