package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/melee/internal/game/inventory"
	"github.com/cory-johannsen/melee/internal/testutil"
)

func TestPractice_MonstersDoNotLearn(t *testing.T) {
	src := testutil.NewScriptedSource()
	e := newTestEngine(t, src)
	m := newMonster("m")

	e.practice(m, true, true, true, true, true)
	assert.Nil(t, m.Practice)
	assert.Empty(t, src.Calls())
}

func TestPractice_MissTrainsTwoPoints(t *testing.T) {
	// melee rng(2,5) shows 3; unarmed rng(2,2) draws once.
	src := testutil.NewScriptedSource(1, 0)
	e := newTestEngine(t, src)
	c := newCharacter("c", KindNPC)

	e.practice(c, false, true, false, false, false)
	assert.Equal(t, map[Skill]int{SkillMelee: 3, SkillUnarmed: 2}, c.Practice)
	assert.Equal(t, []int{4, 1}, src.Calls())
}

func TestPractice_StabWeaponOrderFollowsCoin(t *testing.T) {
	// melee 10, coin heads, then stabbing 5 before cutting 6.
	src := testutil.NewScriptedSource(5, 0, 0, 1)
	e := newTestEngine(t, src)
	c := newCharacter("c", KindNPC)
	c.Weapon = &inventory.WeaponDef{ID: "knife", Cut: 12, Flags: []string{inventory.FlagStab}}

	e.practice(c, true, false, false, true, true)
	assert.Equal(t, map[Skill]int{SkillMelee: 10, SkillStabbing: 5, SkillCutting: 6}, c.Practice)
	assert.Equal(t, []int{6, 2, 6, 6}, src.Calls())
}

func TestPractice_SpearSkipsCoin(t *testing.T) {
	src := testutil.NewScriptedSource(0, 5, 0)
	e := newTestEngine(t, src)
	c := newCharacter("c", KindNPC)
	c.Weapon = &inventory.WeaponDef{ID: "spear", Cut: 8, Bash: 9, Flags: []string{inventory.FlagSpear}}

	e.practice(c, true, false, true, false, true)
	assert.Equal(t, map[Skill]int{SkillMelee: 5, SkillStabbing: 10, SkillBashing: 5}, c.Practice)
	assert.Zero(t, src.Remaining())
}
