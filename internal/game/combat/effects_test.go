package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/melee/internal/game/condition"
	"github.com/cory-johannsen/melee/internal/game/inventory"
	"github.com/cory-johannsen/melee/internal/testutil"
)

func blade() *inventory.WeaponDef {
	return &inventory.WeaponDef{ID: "blade", Name: "blade", Cut: 10, Volume: 3, Weight: 500}
}

func noStuckArmor() Tuning {
	tn := DefaultTuning()
	tn.StuckArmor = 0
	return tn
}

func TestWeaponStuck_PenaltyEqualToRollKeepsWeapon(t *testing.T) {
	grid := NewGrid()
	// Two d20s for strength 1 show 20 and 20.
	src := testutil.NewScriptedSource(19, 19)
	e := newTestEngineWith(t, src, grid, noStuckArmor())
	att := newCharacter("you", KindPlayer)
	att.Cur.Str = 1
	att.Weapon = blade()
	x := newExchange(e, att, newCharacter("Raider", KindNPC))

	e.weaponStuck(x, att.Weapon, false)

	require.NotNil(t, att.Weapon)
	assert.False(t, x.res.WeaponLost)
	assert.Equal(t, -40, att.Moves)
	assert.Empty(t, x.res.Messages)
	assert.Zero(t, src.Remaining())
}

func TestWeaponStuck_PenaltyAboveRollLosesWeapon(t *testing.T) {
	grid := NewGrid()
	src := testutil.NewScriptedSource(19, 18)
	e := newTestEngineWith(t, src, grid, noStuckArmor())
	att := newCharacter("you", KindPlayer)
	att.Cur.Str = 1
	att.Weapon = blade()
	x := newExchange(e, att, newCharacter("Raider", KindNPC))

	e.weaponStuck(x, att.Weapon, false)

	assert.Nil(t, att.Weapon)
	assert.True(t, x.res.WeaponLost)
	assert.Zero(t, att.Moves)
	assert.Equal(t, []string{"Your blade gets stuck in Raider, pulling it out of your hands!"}, x.res.Messages)
	items := grid.ItemsAt(att.Pos)
	require.Len(t, items, 1)
	assert.Equal(t, "blade", items[0].Weapon.ID)
}

func TestWeaponStuck_MonsterKeepsLodgedWeapon(t *testing.T) {
	src := testutil.NewScriptedSource(19, 18)
	e := newTestEngineWith(t, src, NewGrid(), noStuckArmor())
	att := newCharacter("Brawler", KindNPC)
	att.Cur.Str = 1
	att.Weapon = blade()
	tgt := newMonster("zombie")
	x := newExchange(e, att, tgt)

	e.weaponStuck(x, att.Weapon, false)

	assert.True(t, x.res.WeaponLost)
	require.Len(t, tgt.Carried, 1)
	assert.Equal(t, "blade", tgt.Carried[0].ID)
	assert.Equal(t, 85, tgt.Speed)
	assert.Empty(t, x.res.Messages)
}

func TestWeaponStuck_UnarmedNeverSticks(t *testing.T) {
	e := newTestEngineWith(t, testutil.NewScriptedSource(), NewGrid(), noStuckArmor())
	att := newCharacter("you", KindPlayer)
	x := newExchange(e, att, newCharacter("Raider", KindNPC))

	e.weaponStuck(x, att.ActiveWeapon(), true)
	assert.False(t, x.res.WeaponLost)
	assert.Zero(t, att.Moves)
}

func TestPostHit_CriticalBluntHitStunsMonster(t *testing.T) {
	e := newTestEngine(t, testutil.MaxSource())
	att := newCharacter("Brawler", KindNPC)
	att.Weapon = bat()
	tgt := newMonster("zombie")
	x := newExchange(e, att, tgt)
	x.crit = true
	x.bash = 40

	e.postHit(x)

	assert.Equal(t, 2, tgt.Statuses.Level(condition.Stunned))
	assert.Equal(t, -80, tgt.Moves)
	assert.False(t, tgt.HasStatus(condition.Downed))
}

func TestPostHit_HeavyStabForcesTargetDown(t *testing.T) {
	e := newTestEngine(t, testutil.MaxSource())
	att := newCharacter("Brawler", KindNPC)
	tgt := newCharacter("Raider", KindNPC)
	x := newExchange(e, att, tgt)
	x.stab = 100

	e.postHit(x)

	assert.True(t, tgt.HasStatus(condition.Downed))
	assert.Equal(t, -75, tgt.Moves)
	assert.Equal(t, []string{"Brawler forces Raider to the ground!"}, x.res.Messages)
}

func TestPostHit_ElectricMonsterShocksBareHands(t *testing.T) {
	e := newTestEngine(t, testutil.MaxSource())
	att := newCharacter("you", KindPlayer)
	att.Weapon = &inventory.WeaponDef{ID: "pipe", Name: "pipe", Bash: 6, Materials: []string{inventory.MaterialIron}}
	tgt := newMonster("zombie")
	tgt.Flags = map[string]bool{FlagElectric: true}
	x := newExchange(e, att, tgt)

	e.postHit(x)

	assert.Equal(t, 49, att.HP[HPTorso])
	assert.Equal(t, -50, att.Moves)
	assert.Contains(t, x.res.Messages, "Contact with the zombie shocks you!")
}

func TestShatter_GlassWeaponBreaks(t *testing.T) {
	grid := NewGrid()
	e := newTestEngineWith(t, testutil.MaxSource(), grid, DefaultTuning())
	att := newCharacter("Brawler", KindNPC)
	w := &inventory.WeaponDef{
		ID: "bottle", Name: "glass bottle", Bash: 4, Volume: 4,
		Materials: []string{inventory.MaterialGlass},
		Contents:  []string{"water"},
	}
	att.Weapon = w
	x := newExchange(e, att, newCharacter("Raider", KindNPC))

	e.shatter(x, w)

	assert.Nil(t, att.Weapon)
	assert.True(t, x.res.WeaponShattered)
	assert.Equal(t, 11, x.cut)
	assert.Equal(t, []string{"Brawler's glass bottle shatters!"}, x.res.Messages)
	assert.Equal(t, []SoundEvent{{At: Point{}, Volume: 16}}, grid.Sounds())
	items := grid.ItemsAt(Point{})
	require.Len(t, items, 1)
	assert.Equal(t, "water", items[0].ItemDefID)

	lost := 0
	for p := range att.HP {
		lost += att.MaxHP[p] - att.HP[p]
	}
	assert.Equal(t, 8, lost)
}

func TestBionicEffects_ShockMonster(t *testing.T) {
	// shock 1-in-3, drain coin, volts, multiplier.
	src := testutil.NewScriptedSource(0, 1, 1, 2)
	e := newTestEngine(t, src)
	att := newCharacter("you", KindPlayer)
	att.Bionics = map[string]bool{BionicShock: true}
	att.Power = 10
	tgt := newMonster("zombie")
	x := newExchange(e, att, tgt)

	e.bionicEffects(x)

	assert.Equal(t, 8, att.Power)
	assert.Equal(t, 200-3*3, tgt.HitPoints)
	assert.Equal(t, -3*180, tgt.Moves)
	assert.Equal(t, []string{"You shock the zombie."}, x.res.Messages)
	assert.Equal(t, []int{3, 2, 4, 3}, src.Calls())
}

func TestBionicEffects_ShockCharacterIsSilent(t *testing.T) {
	src := testutil.NewScriptedSource(0, 1, 0, 0)
	e := newTestEngine(t, src)
	att := newCharacter("Brawler", KindNPC)
	att.Bionics = map[string]bool{BionicShock: true}
	att.Power = 2
	att.Weapon = &inventory.WeaponDef{ID: "knife", Name: "knife", Cut: 6, Materials: []string{inventory.MaterialSteel}}
	tgt := newCharacter("Raider", KindNPC)
	x := newExchange(e, att, tgt)

	e.bionicEffects(x)

	assert.Zero(t, att.Power)
	assert.Equal(t, 48, tgt.HP[HPTorso])
	assert.Equal(t, -160, tgt.Moves)
	assert.Empty(t, x.res.Messages)
}

func TestBionicEffects_BlockedShockStillDrawsTheCoin(t *testing.T) {
	tests := []struct {
		name   string
		power  int
		weapon *inventory.WeaponDef
		flags  map[string]bool
	}{
		{"low power", 1, nil, nil},
		{"wooden weapon", 10, &inventory.WeaponDef{ID: "club", Name: "club", Bash: 8, Materials: []string{"wood"}}, nil},
		{"electric target", 10, nil, map[string]bool{FlagElectric: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := testutil.NewScriptedSource(0)
			e := newTestEngine(t, src)
			att := newCharacter("you", KindPlayer)
			att.Bionics = map[string]bool{BionicShock: true}
			att.Power = tt.power
			att.Weapon = tt.weapon
			tgt := newMonster("zombie")
			tgt.Flags = tt.flags
			x := newExchange(e, att, tgt)

			e.bionicEffects(x)

			assert.Equal(t, tt.power, att.Power)
			assert.Equal(t, 200, tgt.HitPoints)
			assert.Empty(t, x.res.Messages)
			assert.Equal(t, []int{2}, src.Calls())
		})
	}
}

func TestBionicEffects_HeatDrainWarmMonster(t *testing.T) {
	// coin, power regained, moves, speed.
	src := testutil.NewScriptedSource(0, 2, 20, 1)
	e := newTestEngine(t, src)
	att := newCharacter("you", KindPlayer)
	att.Bionics = map[string]bool{BionicHeatAbsorb: true}
	att.Power = 1
	tgt := newMonster("zombie")
	tgt.Flags = map[string]bool{FlagWarm: true}
	x := newExchange(e, att, tgt)

	e.bionicEffects(x)

	assert.Equal(t, 2, att.Power)
	assert.Equal(t, -100, tgt.Moves)
	assert.Equal(t, 95, tgt.Speed)
	assert.Equal(t, []string{"You drain the zombie's body heat!"}, x.res.Messages)
	assert.Equal(t, []int{2, 3, 41, 3}, src.Calls())
}

func TestBionicEffects_HeatDrainNeedsWarmthAndBareHands(t *testing.T) {
	tests := []struct {
		name   string
		weapon *inventory.WeaponDef
		warm   bool
	}{
		{"cold target", nil, false},
		{"armed", blade(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := testutil.NewScriptedSource(0)
			e := newTestEngine(t, src)
			att := newCharacter("you", KindPlayer)
			att.Bionics = map[string]bool{BionicHeatAbsorb: true}
			att.Power = 5
			att.Weapon = tt.weapon
			tgt := newMonster("zombie")
			tgt.Flags = map[string]bool{FlagWarm: tt.warm}
			x := newExchange(e, att, tgt)

			e.bionicEffects(x)

			assert.Equal(t, 5, att.Power)
			assert.Zero(t, tgt.Moves)
			assert.Empty(t, x.res.Messages)
			assert.Equal(t, []int{2}, src.Calls())
		})
	}
}

func TestBionicEffects_ShockThenDrain(t *testing.T) {
	// shock 1-in-3, coin, volts, multiplier, power regained, moves.
	src := testutil.NewScriptedSource(0, 0, 0, 0, 1, 0)
	e := newTestEngine(t, src)
	att := newCharacter("Brawler", KindNPC)
	att.Bionics = map[string]bool{BionicShock: true, BionicHeatAbsorb: true}
	att.Power = 3
	tgt := newCharacter("Raider", KindNPC)
	x := newExchange(e, att, tgt)

	e.bionicEffects(x)

	// 3 - 1 for the drain - 2 for the shock + 1 regained.
	assert.Equal(t, 1, att.Power)
	assert.Equal(t, 48, tgt.HP[HPTorso])
	assert.Equal(t, -160-80, tgt.Moves)
	assert.Equal(t, []string{"Brawler drains Raider's body heat!"}, x.res.Messages)
	assert.Equal(t, []int{3, 2, 4, 3, 3, 41}, src.Calls())
}
