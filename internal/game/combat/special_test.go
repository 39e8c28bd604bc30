package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/melee/internal/game/condition"
	"github.com/cory-johannsen/melee/internal/game/inventory"
	"github.com/cory-johannsen/melee/internal/testutil"
)

func TestPerformSpecialAttacks_PoisonousFangs(t *testing.T) {
	e := newTestEngine(t, testutil.MinSource())
	att := newCharacter("you", KindPlayer)
	att.Traits = map[string]bool{TraitFangs: true, TraitPoisonous: true}
	tgt := newMonster("zombie")

	x := newExchange(e, att, tgt)
	e.performSpecialAttacks(x)

	assert.Equal(t, 20, x.stab)
	assert.Zero(t, x.bash)
	require.Len(t, x.res.Specials, 1)
	assert.Equal(t, 20, x.res.Specials[0].Stab)
	assert.True(t, tgt.HasStatus(condition.Poison))
	assert.Equal(t, []string{"You sink your fangs into the zombie!", "You poison the zombie!"}, x.res.Messages)

	// An already poisoned target is poisoned longer without a second notice.
	x = newExchange(e, att, tgt)
	e.performSpecialAttacks(x)
	assert.Equal(t, []string{"You sink your fangs into the zombie!"}, x.res.Messages)
	assert.True(t, tgt.HasStatus(condition.Poison))
}

func TestPerformSpecialAttacks_FangsNeedAnUncoveredMouth(t *testing.T) {
	src := testutil.NewScriptedSource()
	e := newTestEngine(t, src)
	att := newCharacter("you", KindPlayer)
	att.Traits = map[string]bool{TraitFangs: true, TraitPoisonous: true}
	att.Worn = inventory.Worn{{ID: "mask", Coverage: []inventory.BodyPart{inventory.PartMouth}}}
	tgt := newMonster("zombie")

	x := newExchange(e, att, tgt)
	e.performSpecialAttacks(x)

	assert.Empty(t, x.res.Specials)
	assert.Empty(t, x.res.Messages)
	assert.False(t, tgt.HasStatus(condition.Poison))
	assert.Empty(t, src.Calls())
}

func TestPerformSpecialAttacks_MonsterArmorStopsWeakAttacks(t *testing.T) {
	tests := []struct {
		name      string
		armorBash int
		wantBash  int
		wantMsgs  []string
	}{
		// Bash 3 does not beat 5, stab 3 does not beat 10*0.8.
		{"absorbed", 5, 0, nil},
		{"bash gets through", 2, 3, []string{"Brawler headbutts the zombie with their horns!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, testutil.MinSource())
			att := newCharacter("Brawler", KindNPC)
			att.Traits = map[string]bool{TraitHorns: true, TraitPoisonous: true}
			tgt := newMonster("zombie")
			tgt.ArmorBash, tgt.ArmorCut = tt.armorBash, 10

			x := newExchange(e, att, tgt)
			e.performSpecialAttacks(x)

			assert.Equal(t, tt.wantBash, x.bash)
			assert.Zero(t, x.stab)
			assert.Equal(t, tt.wantMsgs, x.res.Messages)
			assert.Len(t, x.res.Specials, len(tt.wantMsgs))
			// Only cut or stab that gets through can carry poison.
			assert.False(t, tgt.HasStatus(condition.Poison))
		})
	}
}

func TestMutationAttacks_TentacleCount(t *testing.T) {
	greatsword := &inventory.WeaponDef{ID: "greatsword", Name: "greatsword", Cut: 20, Weight: 4000}
	tests := []struct {
		name   string
		trait  string
		weapon *inventory.WeaponDef
		want   int
	}{
		{"one tentacle", TraitTentacles, nil, 1},
		{"four tentacles", TraitTentacles4, nil, 3},
		{"four tentacles two-handed", TraitTentacles4, greatsword, 2},
		{"eight tentacles", TraitTentacles8, nil, 7},
		{"eight tentacles two-handed", TraitTentacles8, greatsword, 6},
		{"one tentacle two-handed", TraitTentacles, greatsword, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, testutil.MinSource())
			att := newCharacter("Brawler", KindNPC)
			att.Traits = map[string]bool{tt.trait: true}
			att.Weapon = tt.weapon
			tgt := newMonster("zombie")

			x := newExchange(e, att, tgt)
			e.performSpecialAttacks(x)

			require.Len(t, x.res.Specials, tt.want)
			// Each slap bashes for str/2.
			assert.Equal(t, 4*tt.want, x.bash)
			for _, msg := range x.res.Messages {
				assert.Equal(t, "Brawler slaps the zombie with their tentacle!", msg)
			}
		})
	}
}

func TestMutationAttacks_TentacleDrawsOncePerTentacle(t *testing.T) {
	// 1-in-10 for each of three tentacles: only the second lands.
	src := testutil.NewScriptedSource(3, 0, 5)
	e := newTestEngine(t, src)
	att := newCharacter("Brawler", KindNPC)
	att.Traits = map[string]bool{TraitTentacles4: true}

	got := e.MutationAttacks(att, newMonster("zombie"))

	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Bash)
	assert.Equal(t, []int{10, 10, 10}, src.Calls())
}
