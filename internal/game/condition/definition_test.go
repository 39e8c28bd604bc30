package condition_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/melee/internal/game/condition"
)

func TestRegistry_Get_NotFound(t *testing.T) {
	reg := condition.NewRegistry()
	_, ok := reg.Get("nonexistent")
	assert.False(t, ok)
}

func TestRegistry_Resolve_ReturnsSamePointer(t *testing.T) {
	reg := condition.NewRegistry()
	a := reg.Resolve("bleeding")
	b := reg.Resolve("bleeding")
	assert.Same(t, a, b)
}

func TestDefaultRegistry_HasEngineStatuses(t *testing.T) {
	reg := condition.DefaultRegistry()
	for _, id := range []string{
		condition.Stunned, condition.Downed, condition.AttackBoost, condition.DodgeBoost,
		condition.DamageBoost, condition.SpeedBoost, condition.ArmorBoost, condition.ViperCombo,
		condition.Poison, condition.OnFire, condition.Drunk, condition.Sleep, condition.LyingDown,
	} {
		def, ok := reg.Get(id)
		if assert.True(t, ok, "status %q must be present", id) {
			assert.NoError(t, def.Validate())
		}
	}
}

func TestRegistry_All_Sorted(t *testing.T) {
	all := condition.DefaultRegistry().All()
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}

func TestStatusDef_Validate_JoinsViolations(t *testing.T) {
	def := &condition.StatusDef{DurationType: "forever", MaxIntensity: -1}
	err := def.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id must not be empty")
	assert.Contains(t, err.Error(), "duration_type")
	assert.Contains(t, err.Error(), "max_intensity")
}

func TestLoadDirectory_ParsesYAMLOverDefaults(t *testing.T) {
	dir := t.TempDir()
	yaml := `
id: stunned
name: Dazed
description: "Reeling from a blow."
duration_type: turns
max_intensity: 3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stunned.yaml"), []byte(yaml), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("ignored"), 0644))

	reg, err := condition.LoadDirectory(dir)
	require.NoError(t, err)
	got, ok := reg.Get(condition.Stunned)
	require.True(t, ok)
	assert.Equal(t, "Dazed", got.Name)
	assert.Equal(t, 3, got.MaxIntensity)
	_, ok = reg.Get(condition.Downed)
	assert.True(t, ok, "built-in statuses survive a content load")
}

func TestLoadDirectory_UnknownField_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	yaml := "id: x\nname: X\nduration_type: turns\nac_penalty: 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.yaml"), []byte(yaml), 0644))
	_, err := condition.LoadDirectory(dir)
	assert.Error(t, err)
}

func TestLoadDirectory_InvalidDef_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("id: x\nduration_type: rounds\n"), 0644))
	_, err := condition.LoadDirectory(dir)
	assert.Error(t, err)
}

func TestLoadDirectory_NonexistentDir_ReturnsError(t *testing.T) {
	_, err := condition.LoadDirectory("/nonexistent/path/that/does/not/exist")
	assert.Error(t, err)
}

func TestLoadDirectory_RealStatuses(t *testing.T) {
	reg, err := condition.LoadDirectory("../../../content/statuses")
	require.NoError(t, err)
	for _, id := range []string{condition.Stunned, condition.Downed, condition.Poison, condition.OnFire} {
		_, ok := reg.Get(id)
		assert.True(t, ok, "status %q must be present", id)
	}
}

func TestPropertyRegistry_RegisterThenGet(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		id := rapid.StringMatching(`[a-z_]{3,12}`).Draw(t, "id")
		reg := condition.NewRegistry()
		def := &condition.StatusDef{ID: id, Name: id, DurationType: condition.DurationPermanent}
		reg.Register(def)
		got, ok := reg.Get(id)
		assert.True(t, ok)
		assert.Equal(t, def, got)
	})
}
