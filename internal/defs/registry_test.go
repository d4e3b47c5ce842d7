// internal/defs/registry_test.go
package defs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func validDefs() ([]UnitDefinition, []SkillDefinition) {
	units := []UnitDefinition{
		{Num: 1, ID: "UNIT_A", Name: "A", Range: 1, SkillID: "SKILL_A"},
		{Num: 2, ID: "UNIT_B", Name: "B", Range: 3},
	}
	skills := []SkillDefinition{
		{ID: "SKILL_A", Name: "A", Strategy: StrategyClosest, Side: SideEnemy},
	}
	return units, skills
}

func TestNewRegistry(t *testing.T) {
	units, skills := validDefs()
	r, err := NewRegistry(units, skills)
	require.NoError(t, err)

	unit, ok := r.Unit(1)
	require.True(t, ok)
	require.Equal(t, "UNIT_A", unit.ID)

	_, ok = r.Unit(99)
	require.False(t, ok)

	skill, ok := r.UnitSkill(1)
	require.True(t, ok)
	require.Equal(t, StrategyClosest, skill.Strategy)

	// Unit 2 carries no skill.
	_, ok = r.UnitSkill(2)
	require.False(t, ok)
}

func TestNewRegistryValidation(t *testing.T) {
	tests := []struct {
		name   string
		units  []UnitDefinition
		skills []SkillDefinition
	}{
		{
			name:   "unknown strategy",
			skills: []SkillDefinition{{ID: "S", Strategy: "TELEPORT", Side: SideEnemy}},
		},
		{
			name:   "companion skill without companions",
			skills: []SkillDefinition{{ID: "S", Strategy: StrategyCompanion, Side: SideAlly}},
		},
		{
			name:   "multi-target mirror",
			skills: []SkillDefinition{{ID: "S", Strategy: StrategyMirror, Side: SideEnemy, Targets: 2}},
		},
		{
			name:   "empty skill id",
			skills: []SkillDefinition{{Strategy: StrategyClosest, Side: SideEnemy}},
		},
		{
			name: "duplicate skill id",
			skills: []SkillDefinition{
				{ID: "S", Strategy: StrategyClosest, Side: SideEnemy},
				{ID: "S", Strategy: StrategySpiral, Side: SideEnemy},
			},
		},
		{
			name:  "non-positive catalog number",
			units: []UnitDefinition{{Num: 0, ID: "U", Range: 1}},
		},
		{
			name:  "range below one",
			units: []UnitDefinition{{Num: 1, ID: "U", Range: 0}},
		},
		{
			name: "duplicate catalog number",
			units: []UnitDefinition{
				{Num: 1, ID: "U1", Range: 1},
				{Num: 1, ID: "U2", Range: 1},
			},
		},
		{
			name:  "dangling skill reference",
			units: []UnitDefinition{{Num: 1, ID: "U", Range: 1, SkillID: "MISSING"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.units, tt.skills)
			require.Error(t, err)
		})
	}
}

func TestSlots(t *testing.T) {
	require.Equal(t, 1, SkillDefinition{}.Slots())
	require.Equal(t, 1, SkillDefinition{Targets: 1}.Slots())
	require.Equal(t, 3, SkillDefinition{Targets: 3}.Slots())
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()
	units, skills := validDefs()

	unitsPath := filepath.Join(dir, "units.json")
	unitsData, err := json.Marshal(units)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(unitsPath, unitsData, 0o644))

	skillsPath := filepath.Join(dir, "skills.json")
	skillsData, err := json.Marshal(skills)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(skillsPath, skillsData, 0o644))

	r, err := LoadRegistry(unitsPath, skillsPath)
	require.NoError(t, err)
	_, ok := r.Unit(1)
	require.True(t, ok)

	_, err = LoadRegistry(filepath.Join(dir, "missing.json"), skillsPath)
	require.Error(t, err)
}
