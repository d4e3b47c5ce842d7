// internal/defs/registry.go
package defs

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// Registry holds the loaded unit catalog and skill descriptors. It is
// built once at startup and injected wherever definitions are needed;
// there is no package-global library.
type Registry struct {
	units  map[int]UnitDefinition
	skills map[string]SkillDefinition
}

// NewRegistry validates and indexes the given definitions.
func NewRegistry(units []UnitDefinition, skills []SkillDefinition) (*Registry, error) {
	r := &Registry{
		units:  make(map[int]UnitDefinition, len(units)),
		skills: make(map[string]SkillDefinition, len(skills)),
	}
	for _, def := range skills {
		if def.ID == "" {
			return nil, fmt.Errorf("skill definition with empty id")
		}
		if _, dup := r.skills[def.ID]; dup {
			return nil, fmt.Errorf("duplicate skill definition %q", def.ID)
		}
		switch def.Strategy {
		case StrategyClosest, StrategyFurthest, StrategyFrontmost,
			StrategyRearmost, StrategyMirror, StrategySpiral, StrategyCompanion:
		default:
			return nil, fmt.Errorf("skill %q: unknown strategy %q", def.ID, def.Strategy)
		}
		if def.Strategy == StrategyCompanion && def.Companions < 1 {
			return nil, fmt.Errorf("skill %q: companion skill needs companions >= 1", def.ID)
		}
		if def.Targets > 1 && def.Strategy != StrategyClosest && def.Strategy != StrategyFurthest {
			return nil, fmt.Errorf("skill %q: multi-target is only supported for pool strategies", def.ID)
		}
		r.skills[def.ID] = def
	}
	for _, def := range units {
		if def.Num <= 0 {
			return nil, fmt.Errorf("unit %q: non-positive catalog number %d", def.ID, def.Num)
		}
		if def.Range < 1 {
			return nil, fmt.Errorf("unit %q: base range %d below 1", def.ID, def.Range)
		}
		if _, dup := r.units[def.Num]; dup {
			return nil, fmt.Errorf("duplicate unit catalog number %d", def.Num)
		}
		if def.SkillID != "" {
			if _, ok := r.skills[def.SkillID]; !ok {
				return nil, fmt.Errorf("unit %q references unknown skill %q", def.ID, def.SkillID)
			}
		}
		r.units[def.Num] = def
	}
	return r, nil
}

// LoadRegistry reads unit and skill definition files and builds a registry.
func LoadRegistry(unitsPath, skillsPath string) (*Registry, error) {
	unitsData, err := os.ReadFile(unitsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read unit definitions file: %w", err)
	}
	var units []UnitDefinition
	if err := json.Unmarshal(unitsData, &units); err != nil {
		return nil, fmt.Errorf("failed to unmarshal unit definitions: %w", err)
	}

	skillsData, err := os.ReadFile(skillsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read skill definitions file: %w", err)
	}
	var skills []SkillDefinition
	if err := json.Unmarshal(skillsData, &skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skill definitions: %w", err)
	}

	r, err := NewRegistry(units, skills)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d unit and %d skill definitions", len(r.units), len(r.skills))
	return r, nil
}

// Unit looks up a unit definition by catalog number.
func (r *Registry) Unit(num int) (UnitDefinition, bool) {
	def, ok := r.units[num]
	return def, ok
}

// Skill looks up a skill definition by ID.
func (r *Registry) Skill(id string) (SkillDefinition, bool) {
	def, ok := r.skills[id]
	return def, ok
}

// UnitSkill returns the skill descriptor of a unit, if it has one.
func (r *Registry) UnitSkill(num int) (SkillDefinition, bool) {
	unit, ok := r.units[num]
	if !ok || unit.SkillID == "" {
		return SkillDefinition{}, false
	}
	return r.Skill(unit.SkillID)
}
