// internal/defs/types.go
package defs

// Strategy selects the targeting behavior of a skill. Units do not get
// bespoke skill code; each picks one strategy from this closed set,
// parameterized by the fields of SkillDefinition.
type Strategy string

const (
	StrategyClosest   Strategy = "CLOSEST"
	StrategyFurthest  Strategy = "FURTHEST"
	StrategyFrontmost Strategy = "FRONTMOST"
	StrategyRearmost  Strategy = "REARMOST"
	StrategyMirror    Strategy = "MIRROR"
	StrategySpiral    Strategy = "SPIRAL"
	StrategyCompanion Strategy = "COMPANION"
)

// TargetSide says which team a skill looks at, relative to its owner.
type TargetSide string

const (
	SideEnemy TargetSide = "ENEMY"
	SideAlly  TargetSide = "ALLY"
)

// UnitDefinition is one entry of the static unit catalog. Num is the
// catalog number units are placed by; Range is the base attack range.
// Name, faction and class are opaque to the engine.
type UnitDefinition struct {
	Num     int    `json:"num"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Faction string `json:"faction"`
	Class   string `json:"class"`
	Range   int    `json:"range"`
	SkillID string `json:"skill,omitempty"`
}

// SkillDefinition is the data-driven descriptor of one skill.
type SkillDefinition struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Strategy Strategy   `json:"strategy"`
	Side     TargetSide `json:"side"`
	// Targets is the number of target slots a multi-target skill fills;
	// zero means one.
	Targets int `json:"targets,omitempty"`
	// Companions is the number of units a COMPANION skill spawns.
	Companions int `json:"companions,omitempty"`
	// IncludeCompanions widens candidate pools to companion units.
	IncludeCompanions bool `json:"includeCompanions,omitempty"`
	// Color is the RGBA hint for the skill's visual modifiers.
	Color [4]uint8 `json:"color,omitempty"`
}

// Slots returns the effective number of target slots.
func (s SkillDefinition) Slots() int {
	if s.Targets < 1 {
		return 1
	}
	return s.Targets
}
