// Package variant provides data-driven fighter variants defined in YAML.
package variant

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/duel/internal/game/fighter"
)

// Template is a fighter archetype loaded from YAML. It carries both the
// starting attributes and the constants for every capability hook, and
// implements fighter.Variant directly.
type Template struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Level    int    `yaml:"level"`
	Health   int    `yaml:"health"`
	Strength int    `yaml:"strength"`
	Defense  int    `yaml:"defense"`

	ExperienceMult int `yaml:"experience_multiplier"`
	// CritChance is the probability in [0, 1] of a critical hit.
	CritChance float64 `yaml:"critical_hit_chance"`
	// CritMultiplier scales strength into critical damage, rounded down.
	CritMultiplier float64 `yaml:"critical_hit_multiplier"`
	// Evasion is the probability in [0, 1] of evading a hit.
	Evasion float64 `yaml:"evasion_chance"`
	// DefenseBonus is added to Defense when mitigating a hit.
	DefenseBonus int `yaml:"defense_bonus"`

	SorcererVulnerable bool `yaml:"affected_by_sorcerer"`
	WarriorVulnerable  bool `yaml:"affected_by_warrior"`
	// RequiresLivingTarget forbids attacks against defeated targets.
	RequiresLivingTarget bool `yaml:"requires_living_target"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff every field is in range; returns an error on
// the first violation otherwise.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("fighter template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("fighter template %q: name must not be empty", t.ID)
	}
	if t.Level < 1 {
		return fmt.Errorf("fighter template %q: level must be >= 1", t.ID)
	}
	if t.Health < 1 {
		return fmt.Errorf("fighter template %q: health must be >= 1", t.ID)
	}
	if t.Strength < 0 || t.Defense < 0 {
		return fmt.Errorf("fighter template %q: strength and defense must be >= 0", t.ID)
	}
	if t.ExperienceMult < 0 {
		return fmt.Errorf("fighter template %q: experience_multiplier must be >= 0", t.ID)
	}
	if !unit(t.CritChance) {
		return fmt.Errorf("fighter template %q: critical_hit_chance must be in [0, 1], got %v", t.ID, t.CritChance)
	}
	if !unit(t.Evasion) {
		return fmt.Errorf("fighter template %q: evasion_chance must be in [0, 1], got %v", t.ID, t.Evasion)
	}
	if t.CritMultiplier < 0 {
		return fmt.Errorf("fighter template %q: critical_hit_multiplier must be >= 0", t.ID)
	}
	return nil
}

func unit(p float64) bool { return p >= 0 && p <= 1 }

// State returns the template's starting attributes.
func (t *Template) State() fighter.State {
	return fighter.State{
		Health:   t.Health,
		Strength: t.Strength,
		Defense:  t.Defense,
		Name:     t.Name,
		Level:    t.Level,
	}
}

// Spawn creates a fighter driven by t and loaded with its starting attributes.
// Options are applied after the template state, so WithState overrides it.
//
// Precondition: t must have passed Validate.
func (t *Template) Spawn(opts ...fighter.Option) *fighter.Fighter {
	all := append([]fighter.Option{fighter.WithState(t.State())}, opts...)
	return fighter.New(t, all...)
}

func (t *Template) ExperienceMultiplier(fighter.State) int { return t.ExperienceMult }

func (t *Template) CriticalHitChance(fighter.State) float64 { return t.CritChance }

// CriticalHitDamage scales the fighter's current strength.
func (t *Template) CriticalHitDamage(s fighter.State) int {
	return int(math.Floor(float64(s.Strength) * t.CritMultiplier))
}

func (t *Template) EvasionChance(fighter.State) float64 { return t.Evasion }

// DefenseWhenAttacked adds the template bonus to the fighter's current defense.
func (t *Template) DefenseWhenAttacked(s fighter.State) int {
	return s.Defense + t.DefenseBonus
}

func (t *Template) AffectedBySorcerer() bool { return t.SorcererVulnerable }

func (t *Template) AffectedByWarrior() bool { return t.WarriorVulnerable }

// CanAttack refuses dead targets when RequiresLivingTarget is set.
func (t *Template) CanAttack(targetIsAlive bool) bool {
	return targetIsAlive || !t.RequiresLivingTarget
}

// AfterTurn is a no-op; templates carry no end-of-turn effects.
func (t *Template) AfterTurn(*fighter.Fighter) {}

// LoadTemplateFromBytes parses a single fighter template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading fighters dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
