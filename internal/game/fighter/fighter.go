// Package fighter implements the combat core shared by every fighter variant:
// attack and defense resolution, probability checks against an injected
// random.Source, damage application, and the experience hook.
//
// The package is intentionally incomplete on its own. Concrete behaviour comes
// from a Variant, which supplies critical-hit, evasion, defense, and experience
// values; Fighter owns the state and the resolution algorithm.
package fighter

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/duel/internal/game/random"
)

// Variant is the capability contract every concrete fighter type must satisfy.
// Numeric hooks receive a snapshot of the fighter's current attributes so a
// variant can derive its values from them.
type Variant interface {
	// ExperienceMultiplier scales level into awarded experience.
	ExperienceMultiplier(s State) int
	// CriticalHitChance is the probability in [0, 1] that an attack is critical.
	CriticalHitChance(s State) float64
	// CriticalHitDamage is the damage dealt on a critical hit.
	CriticalHitDamage(s State) int
	// EvasionChance is the probability in [0, 1] that an incoming hit is evaded.
	EvasionChance(s State) float64
	// DefenseWhenAttacked is the mitigation applied to a hit that was not evaded.
	DefenseWhenAttacked(s State) int
	// AffectedBySorcerer tags variants vulnerable to sorcerer-type effects.
	AffectedBySorcerer() bool
	// AffectedByWarrior tags variants vulnerable to warrior-type effects.
	AffectedByWarrior() bool
	// CanAttack reports whether an attack may proceed against a target whose
	// liveness is targetIsAlive.
	CanAttack(targetIsAlive bool) bool
	// AfterTurn runs end-of-turn effects for f.
	AfterTurn(f *Fighter)
}

// Defaults supplies the overridable Variant behaviour. Embed it in a variant to
// inherit an unrestricted CanAttack and a no-op AfterTurn.
type Defaults struct{}

// CanAttack always permits the attack.
func (Defaults) CanAttack(bool) bool { return true }

// AfterTurn does nothing.
func (Defaults) AfterTurn(*Fighter) {}

// Target is anything that can receive an attack.
type Target interface {
	Name() string
	IsAlive() bool
	// BeAttacked resolves incomingDamage against the target and returns the
	// damage reported for the hit.
	BeAttacked(incomingDamage int) int
}

// Fighter is one combat participant.
//
// Invariant: IsAlive() == (Health() > 0) at every observation point.
// A Fighter is not safe for concurrent use; confine it to one goroutine at a time.
type Fighter struct {
	variant Variant
	state   State
	rnd     random.Source
	logger  *zap.Logger

	// zeroReport preserves the legacy contract where BeAttacked always reports 0.
	zeroReport bool
}

// Option configures a Fighter at construction.
type Option func(*Fighter)

// WithRandomSource replaces the default crypto-backed source.
func WithRandomSource(src random.Source) Option {
	return func(f *Fighter) { f.rnd = src }
}

// WithLogger sets the logger used for combat events.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Fighter) { f.logger = logger }
}

// WithState loads initial attributes.
func WithState(s State) Option {
	return func(f *Fighter) { f.state = s }
}

// WithZeroDamageReport makes BeAttacked report 0 for every hit while still
// applying the damage to health.
func WithZeroDamageReport() Option {
	return func(f *Fighter) { f.zeroReport = true }
}

// New creates a Fighter driven by v.
//
// Precondition: v must be non-nil. Panics otherwise.
// Postcondition: The fighter owns a non-nil random source and logger.
func New(v Variant, opts ...Option) *Fighter {
	if v == nil {
		panic("fighter: New called with nil Variant")
	}
	f := &Fighter{
		variant: v,
		rnd:     random.NewCryptoSource(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rnd == nil {
		panic("fighter: nil random source")
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	return f
}

// SetRandomSource replaces the fighter's random source.
//
// Precondition: src must be non-nil. Panics otherwise.
func (f *Fighter) SetRandomSource(src random.Source) {
	if src == nil {
		panic("fighter: SetRandomSource called with nil source")
	}
	f.rnd = src
}

// RandomSource returns the source currently in use.
func (f *Fighter) RandomSource() random.Source { return f.rnd }

// Variant returns the capability provider behind this fighter.
func (f *Fighter) Variant() Variant { return f.variant }

// Health returns current health. It may be negative once defeated.
func (f *Fighter) Health() int { return f.state.Health }

// Strength returns base attack power.
func (f *Fighter) Strength() int { return f.state.Strength }

func (f *Fighter) Defense() int { return f.state.Defense }

func (f *Fighter) Name() string { return f.state.Name }

func (f *Fighter) Level() int { return f.state.Level }

// IsAlive reports whether health is above zero.
func (f *Fighter) IsAlive() bool { return f.state.Health > 0 }

// AffectedBySorcerer reports the variant's sorcerer vulnerability tag.
func (f *Fighter) AffectedBySorcerer() bool { return f.variant.AffectedBySorcerer() }

// AffectedByWarrior reports the variant's warrior vulnerability tag.
func (f *Fighter) AffectedByWarrior() bool { return f.variant.AffectedByWarrior() }

// Attack strikes target once.
//
// When the variant refuses the attack, Attack returns 0 without drawing a random
// value or touching target. Otherwise exactly one value is drawn: a draw at or
// below the critical-hit chance sends the variant's critical damage, any other
// draw sends base strength. target.BeAttacked is called exactly once and its
// result is returned.
func (f *Fighter) Attack(target Target) int {
	if !f.variant.CanAttack(target.IsAlive()) {
		f.logger.Debug("attack skipped",
			zap.String("attacker", f.state.Name),
			zap.String("target", target.Name()),
		)
		return 0
	}

	r := f.rnd.Float64()
	if r <= f.variant.CriticalHitChance(f.state) {
		dmg := f.variant.CriticalHitDamage(f.state)
		f.logger.Debug("critical hit",
			zap.String("attacker", f.state.Name),
			zap.String("target", target.Name()),
			zap.Float64("roll", r),
			zap.Int("damage", dmg),
		)
		return target.BeAttacked(dmg)
	}

	f.logger.Debug("attack",
		zap.String("attacker", f.state.Name),
		zap.String("target", target.Name()),
		zap.Float64("roll", r),
		zap.Int("damage", f.state.Strength),
	)
	return target.BeAttacked(f.state.Strength)
}

// BeAttacked resolves an incoming hit of incomingDamage.
//
// One value is drawn. A draw below the evasion chance evades the hit entirely.
// Otherwise the variant's defense is subtracted and the remainder, if positive,
// is removed from health.
//
// Postcondition: Health never increases. Returns the damage applied, or 0 when
// the fighter was built WithZeroDamageReport.
func (f *Fighter) BeAttacked(incomingDamage int) int {
	r := f.rnd.Float64()
	if r < f.variant.EvasionChance(f.state) {
		f.logger.Debug("evaded",
			zap.String("defender", f.state.Name),
			zap.Float64("roll", r),
			zap.Int("incoming", incomingDamage),
		)
		return 0
	}

	applied := f.ApplyDamage(incomingDamage - f.variant.DefenseWhenAttacked(f.state))
	if f.zeroReport {
		return 0
	}
	return applied
}

// ApplyDamage removes damage from health.
//
// Postcondition: If damage > 0, health decreases by damage and damage is
// returned; otherwise health is unchanged and 0 is returned. Health is not
// floored and may become negative.
func (f *Fighter) ApplyDamage(damage int) int {
	if damage <= 0 {
		return 0
	}
	f.state.Health -= damage
	f.logger.Debug("damage applied",
		zap.String("fighter", f.state.Name),
		zap.Int("damage", damage),
		zap.Int("health", f.state.Health),
		zap.Bool("alive", f.IsAlive()),
	)
	return damage
}

// GrantExperience returns the experience awarded for defeating this fighter.
//
// Postcondition: Returns Level() * ExperienceMultiplier; no state changes.
func (f *Fighter) GrantExperience() int {
	return f.state.Level * f.variant.ExperienceMultiplier(f.state)
}

// AfterTurn runs the variant's end-of-turn effects. Call once per turn.
func (f *Fighter) AfterTurn() {
	f.variant.AfterTurn(f)
}
