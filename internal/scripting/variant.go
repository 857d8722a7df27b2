package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/duel/internal/game/fighter"
)

// Lua global function names making up the variant contract.
const (
	HookExperienceMultiplier = "experience_multiplier"
	HookCriticalHitChance    = "critical_hit_chance"
	HookCriticalHitDamage    = "critical_hit_damage"
	HookEvasionChance        = "evasion_chance"
	HookDefenseWhenAttacked  = "defense_when_attacked"
	HookAffectedBySorcerer   = "affected_by_sorcerer"
	HookAffectedByWarrior    = "affected_by_warrior"
	HookCanAttack            = "can_attack"
	HookAfterTurn            = "after_turn"
	HookInitialState         = "initial_state"
)

// RequiredHooks lists the functions every variant script must define.
var RequiredHooks = []string{
	HookExperienceMultiplier,
	HookCriticalHitChance,
	HookCriticalHitDamage,
	HookEvasionChance,
	HookDefenseWhenAttacked,
	HookAffectedBySorcerer,
	HookAffectedByWarrior,
}

// ScriptedVariant implements fighter.Variant by calling Lua functions.
//
// Numeric hooks receive the fighter's state as a table with the fields health,
// strength, defense, name, and level. A hook that raises a Lua error or returns
// a value of the wrong type is logged at Warn level and treated as 0, false,
// or (for can_attack) true.
//
// ScriptedVariant is safe for concurrent use; calls into the VM are serialized.
type ScriptedVariant struct {
	mu        sync.Mutex
	name      string
	path      string
	vm        *lua.LState
	instLimit int
	logger    *zap.Logger
}

// LoadVariant executes the script at path in a fresh sandbox and checks that
// every required hook is defined.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a ready variant, a *ContractError if a required hook
// is missing, or a load error. The caller must Close the variant.
func LoadVariant(path string, instLimit int, logger *zap.Logger) (*ScriptedVariant, error) {
	L := NewSandboxedState()
	err := withBudget(L, instLimit, func() error { return L.DoFile(path) })
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("scripting: loading %q: %w", path, err)
	}

	for _, hook := range RequiredHooks {
		if _, ok := L.GetGlobal(hook).(*lua.LFunction); !ok {
			L.Close()
			return nil, &ContractError{Script: path, Hook: hook}
		}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &ScriptedVariant{
		name:      name,
		path:      path,
		vm:        L,
		instLimit: instLimit,
		logger:    logger.With(zap.String("script", name)),
	}, nil
}

// LoadVariants loads every *.lua file in dir, keyed by file name without extension.
//
// Precondition: dir must be a readable directory.
// Postcondition: On error every variant loaded so far is closed.
func LoadVariants(dir string, instLimit int, logger *zap.Logger) (map[string]*ScriptedVariant, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	out := make(map[string]*ScriptedVariant, len(paths))
	for _, path := range paths {
		v, err := LoadVariant(path, instLimit, logger)
		if err != nil {
			for _, loaded := range out {
				loaded.Close()
			}
			return nil, err
		}
		out[v.Name()] = v
	}
	return out, nil
}

// Name returns the script's base name.
func (v *ScriptedVariant) Name() string { return v.name }

// Close releases the Lua VM.
func (v *ScriptedVariant) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vm.Close()
}

// HasHook reports whether the script defines the named global function.
func (v *ScriptedVariant) HasHook(hook string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.vm.GetGlobal(hook).(*lua.LFunction)
	return ok
}

// call invokes hook and returns its first result. It returns (LNil, false)
// when the hook is undefined or fails.
func (v *ScriptedVariant) call(hook string, args ...lua.LValue) (lua.LValue, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fn, ok := v.vm.GetGlobal(hook).(*lua.LFunction)
	if !ok {
		return lua.LNil, false
	}
	err := withBudget(v.vm, v.instLimit, func() error {
		return v.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...)
	})
	if err != nil {
		v.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, false
	}
	ret := v.vm.Get(-1)
	v.vm.Pop(1)
	return ret, true
}

func (v *ScriptedVariant) number(hook string, args ...lua.LValue) float64 {
	ret, ok := v.call(hook, args...)
	if !ok {
		return 0
	}
	n, isNum := ret.(lua.LNumber)
	if !isNum {
		v.logger.Warn("scripting: hook returned non-number",
			zap.String("hook", hook),
			zap.String("type", ret.Type().String()),
		)
		return 0
	}
	return float64(n)
}

func (v *ScriptedVariant) boolean(hook string, fallback bool, args ...lua.LValue) bool {
	ret, ok := v.call(hook, args...)
	if !ok {
		return fallback
	}
	b, isBool := ret.(lua.LBool)
	if !isBool {
		v.logger.Warn("scripting: hook returned non-boolean",
			zap.String("hook", hook),
			zap.String("type", ret.Type().String()),
		)
		return fallback
	}
	return bool(b)
}

// stateTable converts s to a table in v's VM.
func (v *ScriptedVariant) stateTable(s fighter.State) *lua.LTable {
	v.mu.Lock()
	defer v.mu.Unlock()
	t := v.vm.NewTable()
	t.RawSetString(fighter.KeyHealth, lua.LNumber(s.Health))
	t.RawSetString(fighter.KeyStrength, lua.LNumber(s.Strength))
	t.RawSetString(fighter.KeyDefense, lua.LNumber(s.Defense))
	t.RawSetString(fighter.KeyName, lua.LString(s.Name))
	t.RawSetString(fighter.KeyLevel, lua.LNumber(s.Level))
	return t
}

func (v *ScriptedVariant) ExperienceMultiplier(s fighter.State) int {
	return int(v.number(HookExperienceMultiplier, v.stateTable(s)))
}

func (v *ScriptedVariant) CriticalHitChance(s fighter.State) float64 {
	return v.number(HookCriticalHitChance, v.stateTable(s))
}

func (v *ScriptedVariant) CriticalHitDamage(s fighter.State) int {
	return int(v.number(HookCriticalHitDamage, v.stateTable(s)))
}

func (v *ScriptedVariant) EvasionChance(s fighter.State) float64 {
	return v.number(HookEvasionChance, v.stateTable(s))
}

func (v *ScriptedVariant) DefenseWhenAttacked(s fighter.State) int {
	return int(v.number(HookDefenseWhenAttacked, v.stateTable(s)))
}

func (v *ScriptedVariant) AffectedBySorcerer() bool {
	return v.boolean(HookAffectedBySorcerer, false)
}

func (v *ScriptedVariant) AffectedByWarrior() bool {
	return v.boolean(HookAffectedByWarrior, false)
}

// CanAttack calls can_attack(target_alive); scripts without it may always attack.
func (v *ScriptedVariant) CanAttack(targetIsAlive bool) bool {
	return v.boolean(HookCanAttack, true, lua.LBool(targetIsAlive))
}

// AfterTurn calls after_turn(state). A positive numeric result is applied to
// the fighter as damage.
func (v *ScriptedVariant) AfterTurn(f *fighter.Fighter) {
	ret, ok := v.call(HookAfterTurn, v.stateTable(f.Export()))
	if !ok {
		return
	}
	if n, isNum := ret.(lua.LNumber); isNum {
		f.ApplyDamage(int(n))
	}
}

// InitialState calls initial_state() and decodes the returned table.
//
// Postcondition: Returns an error if the hook is missing, fails, or returns a
// table that does not satisfy fighter.StateFromMap.
func (v *ScriptedVariant) InitialState() (fighter.State, error) {
	if !v.HasHook(HookInitialState) {
		return fighter.State{}, &ContractError{Script: v.path, Hook: HookInitialState}
	}
	ret, ok := v.call(HookInitialState)
	if !ok {
		return fighter.State{}, fmt.Errorf("scripting: %s: %s failed", v.path, HookInitialState)
	}
	tbl, isTable := ret.(*lua.LTable)
	if !isTable {
		return fighter.State{}, fmt.Errorf("scripting: %s: %s must return a table, got %s", v.path, HookInitialState, ret.Type())
	}

	data := make(map[string]any)
	tbl.ForEach(func(k, val lua.LValue) {
		key, isStr := k.(lua.LString)
		if !isStr {
			return
		}
		switch x := val.(type) {
		case lua.LNumber:
			data[string(key)] = float64(x)
		case lua.LString:
			data[string(key)] = string(x)
		case lua.LBool:
			data[string(key)] = bool(x)
		}
	})
	s, err := fighter.StateFromMap(data)
	if err != nil {
		return fighter.State{}, fmt.Errorf("scripting: %s: %w", v.path, err)
	}
	return s, nil
}

// Spawn creates a fighter driven by v, loaded from initial_state().
func (v *ScriptedVariant) Spawn(opts ...fighter.Option) (*fighter.Fighter, error) {
	s, err := v.InitialState()
	if err != nil {
		return nil, err
	}
	all := append([]fighter.Option{fighter.WithState(s)}, opts...)
	return fighter.New(v, all...), nil
}
