package combat

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/melee/internal/game/condition"
	"github.com/cory-johannsen/melee/internal/game/inventory"
	"github.com/cory-johannsen/melee/internal/scripting"
)

// ScriptPrefix marks a stance implemented by a Lua hook, e.g. "script:drunken_sway".
const ScriptPrefix = "script:"

// Stance is the passive capability a fighting style grants its wielder. The
// set of stances is closed: every implementation lives in this package.
type Stance interface {
	// Name returns the stance identifier as written in weapon definitions.
	Name() string
	// HitStat returns the attribute used for hit and critical rolls.
	HitStat(c *Combatant) int
	// DamageStat returns the attribute used for bash damage.
	DamageStat(c *Combatant) int
	// Silent reports whether hits make no noise.
	Silent() bool
	// ResistsTakedown reports whether the wielder cannot be swept or thrown down.
	ResistsTakedown() bool
	// BlockReduction returns the extra bash multiplier applied when blocking,
	// in [0.3, 1].
	BlockReduction(c *Combatant) float64

	onHit(e *Engine, x *exchange)
}

type baseStance struct{ name string }

func (s baseStance) Name() string { return s.name }
func (baseStance) HitStat(c *Combatant) int { return c.dex() }
func (baseStance) DamageStat(c *Combatant) int { return c.str() }
func (baseStance) Silent() bool { return false }
func (baseStance) ResistsTakedown() bool { return false }
func (baseStance) BlockReduction(*Combatant) float64 { return 1.0 }
func (baseStance) onHit(*Engine, *exchange) {}

type karateStance struct{ baseStance }

func (karateStance) onHit(_ *Engine, x *exchange) {
	x.att.DodgesLeft++
	x.att.BlocksLeft += 2
}

type aikidoStance struct{ baseStance }

func (aikidoStance) onHit(_ *Engine, x *exchange) { x.bash /= 2 }

type capoeiraStance struct{ baseStance }

func (capoeiraStance) onHit(_ *Engine, x *exchange) {
	x.att.AddStatus(condition.DodgeBoost, 2, 2, 0)
}

type muayThaiStance struct{ baseStance }

// onHit adds bonus bash damage against large monsters and strong characters.
func (muayThaiStance) onHit(e *Engine, x *exchange) {
	var factor int
	switch {
	case x.tgt.IsMonster() && x.tgt.Size >= SizeLarge:
		factor = int(x.tgt.Size)
	case !x.tgt.IsMonster() && x.tgt.Max.Str >= 12:
		factor = (x.tgt.Max.Str - 8) / 4
	default:
		return
	}
	x.bash += e.rng.Rng(factor, 3*factor)
}

type tigerStance struct{ baseStance }

func (tigerStance) HitStat(c *Combatant) int { return (c.str()*2 + c.dex()) / 3 }
func (tigerStance) onHit(_ *Engine, x *exchange) {
	x.att.AddStatus(condition.DamageBoost, 2, 2, 10)
}

type leopardStance struct{ baseStance }

func (leopardStance) HitStat(c *Combatant) int { return (c.per() + c.intl() + c.dex()*2) / 4 }

type snakeStance struct{ baseStance }

func (snakeStance) HitStat(c *Combatant) int { return (c.per() + c.dex()) / 2 }
func (snakeStance) DamageStat(c *Combatant) int { return (c.str() + c.per()) / 2 }

type craneStance struct{ baseStance }

func (craneStance) DamageStat(c *Combatant) int { return (c.dex()*2 + c.str()) / 3 }

type dragonStance struct{ baseStance }

func (dragonStance) DamageStat(c *Combatant) int { return (c.str() + c.intl()) / 2 }

type centipedeStance struct{ baseStance }

func (centipedeStance) onHit(_ *Engine, x *exchange) {
	x.att.AddStatus(condition.SpeedBoost, 2, 4, 40)
}

type venomSnakeStance struct{ baseStance }

// onHit advances the two-stage viper combo: a critical opens it, the next hit
// swaps bash and stab, and the one after that triples bash if both arms are
// still healthy.
func (venomSnakeStance) onHit(e *Engine, x *exchange) {
	att := x.att
	if att.HasStatus(condition.ViperCombo) {
		switch att.Statuses.Intensity(condition.ViperCombo) {
		case 1:
			e.say(x, "Snakebite!")
			x.bash, x.stab = x.stab, x.bash
			att.AddStatus(condition.ViperCombo, 2, 1, 2)
		case 2:
			if 4*att.HP[HPArmL] >= 3*att.MaxHP[HPArmL] && 4*att.HP[HPArmR] >= 3*att.MaxHP[HPArmR] {
				e.say(x, "Viper STRIKE!")
				x.bash *= 3
			} else {
				e.say(x, e.playerOrNPC(att, "Your injured arms prevent a viper strike!", "%s's injured arms prevent a viper strike!"))
			}
			att.Statuses.Remove(condition.ViperCombo)
		}
		return
	}
	if x.crit {
		e.say(x, "Tail whip!  Viper Combo Initiated!")
		x.bash += 5
		att.AddStatus(condition.ViperCombo, 2, 1, 2)
	}
}

type scorpionStance struct{ baseStance }

// onHit stuns on a critical and knocks the target back, twice if the first
// push moved it.
func (scorpionStance) onHit(e *Engine, x *exchange) {
	if !x.crit {
		return
	}
	e.say(x, "Stinger Strike!")
	turns := 2
	if x.tgt.IsMonster() {
		turns = 3
	}
	x.tgt.AddStatus(condition.Stunned, turns, 0, 0)
	before := x.tgt.Pos
	e.world.KnockBack(x.tgt, x.att.Pos)
	if x.tgt.Pos != before {
		e.world.KnockBack(x.tgt, x.att.Pos)
	}
}

type zuiQuanStance struct{ baseStance }

func (zuiQuanStance) onHit(_ *Engine, x *exchange) { x.att.DodgesLeft = 50 }

type ninjutsuStance struct{ baseStance }

func (ninjutsuStance) Silent() bool { return true }

type judoStance struct{ baseStance }

func (judoStance) ResistsTakedown() bool { return true }

type taiChiStance struct{ baseStance }

func (taiChiStance) BlockReduction(c *Combatant) float64 {
	return clampReduction(1.0 - 0.08*float64(c.per()-6))
}

type taekwondoStance struct{ baseStance }

func (taekwondoStance) BlockReduction(c *Combatant) float64 {
	return clampReduction(1.0 - 0.08*float64(c.str()-6))
}

func clampReduction(r float64) float64 {
	return min(1.0, max(0.3, r))
}

// scriptedStance delegates its on-hit effect to a Lua hook.
type scriptedStance struct {
	baseStance
	hook string
}

func (s scriptedStance) onHit(e *Engine, x *exchange) {
	if e.scripts == nil {
		e.logger.Warn("scripted stance without a script manager",
			zap.String("stance", s.name),
		)
		return
	}
	in := scripting.StanceCall{
		Attacker:   x.att.Name,
		Target:     x.tgt.Name,
		Critical:   x.crit,
		Bash:       x.bash,
		Cut:        x.cut,
		Stab:       x.stab,
		DodgesLeft: x.att.DodgesLeft,
		BlocksLeft: x.att.BlocksLeft,
	}
	out, msgs := e.scripts.CallStance(s.hook, in)
	x.bash, x.cut, x.stab = max(0, out.Bash), max(0, out.Cut), max(0, out.Stab)
	x.att.DodgesLeft, x.att.BlocksLeft = out.DodgesLeft, out.BlocksLeft
	for _, m := range msgs {
		e.say(x, m)
	}
}

var noStance Stance = baseStance{}

var builtinStances = map[string]Stance{
	"karate":      karateStance{baseStance{"karate"}},
	"aikido":      aikidoStance{baseStance{"aikido"}},
	"capoeira":    capoeiraStance{baseStance{"capoeira"}},
	"muay_thai":   muayThaiStance{baseStance{"muay_thai"}},
	"tiger":       tigerStance{baseStance{"tiger"}},
	"leopard":     leopardStance{baseStance{"leopard"}},
	"snake":       snakeStance{baseStance{"snake"}},
	"crane":       craneStance{baseStance{"crane"}},
	"dragon":      dragonStance{baseStance{"dragon"}},
	"centipede":   centipedeStance{baseStance{"centipede"}},
	"venom_snake": venomSnakeStance{baseStance{"venom_snake"}},
	"scorpion":    scorpionStance{baseStance{"scorpion"}},
	"zui_quan":    zuiQuanStance{baseStance{"zui_quan"}},
	"ninjutsu":    ninjutsuStance{baseStance{"ninjutsu"}},
	"judo":        judoStance{baseStance{"judo"}},
	"tai_chi":     taiChiStance{baseStance{"tai_chi"}},
	"taekwondo":   taekwondoStance{baseStance{"taekwondo"}},
}

// LookupStance resolves a stance name. The empty name is the plain stance of
// an ordinary weapon.
//
// Postcondition: Returns an error for an unknown name or an empty script hook.
func LookupStance(name string) (Stance, error) {
	if name == "" {
		return noStance, nil
	}
	if hook, ok := strings.CutPrefix(name, ScriptPrefix); ok {
		if hook == "" {
			return nil, fmt.Errorf("stance %q: empty script hook", name)
		}
		return scriptedStance{baseStance: baseStance{name}, hook: hook}, nil
	}
	s, ok := builtinStances[name]
	if !ok {
		return nil, fmt.Errorf("unknown stance %q", name)
	}
	return s, nil
}

// StanceNames returns the built-in stance names in sorted order.
func StanceNames() []string {
	names := make([]string, 0, len(builtinStances))
	for n := range builtinStances {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ValidateStances checks that every weapon names a known stance.
//
// Postcondition: Returns all violations joined, or nil.
func ValidateStances(weapons []*inventory.WeaponDef) error {
	var errs []string
	for _, w := range weapons {
		if _, err := LookupStance(w.Stance); err != nil {
			errs = append(errs, fmt.Sprintf("weapon %q: %v", w.ID, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid stances:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// stanceOf resolves the attacker's stance, falling back to the plain stance
// for an unknown name.
func (e *Engine) stanceOf(c *Combatant) Stance {
	s, err := LookupStance(c.ActiveWeapon().Stance)
	if err != nil {
		e.logger.Warn("ignoring unknown stance",
			zap.String("combatant", c.Name),
			zap.Error(err),
		)
		return noStance
	}
	return s
}
