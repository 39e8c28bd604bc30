package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/melee/internal/game/condition"
	"github.com/cory-johannsen/melee/internal/game/dice"
	"github.com/cory-johannsen/melee/internal/game/inventory"
	"github.com/cory-johannsen/melee/internal/game/technique"
	"github.com/cory-johannsen/melee/internal/scripting"
)

// StanceScripts runs Lua stance hooks. *scripting.Manager implements it.
type StanceScripts interface {
	CallStance(hook string, call scripting.StanceCall) (scripting.StanceCall, []string)
}

// Engine resolves melee exchanges. It holds no per-fight state: everything an
// exchange changes lives on the two Combatants and the World.
//
// An Engine is not safe for concurrent use; callers serialize exchanges.
type Engine struct {
	rng      *dice.Roller
	logger   *zap.Logger
	tuning   Tuning
	world    World
	absorber Absorber
	scripts  StanceScripts
}

// NewEngine creates an Engine drawing from roller.
//
// Precondition: roller must be non-nil.
// Postcondition: a nil logger, world or absorber is replaced by a no-op
// logger, an empty world and WornAbsorber respectively. scripts may be nil;
// scripted stances then have no effect.
func NewEngine(roller *dice.Roller, logger *zap.Logger, tuning Tuning, world World, absorber Absorber, scripts StanceScripts) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if world == nil {
		world = nullWorld{}
	}
	if absorber == nil {
		absorber = WornAbsorber{}
	}
	return &Engine{
		rng:      roller,
		logger:   logger,
		tuning:   tuning,
		world:    world,
		absorber: absorber,
		scripts:  scripts,
	}
}

// Tuning returns the constants the engine was built with.
func (e *Engine) Tuning() Tuning { return e.tuning }

// Result describes one resolved attack.
type Result struct {
	Hit       bool
	Critical  bool
	Technique technique.Technique
	// Defense is the defender's technique; None against monsters.
	Defense technique.Technique
	// Part and Side locate the blow on a character target.
	Part inventory.BodyPart
	Side int

	Bash int
	Cut  int
	Stab int
	// Damage is bash plus the larger of cut and stab, before armor absorption.
	Damage int
	// MoveCost is the moves the swing cost the attacker.
	MoveCost int

	WeaponLost      bool
	WeaponShattered bool

	Messages []string
	// WideHits holds the IDs of secondary targets struck by a wide swing.
	WideHits []string
	Specials []SpecialAttack

	// FollowUp is the grab follow-up attack, if one was made.
	FollowUp *Result
	// Counter is the defender's counter-attack, if one was made.
	Counter *Result
}

// Total returns the damage of this attack plus any grab follow-up.
func (r Result) Total() int {
	dam := r.Damage
	if r.FollowUp != nil {
		dam += r.FollowUp.Total()
	}
	return dam
}

// AllMessages returns the messages of this attack followed by those of its
// follow-up and counter-attack, in the order they happened.
func (r Result) AllMessages() []string {
	out := append([]string(nil), r.Messages...)
	if r.FollowUp != nil {
		out = append(out, r.FollowUp.AllMessages()...)
	}
	if r.Counter != nil {
		out = append(out, r.Counter.AllMessages()...)
	}
	return out
}

// exchange is the working state of one attack.
type exchange struct {
	att, tgt  *Combatant
	stance    Stance
	allowGrab bool
	depth     int

	crit            bool
	bash, cut, stab int
	pain            int
	tech            technique.Technique
	part            inventory.BodyPart
	side            int
	res             *Result
}

// Attack resolves one melee attack of att against tgt, including any grab
// follow-up and counter-attack.
//
// Precondition: att should be a character (player or NPC).
// Postcondition: a nil combatant or a monster attacker yields a Result with
// Technique None and no state change.
func (e *Engine) Attack(att, tgt *Combatant) Result {
	return e.strike(att, tgt, true, 0)
}

func (e *Engine) strike(att, tgt *Combatant, allowGrab bool, depth int) Result {
	if att == nil || tgt == nil || att.IsMonster() {
		e.logger.Warn("melee attack without a valid attacker and target",
			zap.Bool("attacker", att != nil),
			zap.Bool("target", tgt != nil),
		)
		return Result{Technique: technique.None}
	}
	x := &exchange{
		att:       att,
		tgt:       tgt,
		stance:    e.stanceOf(att),
		allowGrab: allowGrab,
		depth:     depth,
		res:       &Result{Technique: technique.None, Defense: technique.None},
	}
	if tgt.IsMonster() {
		e.hitMonster(x)
	} else {
		e.hitCharacter(x)
	}
	e.logger.Debug("melee exchange",
		zap.String("attacker", att.Name),
		zap.String("target", tgt.Name),
		zap.Bool("hit", x.res.Hit),
		zap.Bool("critical", x.res.Critical),
		zap.Stringer("technique", x.res.Technique),
		zap.Stringer("defense", x.res.Defense),
		zap.Int("bash", x.res.Bash),
		zap.Int("cut", x.res.Cut),
		zap.Int("stab", x.res.Stab),
		zap.Bool("follow_up", !allowGrab),
	)
	return *x.res
}

// swing rolls dodge and hit and charges the attack cost.
//
// Postcondition: Returns the hit roll and the dodge roll, and false when the
// swing missed (the miss has already been applied).
func (e *Engine) swing(x *exchange, grabDivisor int) (hit, dodge int, ok bool) {
	att := x.att
	dodge = e.DodgeRoll(x.tgt)
	if !x.allowGrab {
		dodge /= grabDivisor
	}
	hit = e.hitRoll(att, x.stance)
	miss := hit <= 0 || hit < dodge || e.rng.OneIn(4+att.dex()+att.ActiveWeapon().ToHit)
	cost := e.AttackSpeed(att)
	if miss {
		e.missed(x, cost)
		return hit, dodge, false
	}
	att.Moves -= cost
	x.res.MoveCost = cost
	return hit, dodge, true
}

// hitMonster resolves an attack against a monster.
func (e *Engine) hitMonster(x *exchange) {
	att, tgt := x.att, x.tgt
	_, dodge, ok := e.swing(x, 3)
	if !ok {
		return
	}
	x.res.Hit = true

	x.crit = e.scoredCrit(att, x.stance, dodge)
	x.bash = e.rollBash(att, x.stance, tgt, x.crit)
	x.cut = e.rollCut(att, tgt, x.crit)
	x.stab = e.rollStab(att, tgt, x.crit)

	x.tech = e.pickTechnique(x)
	e.performTechnique(x)
	w := att.ActiveWeapon()
	if w.HasTechnique(technique.Flaming, att.Skill(SkillUnarmed)) {
		tgt.AddStatus(condition.OnFire, e.rng.Rng(3, 4), 0, 0)
	}
	tgt.Speed -= x.pain / 2

	e.performSpecialAttacks(x)
	verbFmt := verb(att, x.tech, x.bash, x.cut, x.stab)
	weaponName := w.Name
	unarmed := w.IsUnarmed()

	e.postHit(x)
	if !x.stance.Silent() {
		e.world.Sound(att.Pos, 8)
	}

	dam := x.bash + max(x.cut, x.stab)
	tgt.hurt(dam)
	e.finish(x, dam)
	e.say(x, hitMessage(att, targetName(tgt), weaponName, verbFmt, dam, x.crit))

	e.practice(att, true, unarmed, x.bash >= 10 && !unarmed, x.cut >= 10, x.stab >= 5)

	if x.allowGrab && x.tech == technique.Grab {
		x.res.FollowUp = e.grabFollowUp(x)
	}
}

// hitCharacter resolves an attack against a player or NPC.
func (e *Engine) hitCharacter(x *exchange) {
	att, tgt := x.att, x.tgt
	hit, dodge, ok := e.swing(x, 2)
	if !ok {
		return
	}
	x.res.Hit = true

	x.side = e.rng.Rng(0, 1)
	hitValue := hit - dodge + e.rng.Rng(-10, 10)
	switch {
	case hitValue >= 30:
		x.part = inventory.PartEyes
	case hitValue >= 20:
		x.part = inventory.PartHead
	case hitValue >= 10:
		x.part = inventory.PartTorso
	case e.rng.OneIn(4):
		x.part = inventory.PartLegs
	default:
		x.part = inventory.PartArms
	}

	x.crit = e.scoredCrit(att, x.stance, dodge)
	x.bash = e.rollBash(att, x.stance, nil, x.crit)
	x.cut = e.rollCut(att, nil, x.crit)
	x.stab = e.rollStab(att, nil, x.crit)

	def := e.pickDefense(tgt, att)
	x.res.Defense = def
	e.applyDefense(x, def)
	if x.bash+x.cut+x.stab <= 0 {
		e.finish(x, 0)
		e.counter(x)
		return
	}

	if x.crit {
		tgt.statuses().Remove(condition.ArmorBoost)
	}

	x.tech = e.pickTechnique(x)
	e.performTechnique(x)
	if att.ActiveWeapon().HasTechnique(technique.Flaming, att.Skill(SkillUnarmed)) {
		tgt.AddStatus(condition.OnFire, e.rng.Rng(2, 3), 0, 0)
	}
	tgt.Pain += x.pain

	e.performSpecialAttacks(x)
	e.postHit(x)
	if !x.stance.Silent() {
		e.world.Sound(att.Pos, 8)
	}

	e.damageCharacter(tgt, x.part, x.side, x.bash, max(x.cut, x.stab))

	verbFmt := verb(att, x.tech, x.bash, x.cut, x.stab)
	dam := x.bash + max(x.cut, x.stab)
	e.finish(x, dam)
	where := targetPossessive(tgt) + " " + partName(x.part, x.side)
	e.say(x, hitMessage(att, where, att.ActiveWeapon().Name, verbFmt, dam, x.crit))

	unarmed := att.Unarmed()
	e.practice(att, true, unarmed,
		x.bash >= 10 && !unarmed,
		x.cut >= 10 && x.cut >= x.stab,
		x.stab >= 10 && x.stab >= x.cut,
	)

	if x.allowGrab && x.tech == technique.Grab {
		if tgt.ActiveWeapon().HasTechnique(technique.Break, tgt.Skill(SkillUnarmed)) &&
			e.rng.Dice(tgt.dex()+tgt.Skill(SkillMelee), 12) > e.rng.Dice(att.dex()+att.Skill(SkillMelee), 10) {
			e.say(x, e.playerOrNPC(tgt, "You break the grab!", "%s breaks the grab!"))
		} else {
			x.res.FollowUp = e.grabFollowUp(x)
		}
	}
	e.counter(x)
}

// finish copies the exchange totals into the result.
func (e *Engine) finish(x *exchange, dam int) {
	x.res.Critical = x.crit
	x.res.Technique = x.tech
	x.res.Part = x.part
	x.res.Side = x.side
	x.res.Bash, x.res.Cut, x.res.Stab = x.bash, x.cut, x.stab
	x.res.Damage = dam
}

// grabFollowUp makes the single unarmed follow-up attack a grab allows. The
// attacker's weapon is set aside for the duration.
func (e *Engine) grabFollowUp(x *exchange) *Result {
	att := x.att
	held := att.Weapon
	armed := !att.Unarmed()
	if armed {
		att.Weapon = nil
	}
	r := e.strike(att, x.tgt, false, x.depth)
	if armed {
		att.Weapon = held
	}
	return &r
}

// counter lets a defender who chose COUNTER strike back.
func (e *Engine) counter(x *exchange) {
	if x.res.Defense != technique.Counter || x.depth >= e.tuning.MaxCounterDepth {
		return
	}
	if x.tgt.IsDead() || x.att.IsDead() {
		return
	}
	e.say(x, "Counter-attack!")
	r := e.strike(x.tgt, x.att, true, x.depth+1)
	x.res.Counter = &r
}
