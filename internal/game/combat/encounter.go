package combat

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/cory-johannsen/melee/internal/game/condition"
)

// TurnEvent records one attack made during a turn.
type TurnEvent struct {
	Turn      int
	ActorID   string
	ActorName string
	TargetID  string
	Result    Result
	// Narrative is set instead of Result when the actor could not attack.
	Narrative string
}

// TargetFunc picks the combatant actor attacks next, or nil to end its turn.
type TargetFunc func(enc *Encounter, actor *Combatant) *Combatant

// Encounter holds the live state of one fight.
type Encounter struct {
	// Combatants is the initiative-ordered list of participants.
	Combatants []*Combatant
	// Turn is the current turn number, starting at 0 and incrementing each StartTurn call.
	Turn int

	engine *Engine
	target TargetFunc
}

// RollInitiative rolls initiative for all combatants and sets their
// Initiative field. Formula: rng(1,20) + dex/2.
//
// Postcondition: each combatant's Initiative is in [1+dex/2, 20+dex/2].
func (e *Engine) RollInitiative(combatants []*Combatant) {
	for _, c := range combatants {
		c.Initiative = e.rng.Rng(1, 20) + c.dex()/2
	}
}

// StartEncounter rolls initiative and orders the combatants, highest first.
// Ties keep the order given.
//
// Precondition: at least two combatants.
// Postcondition: Returns an error if fewer than two combatants are given or
// two share an ID.
func (e *Engine) StartEncounter(combatants []*Combatant, target TargetFunc) (*Encounter, error) {
	if len(combatants) < 2 {
		return nil, fmt.Errorf("encounter needs at least 2 combatants, got %d", len(combatants))
	}
	seen := make(map[string]bool, len(combatants))
	for _, c := range combatants {
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate combatant id %q", c.ID)
		}
		seen[c.ID] = true
	}
	if target == nil {
		target = FirstHostile
	}

	sorted := make([]*Combatant, len(combatants))
	copy(sorted, combatants)
	e.RollInitiative(sorted)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Initiative > sorted[j].Initiative
	})
	return &Encounter{Combatants: sorted, engine: e, target: target}, nil
}

// FirstHostile targets the first living hostile combatant in initiative order.
func FirstHostile(enc *Encounter, actor *Combatant) *Combatant {
	for _, c := range enc.Combatants {
		if !c.IsDead() && actor.Hostile(c) {
			return c
		}
	}
	return nil
}

// StartTurn increments Turn and readies every living combatant: dodge and
// block allotments are reset, speed is added to moves and statuses tick down.
//
// Postcondition: Turn is incremented by 1.
func (enc *Encounter) StartTurn() {
	enc.Turn++
	t := enc.engine.tuning
	for _, c := range enc.Combatants {
		if c.IsDead() {
			continue
		}
		c.DodgesLeft = t.DodgesPerTurn
		c.BlocksLeft = t.BlocksPerTurn
		c.Moves += c.currentSpeed()
		if expired := c.statuses().Tick(); len(expired) > 0 {
			enc.engine.logger.Debug("statuses expired",
				zap.String("combatant", c.Name),
				zap.Strings("statuses", expired),
			)
		}
	}
}

// RunTurn starts a turn and lets each living character, in initiative order,
// attack while it has moves left. Monsters act through their own AI and are
// skipped. A stunned or downed actor loses the turn.
//
// Postcondition: Returns the ordered events of the turn.
func (enc *Encounter) RunTurn() []TurnEvent {
	enc.StartTurn()
	var events []TurnEvent
	for _, actor := range enc.Combatants {
		if actor.IsDead() || actor.IsMonster() {
			continue
		}
		if actor.HasStatus(condition.Stunned) || actor.HasStatus(condition.Downed) {
			events = append(events, TurnEvent{
				Turn:      enc.Turn,
				ActorID:   actor.ID,
				ActorName: actor.Name,
				Narrative: fmt.Sprintf("%s is unable to act.", actor.Name),
			})
			actor.Moves = min(actor.Moves, 0)
			continue
		}
		for actor.Moves > 0 && !actor.IsDead() {
			tgt := enc.target(enc, actor)
			if tgt == nil {
				break
			}
			before := actor.Moves
			r := enc.engine.Attack(actor, tgt)
			events = append(events, TurnEvent{
				Turn:      enc.Turn,
				ActorID:   actor.ID,
				ActorName: actor.Name,
				TargetID:  tgt.ID,
				Result:    r,
			})
			if actor.Moves >= before {
				// An attack that cost nothing would never end the turn.
				break
			}
		}
	}
	return events
}

// Living returns the combatants still able to fight.
func (enc *Encounter) Living() []*Combatant {
	var alive []*Combatant
	for _, c := range enc.Combatants {
		if !c.IsDead() {
			alive = append(alive, c)
		}
	}
	return alive
}

// Over reports whether at most one faction is left standing.
func (enc *Encounter) Over() bool {
	factions := make(map[string]bool)
	for _, c := range enc.Living() {
		factions[c.Faction] = true
	}
	return len(factions) < 2
}
