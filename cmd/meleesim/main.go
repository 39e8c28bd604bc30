// Package main provides the melee simulator binary: it loads combatant and
// item content, spawns two combatants side by side and runs an encounter,
// printing the combat text of every exchange.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/melee/internal/config"
	"github.com/cory-johannsen/melee/internal/game/combat"
	"github.com/cory-johannsen/melee/internal/game/condition"
	"github.com/cory-johannsen/melee/internal/game/dice"
	"github.com/cory-johannsen/melee/internal/game/inventory"
	"github.com/cory-johannsen/melee/internal/game/npc"
	"github.com/cory-johannsen/melee/internal/observability"
	"github.com/cory-johannsen/melee/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file; empty = defaults only")
	attackerID := flag.String("attacker", "survivor", "combatant template ID of the attacker")
	defenderID := flag.String("defender", "raider", "combatant template ID of the defender")
	turns := flag.Int("turns", 0, "maximum turns to run; 0 = sim.turns from config")
	seed := flag.Uint64("seed", 0, "RNG seed; 0 = sim.seed from config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *turns > 0 {
		cfg.Sim.Turns = *turns
	}
	if *seed != 0 {
		cfg.Sim.Seed = *seed
	}

	logs, err := observability.NewLoggers(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	logger := logs.Root
	defer logger.Sync()

	var src dice.Source
	if cfg.Sim.Seed != 0 {
		src = dice.NewSeededSource(cfg.Sim.Seed)
	} else {
		src = dice.NewCryptoSource()
	}
	roller := dice.NewLoggedRoller(src, logs.Dice)

	contentStart := time.Now()
	items, err := inventory.LoadRegistry(cfg.Content.Weapons, cfg.Content.Armor)
	if err != nil {
		logger.Fatal("loading items", zap.Error(err))
	}
	statuses := condition.DefaultRegistry()
	if cfg.Content.Statuses != "" {
		statuses, err = condition.LoadDirectory(cfg.Content.Statuses)
		if err != nil {
			logger.Fatal("loading statuses", zap.Error(err))
		}
	}
	templates, err := npc.LoadTemplates(cfg.Content.Combatants)
	if err != nil {
		logger.Fatal("loading combatant templates", zap.Error(err))
	}
	npcMgr, err := npc.NewManager(templates, items, statuses)
	if err != nil {
		logger.Fatal("creating combatant manager", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("weapons", len(items.AllWeapons())),
		zap.Int("templates", len(templates)),
		zap.Duration("elapsed", time.Since(contentStart)),
	)

	var scripts combat.StanceScripts
	if cfg.Content.Scripts != "" {
		scriptMgr := scripting.NewManager(roller, logs.Scripts)
		if err := scriptMgr.Load(cfg.Content.Scripts, cfg.Content.ScriptInstructionLimit); err != nil {
			logger.Fatal("loading stance scripts", zap.Error(err))
		}
		defer scriptMgr.Close()
		scripts = scriptMgr
	}

	grid := combat.NewGrid()
	engine := combat.NewEngine(roller, logs.Engine, cfg.Melee.Tuning(), grid, combat.WornAbsorber{}, scripts)

	att, err := npcMgr.Spawn(*attackerID, combat.Point{X: 0, Y: 0})
	if err != nil {
		logger.Fatal("spawning attacker", zap.Error(err))
	}
	def, err := npcMgr.Spawn(*defenderID, combat.Point{X: 1, Y: 0})
	if err != nil {
		logger.Fatal("spawning defender", zap.Error(err))
	}
	if att.Faction == def.Faction {
		// Same-faction templates would never fight each other.
		def.Faction = def.Faction + "-rival"
	}
	for _, c := range []*combat.Combatant{att, def} {
		if err := grid.Place(c); err != nil {
			logger.Fatal("placing combatant", zap.String("name", c.Name), zap.Error(err))
		}
	}

	enc, err := engine.StartEncounter([]*combat.Combatant{att, def}, combat.FirstHostile)
	if err != nil {
		logger.Fatal("starting encounter", zap.Error(err))
	}
	logger.Info("encounter started",
		zap.String("attacker", att.Name),
		zap.String("defender", def.Name),
		zap.Uint64("seed", cfg.Sim.Seed),
		zap.Duration("startup", time.Since(start)),
	)

	for !enc.Over() && enc.Turn < cfg.Sim.Turns {
		events := enc.RunTurn()
		fmt.Printf("-- turn %d --\n", enc.Turn)
		for _, ev := range events {
			if ev.Narrative != "" {
				fmt.Println(ev.Narrative)
				continue
			}
			for _, msg := range ev.Result.AllMessages() {
				fmt.Println(msg)
			}
		}
		if len(events) == 0 {
			fmt.Println("Nobody attacks.")
		}
	}

	for _, c := range enc.Combatants {
		state := "standing"
		if c.IsDead() {
			state = "down"
		}
		fmt.Printf("%s: %s\n", c.Name, state)
	}
}
