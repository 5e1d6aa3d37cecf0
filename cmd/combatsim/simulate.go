package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"math/rand"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/spiresim/content"
	"github.com/cory-johannsen/spiresim/internal/config"
	"github.com/cory-johannsen/spiresim/internal/game/card"
	"github.com/cory-johannsen/spiresim/internal/game/character"
	"github.com/cory-johannsen/spiresim/internal/game/combat"
	"github.com/cory-johannsen/spiresim/internal/game/condition"
	"github.com/cory-johannsen/spiresim/internal/game/enemy"
	"github.com/cory-johannsen/spiresim/internal/game/rng"
	"github.com/cory-johannsen/spiresim/internal/interaction"
	"github.com/cory-johannsen/spiresim/internal/scripting"
	"github.com/cory-johannsen/spiresim/internal/storage/postgres"
)

// outcome is a finished simulation and the record that describes it.
type outcome struct {
	Result combat.Result
	Record postgres.Record
}

// simulate plays the combat described by cfg.
//
// Precondition: cfg must be valid.
// Postcondition: Returns the result and a record ready to persist, or the
// first error met while loading content or playing.
func simulate(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer, color bool, logger *zap.Logger) (outcome, error) {
	fsys := fs.FS(content.FS)
	if cfg.Content.Dir != "" {
		fsys = os.DirFS(cfg.Content.Dir)
	}
	cards, err := card.LoadFS(fsys, content.CardsDir)
	if err != nil {
		return outcome{}, fmt.Errorf("loading cards: %w", err)
	}
	conds, err := condition.LoadFS(fsys, content.ConditionsDir)
	if err != nil {
		return outcome{}, fmt.Errorf("loading conditions: %w", err)
	}
	logger.Info("content loaded",
		zap.Int("cards", len(cards.All())),
		zap.Int("conditions", len(conds.All())),
	)

	ch, err := character.Lookup(cfg.Sim.Character)
	if err != nil {
		return outcome{}, err
	}
	loadout, err := character.Build(ch, character.Overrides{
		HP:     cfg.Sim.HP,
		Deck:   cfg.Sim.Deck,
		Relics: cfg.Sim.Relics,
	})
	if err != nil {
		return outcome{}, fmt.Errorf("building %s loadout: %w", ch.ID, err)
	}

	seed := rng.Seed(rand.Uint64())
	if cfg.Sim.Seed != "" {
		if seed, err = rng.ParseSeed(cfg.Sim.Seed); err != nil {
			return outcome{}, err
		}
	}
	enc, err := enemy.ParseEncounter(cfg.Sim.Encounter)
	if err != nil {
		return outcome{}, err
	}
	streams := rng.NewStreams(seed, cfg.Sim.Floor, logger)
	party, err := enemy.Generate(enemy.DefaultRegistry(), seed.ForFloor(cfg.Sim.Floor), enc, streams.AI, streams.Misc)
	if err != nil {
		return outcome{}, fmt.Errorf("generating %s: %w", enc, err)
	}

	player, closePlayer, err := newPlayer(cfg.Scripting, fsys, in, out, color, conds, logger)
	if err != nil {
		return outcome{}, err
	}
	defer closePlayer()
	rec := interaction.NewRecorder(player)

	engine := combat.NewEngine()
	sess, err := engine.Start(combat.Setup{
		HP:          loadout.HP,
		HPMax:       loadout.HPMax,
		Deck:        loadout.Deck,
		Relics:      loadout.Relics,
		Party:       party,
		Streams:     streams,
		Cards:       cards,
		Interaction: rec,
		Logger:      logger,
		MaxTurns:    cfg.Sim.MaxTurns,
	})
	if err != nil {
		return outcome{}, err
	}
	logger.Info("combat prepared",
		zap.Stringer("session", sess.ID),
		zap.Stringer("seed", seed),
		zap.Stringer("encounter", enc),
		zap.String("character", loadout.Character),
	)
	result, err := engine.Run(ctx, sess.ID)
	if err != nil {
		return outcome{}, err
	}

	return outcome{
		Result: result,
		Record: postgres.Record{
			ID:        sess.ID,
			Seed:      seed.String(),
			Floor:     cfg.Sim.Floor,
			Encounter: enc.String(),
			Character: loadout.Character,
			Strategy:  cfg.Scripting.Strategy,
			Outcome:   result.Outcome.String(),
			Turns:     result.Turns,
			HP:        result.HP,
			HPMax:     result.HPMax,
			Log:       rec.Notifications(),
		},
	}, nil
}

// newPlayer returns the Lua strategy named in sc, or the interactive console
// when sc names none. The returned func releases it.
func newPlayer(sc config.ScriptingConfig, fsys fs.FS, in io.Reader, out io.Writer, color bool, conds *condition.Registry, logger *zap.Logger) (interaction.Interaction, func(), error) {
	if sc.Strategy == "" {
		return interaction.NewConsole(in, out, color).WithConditionNames(conds), func() {}, nil
	}
	scripts, dir := fsys, content.ScriptsDir
	if sc.Dir != "" {
		scripts, dir = os.DirFS(sc.Dir), "."
	}
	mgr, err := scripting.NewManager(scripts, dir, sc.InstructionLimit, logger)
	if err != nil {
		return nil, nil, err
	}
	s, err := mgr.Load(sc.Strategy)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}
