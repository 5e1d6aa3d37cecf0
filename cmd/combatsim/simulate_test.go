package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/spiresim/internal/config"
	"github.com/cory-johannsen/spiresim/internal/interaction"
)

func testConfig(strategy string) config.Config {
	return config.Config{
		Logging: config.LoggingConfig{Level: "info", Format: "console"},
		Sim: config.SimConfig{
			Seed:      "1A2B3C4D5E6F7",
			Floor:     1,
			Encounter: "JawWorm",
			Character: "ironclad",
			MaxTurns:  50,
		},
		Scripting: config.ScriptingConfig{Strategy: strategy, InstructionLimit: 100_000},
	}
}

func TestSimulate_GreedyStrategy(t *testing.T) {
	cfg := testConfig("greedy")
	out, err := simulate(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{}, false, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.NotZero(t, out.Result.Outcome)
	assert.Positive(t, out.Result.Turns)
	assert.Equal(t, "1A2B3C4D5E6F7", out.Record.Seed)
	assert.Equal(t, "JawWorm", out.Record.Encounter)
	assert.Equal(t, "ironclad", out.Record.Character)
	assert.Equal(t, "greedy", out.Record.Strategy)
	assert.Equal(t, out.Result.Outcome.String(), out.Record.Outcome)
	require.NotEmpty(t, out.Record.Log)
	assert.Equal(t, interaction.KindStartingCombat, out.Record.Log[0].Kind)
}

func TestSimulate_SameSeedSameCombat(t *testing.T) {
	cfg := testConfig("defensive")
	first, err := simulate(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{}, false, zaptest.NewLogger(t))
	require.NoError(t, err)
	second, err := simulate(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{}, false, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, first.Result, second.Result)
	assert.Equal(t, first.Record.Log, second.Record.Log)
	assert.NotEqual(t, first.Record.ID, second.Record.ID)
}

func TestSimulate_ConsoleEndOfInput(t *testing.T) {
	cfg := testConfig("")
	var out bytes.Buffer
	_, err := simulate(context.Background(), cfg, strings.NewReader(""), &out, false, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, interaction.ErrTransportClosed)
	assert.Contains(t, out.String(), "=== combat begins ===")
}

func TestSimulate_UnknownStrategy(t *testing.T) {
	cfg := testConfig("reckless")
	_, err := simulate(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{}, false, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestSimulate_UnknownCharacter(t *testing.T) {
	cfg := testConfig("greedy")
	cfg.Sim.Character = "watcher"
	_, err := simulate(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{}, false, zaptest.NewLogger(t))
	assert.Error(t, err)
}
