package scripting

import (
	"context"
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/spiresim/internal/game/condition"
	"github.com/cory-johannsen/spiresim/internal/game/enemy"
	"github.com/cory-johannsen/spiresim/internal/interaction"
)

// ChooseHook is the global function every strategy script must define:
//
//	function choose(prompt, choices, state) return index end
//
// index is 1-based, following Lua convention.
const ChooseHook = "choose"

// ErrNoChooseHook is returned when a script does not define ChooseHook.
var ErrNoChooseHook = errors.New("strategy script does not define choose")

// view is what a strategy knows about the combat, rebuilt from notifications.
type view struct {
	hp, hpMax  int
	energy     int
	block      int
	strength   int
	dexterity  int
	conditions []condition.Player
	party      [enemy.MaxSlots]*enemy.Status
}

func (v *view) apply(n interaction.Notification) {
	switch n.Kind {
	case interaction.KindHealth:
		v.hp, v.hpMax = n.Amount, n.Max
	case interaction.KindEnergy:
		v.energy = n.Amount
	case interaction.KindBlock:
		v.block = n.Amount
	case interaction.KindStrength:
		v.strength = n.Amount
	case interaction.KindDexterity:
		v.dexterity = n.Amount
	case interaction.KindConditions:
		v.conditions = n.Conditions
	case interaction.KindEnemyParty:
		v.party = [enemy.MaxSlots]*enemy.Status{}
		for i, s := range n.Party {
			if i < enemy.MaxSlots {
				v.party[i] = s
			}
		}
	case interaction.KindEnemyStatus:
		if n.Slot >= 0 && n.Slot < enemy.MaxSlots {
			v.party[n.Slot] = n.Enemy
		}
	case interaction.KindEnemyDied:
		if n.Slot >= 0 && n.Slot < enemy.MaxSlots {
			v.party[n.Slot] = nil
		}
	}
}

// Strategy is an interaction.Interaction whose prompts are answered by a
// Lua script. It is safe for concurrent use; calls into the VM are
// serialized.
type Strategy struct {
	name   string
	limit  int
	logger *zap.Logger

	mu   sync.Mutex
	L    *lua.LState
	view view
}

// NewStrategy compiles src into a fresh sandbox.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: Returns ErrNoChooseHook when src does not define choose.
// The caller must Close the strategy.
func NewStrategy(name, src string, instLimit int, logger *zap.Logger) (*Strategy, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	L := NewSandboxedState(instLimit)
	RegisterModules(L, name, logger)
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("scripting: loading %q: %w", name, err)
	}
	if _, ok := L.GetGlobal(ChooseHook).(*lua.LFunction); !ok {
		L.Close()
		return nil, fmt.Errorf("scripting: %q: %w", name, ErrNoChooseHook)
	}
	return &Strategy{name: name, limit: effectiveLimit(instLimit), logger: logger, L: L}, nil
}

// Name returns the script name.
func (s *Strategy) Name() string { return s.name }

// Close releases the VM.
func (s *Strategy) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.L.Close()
}

// Notify implements interaction.Interaction.
func (s *Strategy) Notify(n interaction.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.apply(n)
}

// Prompt implements interaction.Interaction by calling choose.
//
// Postcondition: Returns the script's answer converted to a 0-based index.
// A non-numeric answer wraps interaction.ErrProtocol; a Lua runtime error,
// an exhausted instruction budget or a cancelled ctx is returned wrapped.
func (s *Strategy) Prompt(ctx context.Context, p interaction.Prompt, choices []interaction.Choice) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	budget, cancel := withBudget(ctx, s.limit)
	defer cancel()
	s.L.SetContext(budget)
	defer s.L.RemoveContext()

	err := s.L.CallByParam(lua.P{
		Fn:      s.L.GetGlobal(ChooseHook),
		NRet:    1,
		Protect: true,
	}, lua.LString(p.String()), choicesTable(s.L, choices), s.view.table(s.L))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		s.logger.Warn("scripting: Lua runtime error",
			zap.String("script", s.name),
			zap.Stringer("prompt", p),
			zap.Error(err),
		)
		return 0, fmt.Errorf("scripting: %q: %w", s.name, err)
	}
	ret := s.L.Get(-1)
	s.L.Pop(1)
	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("scripting: %q returned %s: %w", s.name, ret.Type(), interaction.ErrProtocol)
	}
	return int(n) - 1, nil
}

var choiceKindNames = map[interaction.ChoiceKind]string{
	interaction.ChoicePlayCard:    "play_card",
	interaction.ChoiceEndTurn:     "end_turn",
	interaction.ChoiceTargetEnemy: "target_enemy",
}

func choicesTable(L *lua.LState, choices []interaction.Choice) *lua.LTable {
	tbl := L.CreateTable(len(choices), 0)
	for _, c := range choices {
		row := L.NewTable()
		row.RawSetString("kind", lua.LString(choiceKindNames[c.Kind]))
		switch c.Kind {
		case interaction.ChoicePlayCard:
			row.RawSetString("card", lua.LString(c.Card))
			row.RawSetString("cost", lua.LNumber(c.Cost))
			row.RawSetString("hand_index", lua.LNumber(c.HandIndex))
		case interaction.ChoiceTargetEnemy:
			row.RawSetString("slot", lua.LNumber(c.Slot))
			if c.Enemy != nil {
				row.RawSetString("enemy", statusTable(L, c.Slot, c.Enemy))
			}
		}
		tbl.Append(row)
	}
	return tbl
}

func statusTable(L *lua.LState, slot int, st *enemy.Status) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("slot", lua.LNumber(slot))
	t.RawSetString("archetype", lua.LString(st.Archetype.String()))
	t.RawSetString("hp", lua.LNumber(st.HP))
	t.RawSetString("hp_max", lua.LNumber(st.HPMax))
	t.RawSetString("block", lua.LNumber(st.Block))
	t.RawSetString("strength", lua.LNumber(st.Strength))
	t.RawSetString("intent", lua.LString(st.Intent.String()))
	conds := L.NewTable()
	for _, c := range st.Conditions {
		conds.RawSetString(c.Kind.String(), lua.LNumber(c.Amount))
	}
	t.RawSetString("conditions", conds)
	return t
}

// table snapshots v. Scripts receive a fresh copy on every call, so writes
// to it have no effect on the combat.
func (v *view) table(L *lua.LState) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("hp", lua.LNumber(v.hp))
	t.RawSetString("hp_max", lua.LNumber(v.hpMax))
	t.RawSetString("energy", lua.LNumber(v.energy))
	t.RawSetString("block", lua.LNumber(v.block))
	t.RawSetString("strength", lua.LNumber(v.strength))
	t.RawSetString("dexterity", lua.LNumber(v.dexterity))
	conds := L.NewTable()
	for _, c := range v.conditions {
		conds.RawSetString(c.Kind.String(), lua.LNumber(c.Amount))
	}
	t.RawSetString("conditions", conds)
	enemies := L.NewTable()
	for slot, st := range v.party {
		if st != nil {
			enemies.Append(statusTable(L, slot, st))
		}
	}
	t.RawSetString("enemies", enemies)
	return t
}
