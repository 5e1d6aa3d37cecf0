package interaction

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cory-johannsen/spiresim/internal/game/condition"
)

// ANSI escape codes used by the console renderer.
const (
	ansiReset        = "\033[0m"
	ansiDim          = "\033[2m"
	ansiRed          = "\033[31m"
	ansiGreen        = "\033[32m"
	ansiYellow       = "\033[33m"
	ansiCyan         = "\033[36m"
	ansiBrightYellow = "\033[93m"
	ansiBrightRed    = "\033[91m"
)

// colorize wraps text with color and a reset suffix.
func colorize(color, text string) string { return color + text + ansiReset }

// Console is an interactive terminal collaborator: notifications are
// printed and prompts are answered by typing a choice number.
type Console struct {
	in    *bufio.Scanner
	out   io.Writer
	color bool
	names *condition.Registry
}

// NewConsole reads answers from in and writes to out. color enables ANSI
// styling.
//
// Precondition: in and out must not be nil.
func NewConsole(in io.Reader, out io.Writer, color bool) *Console {
	return &Console{in: bufio.NewScanner(in), out: out, color: color}
}

// WithConditionNames renders player conditions by their display names from reg.
func (c *Console) WithConditionNames(reg *condition.Registry) *Console {
	c.names = reg
	return c
}

func (c *Console) paint(color, text string) string {
	if !c.color {
		return text
	}
	return colorize(color, text)
}

// Notify implements Interaction.
func (c *Console) Notify(n Notification) {
	_, _ = fmt.Fprintln(c.out, c.render(n))
}

func (c *Console) render(n Notification) string {
	switch n.Kind {
	case KindStartingCombat:
		return c.paint(ansiBrightYellow, "=== combat begins ===")
	case KindEndingCombat:
		if n.Victory {
			return c.paint(ansiGreen, "=== victory ===")
		}
		return c.paint(ansiBrightRed, "=== defeat ===")
	case KindDamageTaken, KindEnemyDied:
		return c.paint(ansiRed, n.String())
	case KindBlock, KindBlockGained, KindDamageBlocked:
		return c.paint(ansiCyan, n.String())
	case KindEnemyParty, KindEnemyStatus:
		return c.paint(ansiYellow, n.String())
	case KindConditions:
		if c.names == nil {
			return c.paint(ansiDim, n.String())
		}
		parts := make([]string, len(n.Conditions))
		for i, cond := range n.Conditions {
			parts[i] = fmt.Sprintf("%s %d", c.names.PlayerName(cond.Kind), cond.Amount)
		}
		return c.paint(ansiDim, fmt.Sprintf("%s [%s]", n.Kind, strings.Join(parts, ", ")))
	default:
		return c.paint(ansiDim, n.String())
	}
}

// Prompt implements Interaction. Unparseable input is reported and asked
// again; end of input is ErrTransportClosed.
func (c *Console) Prompt(ctx context.Context, p Prompt, choices []Choice) (int, error) {
	var b strings.Builder
	b.WriteString(c.paint(ansiBrightYellow, p.String()))
	b.WriteString("\n")
	for i, ch := range choices {
		fmt.Fprintf(&b, "  %d) %s\n", i, ch)
	}
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		_, _ = fmt.Fprint(c.out, b.String(), "> ")
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return 0, fmt.Errorf("reading console: %w", err)
			}
			return 0, ErrTransportClosed
		}
		idx, err := strconv.Atoi(strings.TrimSpace(c.in.Text()))
		if err != nil || idx < 0 || idx >= len(choices) {
			_, _ = fmt.Fprintln(c.out, c.paint(ansiRed, "invalid choice"))
			continue
		}
		return idx, nil
	}
}
