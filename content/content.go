// Package content embeds the default card and condition data shipped with
// the simulator.
package content

import "embed"

// FS holds the cards/, conditions/ and scripts/ trees.
//
//go:embed cards/*.yaml conditions/*.yaml scripts/*.lua
var FS embed.FS

// Directory names within FS.
const (
	CardsDir      = "cards"
	ConditionsDir = "conditions"
	ScriptsDir    = "scripts"
)
