package condition

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Holder values accepted in a Definition.
const (
	HolderPlayer = "player"
	HolderEnemy  = "enemy"
)

// Definition is the display data of a condition, loaded from YAML.
type Definition struct {
	ID          string `yaml:"id"`
	Holder      string `yaml:"holder"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Decay documents the boundary behavior: "none", "start_of_turn",
	// "end_of_turn" or "this_turn".
	Decay string `yaml:"decay"`
}

type definitionFile struct {
	Conditions []*Definition `yaml:"conditions"`
}

// Registry holds condition definitions keyed by holder and ID.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

func key(holder, id string) string { return holder + "/" + id }

// Register adds def, overwriting any existing entry for the same holder and ID.
//
// Precondition: def must not be nil; def.ID and def.Holder must be non-empty.
func (r *Registry) Register(def *Definition) {
	r.defs[key(def.Holder, def.ID)] = def
}

// Player returns the definition for a player kind.
func (r *Registry) Player(kind PlayerKind) (*Definition, bool) {
	d, ok := r.defs[key(HolderPlayer, kind.String())]
	return d, ok
}

// Enemy returns the definition for an enemy kind.
func (r *Registry) Enemy(kind EnemyKind) (*Definition, bool) {
	d, ok := r.defs[key(HolderEnemy, kind.String())]
	return d, ok
}

// PlayerName returns the display name of kind, falling back to its identifier.
func (r *Registry) PlayerName(kind PlayerKind) string {
	if d, ok := r.Player(kind); ok {
		return d.Name
	}
	return kind.String()
}

// EnemyName returns the display name of kind, falling back to its identifier.
func (r *Registry) EnemyName(kind EnemyKind) string {
	if d, ok := r.Enemy(kind); ok {
		return d.Name
	}
	return kind.String()
}

// All returns every definition sorted by holder then ID.
func (r *Registry) All() []*Definition {
	out := make([]*Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return key(out[i].Holder, out[i].ID) < key(out[j].Holder, out[j].ID)
	})
	return out
}

// Validate checks that every kind of both catalogs has a definition and that
// every definition names a known kind.
//
// Postcondition: Returns nil, or an error listing every violation.
func (r *Registry) Validate() error {
	var err error
	for _, k := range PlayerKinds() {
		if _, ok := r.Player(k); !ok {
			err = multierr.Append(err, fmt.Errorf("player condition %q has no definition", k))
		}
	}
	for _, k := range EnemyKinds() {
		if _, ok := r.Enemy(k); !ok {
			err = multierr.Append(err, fmt.Errorf("enemy condition %q has no definition", k))
		}
	}
	for _, d := range r.All() {
		switch d.Holder {
		case HolderPlayer:
			if _, ok := ParsePlayerKind(d.ID); !ok {
				err = multierr.Append(err, fmt.Errorf("unknown player condition %q", d.ID))
			}
		case HolderEnemy:
			if _, ok := ParseEnemyKind(d.ID); !ok {
				err = multierr.Append(err, fmt.Errorf("unknown enemy condition %q", d.ID))
			}
		default:
			err = multierr.Append(err, fmt.Errorf("condition %q: holder must be player or enemy, got %q", d.ID, d.Holder))
		}
	}
	return err
}

// LoadFS reads every *.yaml file in dir of fsys and returns a populated
// Registry. Each file holds a top-level "conditions" list.
//
// Precondition: dir must be a readable directory of fsys.
// Postcondition: Returns a non-nil Registry, or an error if any file fails
// to parse or any definition is incomplete.
func LoadFS(fsys fs.FS, dir string) (*Registry, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading condition dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		p := path.Join(dir, e.Name())
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		var file definitionFile
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", p, err)
		}
		for _, def := range file.Conditions {
			if def.ID == "" || def.Holder == "" {
				return nil, fmt.Errorf("parsing %q: condition entries need id and holder", p)
			}
			reg.Register(def)
		}
	}
	return reg, nil
}
