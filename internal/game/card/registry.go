package card

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/spiresim/internal/game/effect"
)

type definitionFile struct {
	Cards []*Definition `yaml:"cards"`
}

// Registry holds card definitions keyed by ID.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register compiles def and adds it to the registry.
//
// Precondition: def must not be nil.
// Postcondition: Returns an error on a duplicate ID or an uncompilable definition.
func (r *Registry) Register(def *Definition) error {
	if def.ID == "" {
		return fmt.Errorf("card.Registry: definition has no id")
	}
	if _, exists := r.defs[def.ID]; exists {
		return fmt.Errorf("card.Registry: card %q already registered", def.ID)
	}
	if err := def.compile(); err != nil {
		return err
	}
	r.defs[def.ID] = def
	return nil
}

// Get returns the definition for id.
//
// Postcondition: Returns an error wrapping ErrUnknownCard when id is not registered.
func (r *Registry) Get(id string) (*Definition, error) {
	d, ok := r.defs[id]
	if !ok {
		return nil, fmt.Errorf("card %q: %w", id, ErrUnknownCard)
	}
	return d, nil
}

// All returns every definition sorted by ID.
func (r *Registry) All() []*Definition {
	out := make([]*Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Validate checks cross references between cards.
//
// Postcondition: Returns nil when every added card exists and every
// targeted card has a targeted effect.
func (r *Registry) Validate() error {
	var err error
	for _, d := range r.All() {
		targeted := false
		for _, e := range d.effects {
			if e.IsTargeted() {
				targeted = true
			}
			if e.Op == effect.OpAddToDiscard || e.Op == effect.OpAddToHand {
				if _, ok := r.defs[e.Card]; !ok {
					err = multierr.Append(err, fmt.Errorf("card %q adds unknown card %q", d.ID, e.Card))
				}
			}
		}
		if d.target != effect.TargetNone && !targeted {
			err = multierr.Append(err, fmt.Errorf("card %q has target %s but no targeted effect", d.ID, d.target))
		}
		if d.Cost < 0 {
			err = multierr.Append(err, fmt.Errorf("card %q has negative cost", d.ID))
		}
	}
	return err
}

// Instantiate creates one combat card per id.
//
// Postcondition: Returns an error wrapping ErrUnknownCard for any unknown id.
func (r *Registry) Instantiate(ids []string) ([]*Card, error) {
	out := make([]*Card, 0, len(ids))
	for _, id := range ids {
		d, err := r.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, New(d))
	}
	return out, nil
}

// LoadFS reads every *.yaml file in dir of fsys and returns a populated,
// validated Registry. Each file holds a top-level "cards" list.
//
// Precondition: dir must be a readable directory of fsys.
// Postcondition: Returns a non-nil Registry, or an error if any file fails
// to parse or any definition fails to compile or validate.
func LoadFS(fsys fs.FS, dir string) (*Registry, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading card dir %q: %w", dir, err)
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
		for _, def := range file.Cards {
			if err := reg.Register(def); err != nil {
				return nil, fmt.Errorf("loading %q: %w", p, err)
			}
		}
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}
