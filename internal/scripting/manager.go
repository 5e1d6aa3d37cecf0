package scripting

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Manager is the catalog of strategy scripts found in one directory of a
// file system. Each Load compiles a fresh, independent VM so that
// concurrent combats never share Lua state.
type Manager struct {
	fsys      fs.FS
	dir       string
	instLimit int
	logger    *zap.Logger
	names     []string
}

// NewManager indexes every *.lua file in dir of fsys.
//
// Precondition: dir must be a readable directory of fsys.
// Postcondition: Names returns the script names without extension in
// lexicographic order.
func NewManager(fsys fs.FS, dir string, instLimit int, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == ".lua" {
			names = append(names, strings.TrimSuffix(e.Name(), ".lua"))
		}
	}
	sort.Strings(names)
	return &Manager{fsys: fsys, dir: dir, instLimit: instLimit, logger: logger, names: names}, nil
}

// Names returns the available script names.
func (m *Manager) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Load compiles the script called name.
//
// Postcondition: Returns an error for an unknown name, a script that fails
// to load, or one without a choose function.
func (m *Manager) Load(name string) (*Strategy, error) {
	i := sort.SearchStrings(m.names, name)
	if i == len(m.names) || m.names[i] != name {
		return nil, fmt.Errorf("scripting: no strategy %q in %q (have %v)", name, m.dir, m.names)
	}
	src, err := fs.ReadFile(m.fsys, path.Join(m.dir, name+".lua"))
	if err != nil {
		return nil, fmt.Errorf("scripting: reading %q: %w", name, err)
	}
	s, err := NewStrategy(name, string(src), m.instLimit, m.logger)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("strategy loaded", zap.String("script", name))
	return s, nil
}
