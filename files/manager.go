package files

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"

	"github.com/IlliquidAsset/deepcoder/agent"
	"github.com/IlliquidAsset/deepcoder/internal/fsio"
)

const (
	DefaultMaxSearchFiles = 5
	GitIgnoreFile         = ".gitignore"
	LocalIgnoreFile       = ".deepcoder/ignore"
)

// DefaultIgnorePatterns are applied in every project on top of its own
// ignore files.
var DefaultIgnorePatterns = []string{
	"node_modules",
	".git",
	"venv",
	".env",
	"__pycache__",
	"*.pyc",
	"dist",
	"build",
	".DS_Store",
}

// Preferred extensions for the search fallback, by task type. Task types
// not listed accept every source file.
var searchExtensions = map[agent.TaskType][]string{
	agent.TaskRefactor: {".py", ".js", ".ts"},
	agent.TaskFixBug:   {".py", ".js", ".ts"},
	agent.TaskDocument: {".py", ".md", ".html"},
}

var _ agent.Files = &Manager{}

// Manager reads, writes and searches files below a project root.
type Manager struct {
	root      string
	reader    fsio.Reader
	writer    fsio.Writer
	ignore    *ignore.GitIgnore
	maxSearch int
	log       *zap.SugaredLogger
}

type Option func(*Manager)

func WithReader(r fsio.Reader) Option {
	return func(m *Manager) { m.reader = r }
}

func WithWriter(w fsio.Writer) Option {
	return func(m *Manager) { m.writer = w }
}

func WithMaxSearchFiles(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxSearch = n
		}
	}
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

func New(root string, opts ...Option) (*Manager, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root %q: %w", root, err)
	}

	m := &Manager{
		root:      abs,
		reader:    fsio.NewRealReader(),
		writer:    fsio.NewRealWriter(),
		maxSearch: DefaultMaxSearchFiles,
		log:       zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(m)
	}

	m.ignore = ignore.CompileIgnoreLines(m.ignoreLines()...)
	return m, nil
}

func (m *Manager) Root() string {
	return m.root
}

func (m *Manager) ignoreLines() []string {
	lines := append([]string{}, DefaultIgnorePatterns...)

	for _, name := range []string{GitIgnoreFile, LocalIgnoreFile} {
		b, err := m.reader.ReadFile(filepath.Join(m.root, filepath.FromSlash(name)))
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				m.log.Warnf("Error reading %s: %v", name, err)
			}
			continue
		}
		for _, line := range strings.Split(string(b), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			lines = append(lines, line)
		}
	}
	return lines
}

func (m *Manager) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(m.root, path)
}

// IsIgnored reports whether a root-relative path matches the ignore rules.
func (m *Manager) IsIgnored(rel string) bool {
	return m.ignore.MatchesPath(filepath.ToSlash(rel))
}

func (m *Manager) ReadFile(path string) (string, error) {
	full := m.resolve(path)

	b, err := m.reader.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", agent.ErrFileNotFound, path)
		}
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(b), nil
}

// WriteFile replaces path with content, creating parent directories. An
// existing file keeps its permissions.
func (m *Manager) WriteFile(path, content string) error {
	full := m.resolve(path)

	if err := m.writer.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	perm := fs.FileMode(0o644)
	if info, err := m.reader.Stat(full); err == nil {
		perm = info.Mode().Perm()
	}

	if err := m.writer.WriteFile(full, []byte(content), perm); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	m.log.Debugf("wrote %s (%d bytes)", path, len(content))
	return nil
}

// SearchFiles picks candidate files for a task:
//   - named files that exist, when the criteria name any;
//   - otherwise source files mentioning one of the named functions;
//   - otherwise the newest source files preferred for the task type.
func (m *Manager) SearchFiles(criteria agent.SearchCriteria) ([]string, error) {
	entities := criteria.Entities

	if entities.Files != nil {
		found := []string{}
		for _, f := range entities.Files {
			if _, err := m.reader.Stat(m.resolve(f)); err == nil {
				found = append(found, f)
			}
		}
		return found, nil
	}

	code, err := m.listCodeFiles()
	if err != nil {
		return nil, err
	}

	var found []string
	if entities.Functions != nil {
		for _, f := range code {
			content, err := m.reader.ReadFile(filepath.Join(m.root, f.path))
			if err != nil {
				continue
			}
			if containsAny(string(content), entities.Functions) {
				found = append(found, f.path)
			}
		}
	}

	if len(found) == 0 {
		found = []string{}
		exts, filtered := searchExtensions[criteria.TaskType]
		for _, f := range code {
			if len(found) == m.maxSearch {
				break
			}
			if filtered && !hasExt(f.path, exts) {
				continue
			}
			found = append(found, f.path)
		}
	}

	m.log.Debugw("search", "task_type", criteria.TaskType, "found", found)
	return found, nil
}

type codeFile struct {
	path    string
	modTime time.Time
}

// listCodeFiles walks the root and returns source files newest first,
// ties broken by path.
func (m *Manager) listCodeFiles() ([]codeFile, error) {
	var out []codeFile

	err := m.reader.WalkDir(m.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == m.root {
				return err
			}
			m.log.Debugf("skipping %s: %v", p, err)
			return nil
		}

		rel, relErr := filepath.Rel(m.root, p)
		if relErr != nil || rel == "." {
			return nil
		}

		if d.IsDir() {
			if m.IsIgnored(rel) {
				return fs.SkipDir
			}
			return nil
		}

		if !agent.IsSourceFile(d.Name()) || m.IsIgnored(rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		out = append(out, codeFile{path: rel, modTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files under %s: %w", m.root, err)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].modTime.Equal(out[j].modTime) {
			return out[i].modTime.After(out[j].modTime)
		}
		return out[i].path < out[j].path
	})
	return out, nil
}

func hasExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
