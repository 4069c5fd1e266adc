package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/IlliquidAsset/deepcoder/internal/fsio"
)

// Store persists configuration files as YAML.
type Store struct {
	reader fsio.Reader
	writer fsio.Writer
}

func NewStore() *Store {
	return &Store{reader: fsio.NewRealReader(), writer: fsio.NewRealWriter()}
}

func (s *Store) WithReader(r fsio.Reader) *Store {
	s.reader = r
	return s
}

func (s *Store) WithWriter(w fsio.Writer) *Store {
	s.writer = w
	return s
}

func (s *Store) Read(path string) (Config, error) {
	result := Defaults()

	buf, err := s.reader.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(buf, &result); err != nil {
		return Config{}, &ConfigurationError{Msg: fmt.Sprintf("Invalid config file %s: %v", path, err)}
	}
	result.File = path
	return result.Normalize(), nil
}

// Write saves cfg to path, creating the parent directory. Files may hold
// credentials so they are only readable by the owner.
func (s *Store) Write(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := s.writer.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := s.writer.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// EnsureIgnored appends entry to an existing ignore file unless the file
// already mentions it. It reports whether the file changed; a missing file
// is left alone.
func (s *Store) EnsureIgnored(ignoreFile, entry, comment string) (bool, error) {
	buf, err := s.reader.ReadFile(ignoreFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	content := string(buf)
	if strings.Contains(content, entry) {
		return false, nil
	}

	perm := fs.FileMode(0o644)
	if info, err := s.reader.Stat(ignoreFile); err == nil {
		perm = info.Mode().Perm()
	}

	content += fmt.Sprintf("\n# %s\n%s\n", comment, entry)
	if err := s.writer.WriteFile(ignoreFile, []byte(content), perm); err != nil {
		return false, err
	}
	return true, nil
}
