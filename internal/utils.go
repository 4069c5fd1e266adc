package internal

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	ConfigHomeEnv    = "DEEPCODER_CONFIG_HOME"
	CacheHomeEnv     = "DEEPCODER_CACHE_HOME"
	DefaultConfigDir = ".config/deepcoder"
	DefaultCacheDir  = "cache"
	RunIDLength      = 12
)

// NewRunID returns a short random identifier for one agent run.
func NewRunID() string {
	id := uuid.NewString()
	id = id[:8] + id[9:13]
	return id[:RunIDLength]
}

func GetConfigHome() (string, error) {
	if tmp := os.Getenv(ConfigHomeEnv); tmp != "" {
		return tmp, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, filepath.FromSlash(DefaultConfigDir)), nil
}

func GetCacheHome() (string, error) {
	if tmp := os.Getenv(CacheHomeEnv); tmp != "" {
		return tmp, nil
	}

	configHome, err := GetConfigHome()
	if err != nil {
		return "", err
	}

	return filepath.Join(configHome, DefaultCacheDir), nil
}
