package agent

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/IlliquidAsset/deepcoder/internal"
)

const (
	TranscriptLogName = "agent.transcript.log"
	DebugLogName      = "agent.debug.jsonl"
)

// Logs are the per-run artifact loggers. Both files are truncated when a
// new run starts.
type Logs struct {
	Dir       string
	HumanPath string
	DebugPath string

	HumanLogger *zap.SugaredLogger
	DebugLogger *zap.SugaredLogger

	HumanZap *zap.Logger
	DebugZap *zap.Logger

	humanFile *os.File
	debugFile *os.File
}

func (l *Logs) Close() {
	if l.HumanZap != nil {
		_ = l.HumanZap.Sync()
	}
	if l.DebugZap != nil {
		_ = l.DebugZap.Sync()
	}
	if l.humanFile != nil {
		_ = l.humanFile.Close()
	}
	if l.debugFile != nil {
		_ = l.debugFile.Close()
	}
}

func (l *Logs) SyncHuman() {
	if l.HumanZap != nil {
		_ = l.HumanZap.Sync()
	}
}

func (l *Logs) SyncDebug() {
	if l.DebugZap != nil {
		_ = l.DebugZap.Sync()
	}
}

// NewLogs opens the artifact loggers under <cache home>/agent.
func NewLogs(runID string) (*Logs, error) {
	cacheHome, err := internal.GetCacheHome()
	if err != nil {
		return nil, err
	}
	return NewLogsIn(filepath.Join(cacheHome, "agent"), runID)
}

func NewLogsIn(dir, runID string) (*Logs, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	humanPath := filepath.Join(dir, TranscriptLogName)
	debugPath := filepath.Join(dir, DebugLogName)

	humanZap, humanFile, err := newFileLogger(humanPath, zapcore.InfoLevel, false)
	if err != nil {
		return nil, err
	}

	debugZap, debugFile, err := newFileLogger(debugPath, zapcore.DebugLevel, true)
	if err != nil {
		_ = humanZap.Sync()
		_ = humanFile.Close()
		return nil, err
	}
	if runID != "" {
		debugZap = debugZap.With(zap.String("run_id", runID))
	}

	return &Logs{
		Dir:         dir,
		HumanPath:   humanPath,
		DebugPath:   debugPath,
		HumanLogger: humanZap.Sugar(),
		DebugLogger: debugZap.Sugar(),
		HumanZap:    humanZap,
		DebugZap:    debugZap,
		humanFile:   humanFile,
		debugFile:   debugFile,
	}, nil
}

func newFileLogger(path string, level zapcore.Level, json bool) (*zap.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if json {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(f), level)), f, nil
}
