package ui

import (
	"errors"
	"strings"

	"github.com/chzyer/readline"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("aborted")

//go:generate mockgen -destination=promptermocks_test.go -package=ui_test github.com/IlliquidAsset/deepcoder/ui Prompter
type Prompter interface {
	ReadLine(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
}

// ReadlinePrompter reads answers from the terminal. The readline instance
// is created on first use.
type ReadlinePrompter struct {
	rl *readline.Instance
}

var _ Prompter = &ReadlinePrompter{}

func NewReadlinePrompter() *ReadlinePrompter {
	return &ReadlinePrompter{}
}

func (p *ReadlinePrompter) instance() (*readline.Instance, error) {
	if p.rl != nil {
		return p.rl, nil
	}
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt:   "^C",
		EOFPrompt:         "",
		HistoryLimit:      -1,
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, err
	}
	p.rl = rl
	return rl, nil
}

func (p *ReadlinePrompter) ReadLine(prompt string) (string, error) {
	rl, err := p.instance()
	if err != nil {
		return "", err
	}
	rl.SetPrompt(prompt)

	line, err := rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrAborted
	}
	return strings.TrimSpace(line), err
}

func (p *ReadlinePrompter) ReadPassword(prompt string) (string, error) {
	rl, err := p.instance()
	if err != nil {
		return "", err
	}

	b, err := rl.ReadPassword(prompt)
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrAborted
	}
	return strings.TrimSpace(string(b)), err
}

func (p *ReadlinePrompter) Close() error {
	if p.rl == nil {
		return nil
	}
	return p.rl.Close()
}
