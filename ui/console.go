package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/IlliquidAsset/deepcoder/agent"
	"github.com/IlliquidAsset/deepcoder/diff"
)

const (
	ConfirmQuestion   = "Apply these changes?"
	NotAppliedMessage = "Changes not applied"
	LabelNewFile      = "New file"
	LabelModified     = "Modified"
	defaultWrapWidth  = 100
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))

// Console presents changes and explanations on a terminal and asks for
// confirmation before changes are applied.
type Console struct {
	out      io.Writer
	ask      asker
	autoYes  bool
	color    bool
	wrap     int
	renderer func(markdown string) (string, error)
	log      *zap.SugaredLogger
}

var _ agent.Presenter = &Console{}

type ConsoleOption func(*Console)

// WithAutoConfirm answers yes to every confirmation.
func WithAutoConfirm(yes bool) ConsoleOption {
	return func(c *Console) { c.autoYes = yes }
}

// WithColor turns on ANSI styling and terminal Markdown rendering.
func WithColor(color bool) ConsoleOption {
	return func(c *Console) { c.color = color }
}

func WithWrapWidth(width int) ConsoleOption {
	return func(c *Console) {
		if width > 0 {
			c.wrap = width
		}
	}
}

func WithLogger(l *zap.SugaredLogger) ConsoleOption {
	return func(c *Console) {
		if l != nil {
			c.log = l
		}
	}
}

func NewConsole(out io.Writer, p Prompter, opts ...ConsoleOption) *Console {
	c := &Console{
		out:  out,
		ask:  asker{p: p, out: out},
		wrap: defaultWrapWidth,
		log:  zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(c)
	}
	c.renderer = c.renderMarkdown
	return c
}

func (c *Console) heading(s string) string {
	if !c.color {
		return s
	}
	return headingStyle.Render(s)
}

func (c *Console) PresentChanges(changes []agent.Change) error {
	fmt.Fprintf(c.out, "\n%s\n", c.heading(fmt.Sprintf("Generated %d file change(s):", len(changes))))

	for i, ch := range changes {
		label := LabelModified
		if ch.IsNewFile {
			label = LabelNewFile
		}
		added, removed := diff.Stats(ch.OriginalContent, ch.NewContent)
		fmt.Fprintf(c.out, "\n%d. %s: %s (+%d -%d)\n", i+1, label, ch.Path, added, removed)

		body := ch.Diff
		if ch.IsNewFile && body == "" {
			body = ch.NewContent
		}
		if body == "" {
			fmt.Fprintln(c.out, "(no textual changes)")
			continue
		}
		if c.color {
			body = diff.Colorize(body)
		}
		fmt.Fprintln(c.out, strings.TrimRight(body, "\n"))
	}
	return nil
}

// ConfirmChanges asks whether to apply the changes. An interrupted or
// closed prompt counts as a no.
func (c *Console) ConfirmChanges(changes []agent.Change) (bool, error) {
	if len(changes) == 0 {
		return false, nil
	}
	if c.autoYes {
		c.log.Debugf("auto-confirming %d change(s)", len(changes))
		return true, nil
	}

	fmt.Fprintln(c.out)
	ok, err := c.ask.confirm(ConfirmQuestion, false)
	if err != nil {
		if errors.Is(err, ErrAborted) || errors.Is(err, io.EOF) {
			ok, err = false, nil
		} else {
			return false, err
		}
	}
	if !ok {
		fmt.Fprintln(c.out, NotAppliedMessage)
	}
	return ok, nil
}

func (c *Console) PresentExplanation(explanation string) error {
	fmt.Fprintf(c.out, "\n%s\n", c.heading("Explanation:"))

	rendered, err := c.renderer(explanation)
	if err != nil {
		c.log.Debugf("markdown rendering failed: %v", err)
		rendered = explanation
	}
	fmt.Fprintln(c.out, strings.TrimRight(rendered, "\n"))
	return nil
}

func (c *Console) renderMarkdown(markdown string) (string, error) {
	style := "notty"
	if c.color {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(c.wrap),
	)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}
