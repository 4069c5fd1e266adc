package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/IlliquidAsset/deepcoder/agent"
)

const (
	Binary        = "git"
	CommitTrailer = "Generated by DeepCoder CLI"
)

var ErrNotRepo = errors.New("Not a Git repository")

// GitError wraps a failed git operation.
type GitError struct {
	Op  string
	Err error
}

func (e GitError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e GitError) Unwrap() error {
	return e.Err
}

type Status struct {
	Untracked []string
	Modified  []string
	Staged    []string
}

var _ agent.Git = &Client{}

type Client struct {
	root   string
	runner Runner
	log    *zap.SugaredLogger
}

type Option func(*Client)

func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func NewClient(root string, runner Runner, opts ...Option) *Client {
	c := &Client{
		root:   root,
		runner: runner,
		log:    zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) IsRepo(ctx context.Context) bool {
	res, err := c.runner.Run(ctx, c.root, Binary, "rev-parse", "--is-inside-work-tree")
	if err != nil || res.ExitCode != 0 {
		return false
	}
	return strings.TrimSpace(res.Stdout) == "true"
}

func (c *Client) Status(ctx context.Context) (Status, error) {
	st := Status{Untracked: []string{}, Modified: []string{}, Staged: []string{}}
	if !c.IsRepo(ctx) {
		return st, nil
	}

	res, err := c.git(ctx, "status", "--porcelain")
	if err != nil {
		return st, GitError{Op: "Failed to get Git status", Err: err}
	}

	for _, line := range strings.Split(res.Stdout, "\n") {
		if len(line) < 4 {
			continue
		}
		x, y, path := line[0], line[1], line[3:]
		if i := strings.Index(path, " -> "); i != -1 {
			path = path[i+4:]
		}

		if x == '?' && y == '?' {
			st.Untracked = append(st.Untracked, path)
			continue
		}
		if x != ' ' {
			st.Staged = append(st.Staged, path)
		}
		if y != ' ' {
			st.Modified = append(st.Modified, path)
		}
	}
	return st, nil
}

// IsIgnored reports whether git ignores path. Any failure counts as not
// ignored.
func (c *Client) IsIgnored(ctx context.Context, path string) bool {
	res, err := c.runner.Run(ctx, c.root, Binary, "check-ignore", "-q", "--", c.rel(path))
	if err != nil {
		return false
	}
	return res.ExitCode == 0
}

func (c *Client) StageChanges(ctx context.Context, paths []string) error {
	if !c.IsRepo(ctx) {
		return GitError{Op: "Failed to stage files", Err: ErrNotRepo}
	}
	if len(paths) == 0 {
		return nil
	}

	args := []string{"add", "--"}
	for _, p := range paths {
		args = append(args, c.rel(p))
	}

	if _, err := c.git(ctx, args...); err != nil {
		return GitError{Op: fmt.Sprintf("Failed to stage file(s) %s", strings.Join(paths, ", ")), Err: err}
	}

	c.log.Debugf("staged %d path(s)", len(paths))
	return nil
}

// CommitChanges commits the index and returns the new commit hash.
func (c *Client) CommitChanges(ctx context.Context, message string) (string, error) {
	if !c.IsRepo(ctx) {
		return "", GitError{Op: "Failed to commit changes", Err: ErrNotRepo}
	}

	full := message + "\n\n" + CommitTrailer
	if _, err := c.git(ctx, "commit", "-m", full); err != nil {
		return "", GitError{Op: "Failed to commit changes", Err: err}
	}

	res, err := c.git(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", GitError{Op: "Failed to read commit hash", Err: err}
	}

	hash := strings.TrimSpace(res.Stdout)
	c.log.Debugf("committed %s", hash)
	return hash, nil
}

func (c *Client) git(ctx context.Context, args ...string) (Result, error) {
	res, err := c.runner.Run(ctx, c.root, Binary, args...)
	if err != nil {
		return res, err
	}
	if res.ExitCode != 0 {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = strings.TrimSpace(res.Stdout)
		}
		return res, fmt.Errorf("git %s exited with %d: %s", args[0], res.ExitCode, msg)
	}
	return res, nil
}

func (c *Client) rel(path string) string {
	if !filepath.IsAbs(path) || c.root == "" {
		return path
	}
	if r, err := filepath.Rel(c.root, path); err == nil {
		return r
	}
	return path
}
