package agent

import (
	"context"
)

//go:generate mockgen -destination=gitmocks_test.go -package=agent_test github.com/IlliquidAsset/deepcoder/agent Git
type Git interface {
	StageChanges(ctx context.Context, paths []string) error
	CommitChanges(ctx context.Context, message string) (string, error)
}

//go:generate mockgen -destination=presentermocks_test.go -package=agent_test github.com/IlliquidAsset/deepcoder/agent Presenter
type Presenter interface {
	PresentChanges(changes []Change) error
	ConfirmChanges(changes []Change) (bool, error)
	PresentExplanation(explanation string) error
}

// Tools bundles the collaborators the executor drives.
type Tools struct {
	Files     Files
	Model     Model
	Differ    Differ
	Git       Git
	Presenter Presenter
}
