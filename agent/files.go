package agent

//go:generate mockgen -destination=filemocks_test.go -package=agent_test github.com/IlliquidAsset/deepcoder/agent Files
type Files interface {
	ReadFile(path string) (string, error)
	WriteFile(path string, content string) error
	SearchFiles(criteria SearchCriteria) ([]string, error)
}

//go:generate mockgen -destination=differmocks_test.go -package=agent_test github.com/IlliquidAsset/deepcoder/agent Differ
type Differ interface {
	CreateDiff(path, newContent, originalContent string) string
}
