package test

import (
	"os"
	"path"
	"path/filepath"
	"runtime"

	. "github.com/onsi/gomega"
)

// FileToBytes reads a fixture from test/data.
func FileToBytes(fileName string) ([]byte, error) {
	_, thisFile, _, _ := runtime.Caller(0)

	urlPath, err := filepath.Abs(path.Join(thisFile, "..", "data", fileName))
	if err != nil {
		return nil, err
	}

	Expect(urlPath).To(BeAnExistingFile())

	return os.ReadFile(urlPath)
}

// CleanEnv returns the current environment without the variables that
// feed the configuration loader, plus extra.
func CleanEnv(drop map[string]bool, extra ...string) []string {
	var env []string
	for _, kv := range os.Environ() {
		name := kv
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				name = kv[:i]
				break
			}
		}
		if !drop[name] {
			env = append(env, kv)
		}
	}
	return append(env, extra...)
}
