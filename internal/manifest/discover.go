package manifest

import (
	"sort"

	"github.com/mikecbrant/cognito-userpool-clients/internal/utils"
)

// DefaultPattern matches serverless manifests at any depth.
const DefaultPattern = "**/serverless.{yml,yaml}"

// Discover returns a deterministic list of manifest paths under root matching pattern.
// An empty pattern uses DefaultPattern.
func Discover(root, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	files, err := utils.GlobRecursive(root, pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
