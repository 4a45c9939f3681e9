package compare

import (
	"path"
	"strings"
)

// shouldExclude reports whether relPath (slash-separated) matches any
// pattern. Supported forms:
//   - basename globs: *.tmp, .DS_Store
//   - directory patterns with a trailing slash: .git/, node_modules/
//   - path globs anchored at the root: build/*, docs/*.md
//   - any-depth globs: **/cache/*, **/*.log
func shouldExclude(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern != "" && matchPattern(relPath, pattern) {
			return true
		}
	}
	return false
}

func matchPattern(relPath, pattern string) bool {
	segments := strings.Split(relPath, "/")

	if dir, ok := strings.CutSuffix(pattern, "/"); ok {
		// Any directory component matching dir excludes the whole subtree
		for _, seg := range segments[:len(segments)-1] {
			if globMatch(dir, seg) {
				return true
			}
		}
		return false
	}

	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		// Try the remaining pattern against every suffix of the path
		for i := range segments {
			if globMatch(rest, strings.Join(segments[i:], "/")) {
				return true
			}
		}
		return false
	}

	if strings.Contains(pattern, "/") {
		return globMatch(pattern, relPath)
	}

	return globMatch(pattern, segments[len(segments)-1])
}

func globMatch(pattern, name string) bool {
	matched, err := path.Match(pattern, name)
	return err == nil && matched
}
