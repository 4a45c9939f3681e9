package compare

import (
	"context"
	"fmt"
	"sort"

	"github.com/sdejongh/synctools/pkg/storage"
)

// ListFiles returns the sorted, de-duplicated relative paths of every
// regular file under e that no exclude pattern matches. An empty directory
// yields an empty slice.
func ListFiles(ctx context.Context, e storage.Endpoint, exclude []string) ([]string, error) {
	raw, err := e.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", e.Display(), err)
	}

	seen := make(map[string]struct{}, len(raw))
	files := make([]string, 0, len(raw))
	for _, p := range raw {
		if p == "" || shouldExclude(p, exclude) {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	sort.Strings(files)
	return files, nil
}
