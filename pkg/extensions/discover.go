package extensions

import (
	"context"
	"fmt"
	"io"

	"github.com/sdejongh/sortnorris/pkg/storage"
)

// Discover walks root and collects the extension of every regular file that has one.
// Symlinks are not followed. The result is a valid input for Parse once written by WriteList.
func Discover(ctx context.Context, backend storage.Backend, root string) (Set, error) {
	s := Set{exts: make(map[string]struct{})}

	err := backend.Walk(ctx, root, func(path string, info *storage.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// Unreadable entries below the root are skipped
			return nil
		}
		if !info.IsRegular {
			return nil
		}
		if ext := Ext(path); ext != "" {
			s.exts[ext] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return Set{}, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return s, nil
}

// WriteList writes the set sorted, one extension per line
func WriteList(w io.Writer, s Set) error {
	for _, ext := range s.Sorted() {
		if _, err := fmt.Fprintln(w, ext); err != nil {
			return fmt.Errorf("failed to write extension list: %w", err)
		}
	}
	return nil
}
