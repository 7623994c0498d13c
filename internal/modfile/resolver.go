package modfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"cleave/internal/image"
)

// ErrUnresolved marks a module reference that no search path satisfies.
var ErrUnresolved = errors.New("unresolved module reference")

// Resolver finds referenced external modules on a list of search paths.
// Resolution validates that a module is fully loadable before a split; it
// never affects migration logic.
type Resolver struct {
	Access      FS
	SearchPaths []string
}

// Locate returns the path of the module image for name, trying each search
// path in order.
func (r *Resolver) Locate(name string) (string, error) {
	for _, dir := range r.SearchPaths {
		candidate := filepath.Join(dir, name+Ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
	}
	return "", fmt.Errorf("%w: %s (searched %d paths)", ErrUnresolved, name, len(r.SearchPaths))
}

// ResolveAll loads every module referenced by mod, concurrently, failing
// fast on the first reference no search path can satisfy. The result maps
// module names to their loaded images.
func (r *Resolver) ResolveAll(ctx context.Context, mod *image.Module) (map[string]*image.Module, error) {
	resolved := make(map[string]*image.Module, len(mod.Refs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, ref := range mod.Refs {
		ref := ref
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, err := r.Locate(ref.Name)
			if err != nil {
				return err
			}
			dep, err := r.Access.Load(path)
			if err != nil {
				return err
			}
			mu.Lock()
			resolved[ref.Name] = dep
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}
