package split

import (
	"errors"
	"fmt"
	"sort"

	"cleave/internal/depgraph"
	"cleave/internal/image"
)

// DestSuffix is appended to the source module name to derive the
// destination module name. The version is copied verbatim.
const DestSuffix = ".leaf"

// ErrDestinationExists aborts a split before any mutation when the
// destination path is already occupied.
var ErrDestinationExists = errors.New("destination module already exists")

// Access is the module I/O collaborator. Load must return a fully
// independent object graph on every call; Persist is all-or-nothing per
// module.
type Access interface {
	Load(path string) (*image.Module, error)
	Persist(mod *image.Module, path string) error
	Exists(path string) bool
}

// Options configures one split invocation. Both output paths are chosen by
// the caller; ResidualPath may equal the source path.
type Options struct {
	Threshold    int
	DestPath     string
	ResidualPath string
}

// Result describes what a split did (or why it was a no-op).
type Result struct {
	Source       image.ModuleIdentity
	Dest         image.ModuleIdentity
	Threshold    int
	Depths       depgraph.DepthTable
	Moved        []string // sorted full names relocated to the destination
	Kept         []string // sorted top-level full names left in the residual
	NoOp         bool     // true when nothing satisfied the threshold
	DestPath     string
	ResidualPath string
}

// Analyze builds the dependency graph of mod and computes every type's
// depth.
func Analyze(mod *image.Module) depgraph.DepthTable {
	return depgraph.Build(mod).Depths()
}

// DestIdentity derives the destination module identity from the source's.
func DestIdentity(src image.ModuleIdentity) image.ModuleIdentity {
	return image.ModuleIdentity{Name: src.Name + DestSuffix, Version: src.Version}
}

// Pipeline sequences a whole split: analyze, partition, prune twice,
// migrate, persist. It never touches persistent storage itself beyond the
// Access collaborator; backup and rollback belong to the caller.
type Pipeline struct {
	Access Access
}

// Split runs the full pipeline over the module at srcPath. On a no-op
// selection it returns a Result with NoOp set and writes nothing.
func (p *Pipeline) Split(srcPath string, opts Options) (*Result, error) {
	if opts.Threshold < 1 {
		return nil, fmt.Errorf("depth threshold must be at least 1, got %d", opts.Threshold)
	}
	if opts.DestPath == "" || opts.ResidualPath == "" {
		return nil, fmt.Errorf("destination and residual paths are required")
	}
	if p.Access.Exists(opts.DestPath) {
		return nil, fmt.Errorf("%w: %s", ErrDestinationExists, opts.DestPath)
	}

	residual, err := p.Access.Load(srcPath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", srcPath, err)
	}

	depths := Analyze(residual)
	moved := SelectMoveSet(depths, opts.Threshold)

	result := &Result{
		Source:       residual.Identity,
		Dest:         DestIdentity(residual.Identity),
		Threshold:    opts.Threshold,
		Depths:       depths,
		Moved:        moved.Names(),
		DestPath:     opts.DestPath,
		ResidualPath: opts.ResidualPath,
	}
	if len(moved) == 0 {
		result.NoOp = true
		return result, nil
	}

	// Второй Load даёт независимый граф объектов: destination и residual
	// не делят ни одной ссылки.
	dest, err := p.Access.Load(srcPath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", srcPath, err)
	}
	Prune(dest, moved.Contains, true)
	dest.Identity = result.Dest

	Prune(residual, moved.Contains, false)
	residual.AddRef(dest.Identity)
	MigrateReferences(residual, moved, dest.Identity)

	for _, ts := range residual.Types {
		result.Kept = append(result.Kept, ts.FullName)
	}
	sort.Strings(result.Kept)

	if err := p.Access.Persist(dest, opts.DestPath); err != nil {
		return nil, fmt.Errorf("persist destination %s: %w", opts.DestPath, err)
	}
	if err := p.Access.Persist(residual, opts.ResidualPath); err != nil {
		return nil, fmt.Errorf("persist residual %s: %w", opts.ResidualPath, err)
	}
	return result, nil
}
