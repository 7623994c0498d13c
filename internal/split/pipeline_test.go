package split

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"cleave/internal/image"
)

// memAccess keeps module images in memory. Load round-trips through
// msgpack so every call yields a fully independent object graph, the same
// guarantee the filesystem collaborator gives.
type memAccess struct {
	files map[string][]byte
}

func newMemAccess() *memAccess {
	return &memAccess{files: make(map[string][]byte)}
}

func (a *memAccess) put(path string, mod *image.Module) {
	data, err := msgpack.Marshal(mod)
	if err != nil {
		panic(err)
	}
	a.files[path] = data
}

func (a *memAccess) Load(path string) (*image.Module, error) {
	data, ok := a.files[path]
	if !ok {
		return nil, fmt.Errorf("no module at %s", path)
	}
	var mod image.Module
	if err := msgpack.Unmarshal(data, &mod); err != nil {
		return nil, err
	}
	return &mod, nil
}

func (a *memAccess) Persist(mod *image.Module, path string) error {
	a.put(path, mod)
	return nil
}

func (a *memAccess) Exists(path string) bool {
	_, ok := a.files[path]
	return ok
}

func (a *memAccess) load(t *testing.T, path string) *image.Module {
	t.Helper()
	mod, err := a.Load(path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	return mod
}

// chainModule builds app@1.0 with A (leaf), B (field of A), C (field of B).
func chainModule() *image.Module {
	return &image.Module{
		Identity: appID,
		Types: []*image.TypeSymbol{
			{FullName: "N.A"},
			{
				FullName: "N.B",
				Fields:   []image.Field{{Name: "a", Type: local("N.A")}},
			},
			{
				FullName: "N.C",
				Fields:   []image.Field{{Name: "b", Type: local("N.B")}},
			},
		},
	}
}

func TestSplitChainThresholdOne(t *testing.T) {
	access := newMemAccess()
	access.put("app.smod", chainModule())

	p := Pipeline{Access: access}
	res, err := p.Split("app.smod", Options{
		Threshold:    1,
		DestPath:     "app.leaf.smod",
		ResidualPath: "app.smod",
	})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if res.NoOp {
		t.Fatalf("unexpected no-op")
	}
	if want := []string{"N.A"}; !slices.Equal(res.Moved, want) {
		t.Fatalf("moved = %v, want %v", res.Moved, want)
	}

	dest := access.load(t, "app.leaf.smod")
	if dest.Identity != leafID {
		t.Fatalf("destination identity = %v, want %v", dest.Identity, leafID)
	}
	if len(dest.Types) != 1 || dest.Types[0].FullName != "N.A" {
		t.Fatalf("destination types = %v, want [N.A]", typeNames(dest))
	}

	residual := access.load(t, "app.smod")
	if want := []string{"N.B", "N.C"}; !slices.Equal(typeNames(residual), want) {
		t.Fatalf("residual types = %v, want %v", typeNames(residual), want)
	}
	if !slices.Contains(residual.Refs, leafID) {
		t.Fatalf("residual refs = %v, missing %v", residual.Refs, leafID)
	}

	b, _ := residual.TopLevel("N.B")
	if got := b.Fields[0].Type.Scope; got != leafID {
		t.Fatalf("B.a scope = %v, want %v", got, leafID)
	}
	c, _ := residual.TopLevel("N.C")
	if got := c.Fields[0].Type.Scope; got != appID {
		t.Fatalf("C.b scope = %v, want %v (B did not move)", got, appID)
	}
}

func TestSplitPartitionsTypeSetExactly(t *testing.T) {
	access := newMemAccess()
	access.put("app.smod", chainModule())

	p := Pipeline{Access: access}
	if _, err := p.Split("app.smod", Options{
		Threshold:    2,
		DestPath:     "app.leaf.smod",
		ResidualPath: "app.smod",
	}); err != nil {
		t.Fatalf("split: %v", err)
	}

	dest := access.load(t, "app.leaf.smod")
	residual := access.load(t, "app.smod")

	seen := make(map[string]int)
	for _, name := range typeNames(dest) {
		seen[name]++
	}
	for _, name := range typeNames(residual) {
		seen[name]++
	}
	for _, name := range []string{"N.A", "N.B", "N.C"} {
		if seen[name] != 1 {
			t.Fatalf("type %s appears %d times across the partition, want exactly 1", name, seen[name])
		}
	}
	if len(seen) != 3 {
		t.Fatalf("partition has %d names, want 3", len(seen))
	}
}

func TestSplitMoveEverything(t *testing.T) {
	access := newMemAccess()
	access.put("app.smod", chainModule())

	p := Pipeline{Access: access}
	res, err := p.Split("app.smod", Options{
		Threshold:    10,
		DestPath:     "app.leaf.smod",
		ResidualPath: "app.smod",
	})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(res.Moved) != 3 {
		t.Fatalf("moved = %v, want all three types", res.Moved)
	}

	residual := access.load(t, "app.smod")
	if len(residual.Types) != 0 {
		t.Fatalf("residual types = %v, want none", typeNames(residual))
	}
	// Ссылка на destination остаётся, даже если ей никто не пользуется.
	if !slices.Contains(residual.Refs, leafID) {
		t.Fatalf("residual refs = %v, missing %v", residual.Refs, leafID)
	}
}

func TestSplitEmptySelectionIsNoOp(t *testing.T) {
	access := newMemAccess()
	access.put("app.smod", &image.Module{Identity: appID})

	p := Pipeline{Access: access}
	res, err := p.Split("app.smod", Options{
		Threshold:    1,
		DestPath:     "app.leaf.smod",
		ResidualPath: "app.smod",
	})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if !res.NoOp {
		t.Fatalf("want no-op result")
	}
	if access.Exists("app.leaf.smod") {
		t.Fatalf("no-op split produced a destination file")
	}
}

func TestSplitRejectsThresholdBelowOne(t *testing.T) {
	p := Pipeline{Access: newMemAccess()}
	if _, err := p.Split("app.smod", Options{
		Threshold:    0,
		DestPath:     "app.leaf.smod",
		ResidualPath: "app.smod",
	}); err == nil {
		t.Fatalf("threshold 0 accepted, want validation error")
	}
}

func TestSplitRefusesExistingDestination(t *testing.T) {
	access := newMemAccess()
	access.put("app.smod", chainModule())
	access.put("app.leaf.smod", &image.Module{Identity: leafID})

	p := Pipeline{Access: access}
	_, err := p.Split("app.smod", Options{
		Threshold:    1,
		DestPath:     "app.leaf.smod",
		ResidualPath: "app.smod",
	})
	if !errors.Is(err, ErrDestinationExists) {
		t.Fatalf("err = %v, want ErrDestinationExists", err)
	}
}
