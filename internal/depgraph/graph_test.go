package depgraph

import (
	"slices"
	"testing"

	"cleave/internal/image"
)

var (
	appScope = image.ModuleIdentity{Name: "app", Version: "1.0"}
	sysScope = image.ModuleIdentity{Name: "sys", Version: "4.0"}
)

func local(name string) *image.TypeRef {
	return image.Simple(name, appScope)
}

func TestBuildCollectsStructuralSites(t *testing.T) {
	mod := &image.Module{
		Identity: appScope,
		Types: []*image.TypeSymbol{
			{FullName: "N.A"},
			{FullName: "N.List"},
			{
				FullName:   "N.B",
				Base:       local("N.A"),
				Interfaces: []*image.TypeRef{image.Simple("sys.IDisposable", sysScope)},
				Fields: []image.Field{
					{Name: "items", Type: image.ArrayOf(local("N.A"))},
					{Name: "name", Type: image.Simple("sys.String", sysScope)},
				},
				Properties: []image.Property{
					{Name: "Self", Type: local("N.B")}, // self-ref, must be dropped
				},
				Methods: []image.Method{
					{
						Name:   "Map",
						Return: image.GenericInstOf(local("N.List"), local("N.A")),
						Params: []*image.TypeRef{image.ByRefOf(local("N.C"))},
						Locals: []*image.TypeRef{image.PointerTo(local("N.A"))},
					},
				},
			},
			{
				FullName: "N.C",
				GenericParams: []image.GenericParam{
					{Name: "T", Constraints: []*image.TypeRef{local("N.A")}},
				},
				Attrs: []*image.AttrRecord{
					{Type: local("N.Marker")},
				},
			},
			{FullName: "N.Marker"},
		},
	}

	g := Build(mod)

	if got := g.DepsOf("N.A"); len(got) != 0 {
		t.Fatalf("deps(N.A) = %v, want empty", got)
	}
	wantB := []string{"N.A", "N.C", "N.List"}
	if got := g.DepsOf("N.B"); !slices.Equal(got, wantB) {
		t.Fatalf("deps(N.B) = %v, want %v", got, wantB)
	}
	wantC := []string{"N.A", "N.Marker"}
	if got := g.DepsOf("N.C"); !slices.Equal(got, wantC) {
		t.Fatalf("deps(N.C) = %v, want %v", got, wantC)
	}
}

func TestBuildCollectsInstructionOperands(t *testing.T) {
	genericCall := &image.MemberRef{
		Kind: image.MemberGenericInst,
		Elem: &image.MemberRef{
			Kind:          image.MemberMethod,
			Name:          "Create",
			DeclaringType: local("N.Factory"),
			Return:        local("N.Product"),
		},
		GenericArgs: []*image.TypeRef{local("N.Arg")},
	}
	fieldLoad := &image.MemberRef{
		Kind:          image.MemberField,
		Name:          "count",
		DeclaringType: local("N.Holder"),
		FieldType:     local("N.Counter"),
	}

	mod := &image.Module{
		Identity: appScope,
		Types: []*image.TypeSymbol{
			{FullName: "N.Factory"},
			{FullName: "N.Product"},
			{FullName: "N.Arg"},
			{FullName: "N.Holder"},
			{FullName: "N.Counter"},
			{FullName: "N.Token"},
			{
				FullName: "N.Caller",
				Methods: []image.Method{
					{
						Name: "run",
						Body: []image.Instruction{
							image.TypeInstr(image.OpLoadToken, local("N.Token")),
							image.MemberInstr(image.OpCall, genericCall),
							image.MemberInstr(image.OpLoadField, fieldLoad),
						},
					},
				},
			},
		},
	}

	g := Build(mod)

	want := []string{"N.Arg", "N.Counter", "N.Factory", "N.Holder", "N.Product", "N.Token"}
	if got := g.DepsOf("N.Caller"); !slices.Equal(got, want) {
		t.Fatalf("deps(N.Caller) = %v, want %v", got, want)
	}
}

func TestBuildRecordsNestedTypes(t *testing.T) {
	mod := &image.Module{
		Identity: appScope,
		Types: []*image.TypeSymbol{
			{FullName: "N.A"},
			{
				FullName: "N.Outer",
				Nested: []*image.TypeSymbol{
					{
						FullName: "N.Outer/Inner",
						Fields:   []image.Field{{Name: "a", Type: local("N.A")}},
					},
				},
			},
		},
	}

	g := Build(mod)

	wantOuter := []string{"N.Outer/Inner"}
	if got := g.DepsOf("N.Outer"); !slices.Equal(got, wantOuter) {
		t.Fatalf("deps(N.Outer) = %v, want %v", got, wantOuter)
	}
	wantInner := []string{"N.A"}
	if got := g.DepsOf("N.Outer/Inner"); !slices.Equal(got, wantInner) {
		t.Fatalf("deps(N.Outer/Inner) = %v, want %v", got, wantInner)
	}
	if _, ok := g.Index.NameToID["N.Outer/Inner"]; !ok {
		t.Fatalf("nested type missing from index")
	}
}
