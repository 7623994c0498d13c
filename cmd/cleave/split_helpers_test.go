package main

import (
	"path/filepath"
	"testing"
)

func TestDestPathFor(t *testing.T) {
	cases := []struct {
		src, out, want string
	}{
		{"app.smod", "", "app.leaf.smod"},
		{filepath.Join("build", "app.smod"), "", filepath.Join("build", "app.leaf.smod")},
		{filepath.Join("build", "app.smod"), "dist", filepath.Join("dist", "app.leaf.smod")},
	}
	for _, tc := range cases {
		if got := destPathFor(tc.src, tc.out); got != tc.want {
			t.Fatalf("destPathFor(%q, %q) = %q, want %q", tc.src, tc.out, got, tc.want)
		}
	}
}

func TestReadColorMode(t *testing.T) {
	for value, want := range map[string]colorMode{
		"":     colorModeAuto,
		"auto": colorModeAuto,
		"ON":   colorModeOn,
		"off":  colorModeOff,
	} {
		got, err := readColorMode(value)
		if err != nil {
			t.Fatalf("readColorMode(%q): %v", value, err)
		}
		if got != want {
			t.Fatalf("readColorMode(%q) = %q, want %q", value, got, want)
		}
	}
	if _, err := readColorMode("rainbow"); err == nil {
		t.Fatalf("invalid color mode accepted")
	}
}
