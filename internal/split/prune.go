package split

import "cleave/internal/image"

// Prune removes top-level type symbols from mod. With keepMatching true,
// symbols satisfying member survive; with keepMatching false, they are the
// ones removed. Nested symbols are never evaluated independently: they
// always follow their declaring type's fate.
func Prune(mod *image.Module, member func(fullName string) bool, keepMatching bool) {
	kept := mod.Types[:0]
	for _, ts := range mod.Types {
		if member(ts.FullName) == keepMatching {
			kept = append(kept, ts)
		}
	}
	// Обнуляем хвост, чтобы вырезанные символы не удерживались слайсом.
	for i := len(kept); i < len(mod.Types); i++ {
		mod.Types[i] = nil
	}
	mod.Types = kept
}
