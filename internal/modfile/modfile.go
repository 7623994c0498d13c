// Package modfile reads and writes .smod module images and resolves
// referenced external modules from configured search paths. The split core
// consumes it through the split.Access interface and never does I/O itself.
package modfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"cleave/internal/image"
)

// Ext is the module image file extension.
const Ext = ".smod"

// Current schema version - increment when the payload format changes.
const schemaVersion uint16 = 1

// ErrSchema rejects images written with an unknown schema version.
var ErrSchema = errors.New("unsupported module schema version")

// payload is the on-disk form: schema version first, so unknown formats
// fail before the module is decoded.
type payload struct {
	Schema uint16
	Module *image.Module
}

// FS is the filesystem-backed module access collaborator.
type FS struct{}

// Load reads and decodes the module image at path. Every call returns a
// fully independent object graph.
func (FS) Load(path string) (*image.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	var p payload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", path, err)
	}
	if p.Schema != schemaVersion {
		return nil, fmt.Errorf("%w: %s has schema %d, want %d", ErrSchema, path, p.Schema, schemaVersion)
	}
	if p.Module == nil {
		return nil, fmt.Errorf("%s: empty module payload", path)
	}
	return p.Module, nil
}

// Persist encodes mod and writes it to path atomically: the bytes go to a
// temp file in the target directory, then a rename replaces the target.
func (FS) Persist(mod *image.Module, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload{Schema: schemaVersion, Module: mod}); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: encode: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmpName, path)
}

// Exists reports whether a module image is present at path.
func (FS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
