package serializer

import (
	"os"
	"path/filepath"

	"github.com/dekarrin/zil/internal/world"
)

// FileSystem implements ops.System over the local filesystem: SAVE/RESTORE
// read and write whole save documents under a single directory, and
// RESTART reverts the world to the snapshot captured when the FileSystem
// was constructed (i.e. the state immediately after loading source, before
// any turns were played).
type FileSystem struct {
	world   *world.World
	dir     string
	initial Snapshot
}

// NewFileSystem returns a FileSystem saving into dir, capturing w's current
// state as the RESTART target.
func NewFileSystem(w *world.World, dir string) *FileSystem {
	return &FileSystem{world: w, dir: dir, initial: Capture(w)}
}

// Save writes a save document for the current world state under name.
func (fs *FileSystem) Save(name string) error {
	data, err := Encode(fs.world)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(fs.dir, name), data, 0644)
}

// Restore reads name and applies it onto the world in place.
func (fs *FileSystem) Restore(name string) error {
	data, err := os.ReadFile(filepath.Join(fs.dir, name))
	if err != nil {
		return err
	}
	return Decode(data, fs.world)
}

// Restart reverts the world to the state it was in when fs was constructed.
func (fs *FileSystem) Restart() error {
	Apply(fs.world, fs.initial)
	return nil
}

// Verify reports whether the running program image matches what it was
// built from. This interpreter has no separate compiled story file to
// checksum against the running source, so VERIFY always succeeds; see
// DESIGN.md.
func (fs *FileSystem) Verify() bool {
	return true
}
