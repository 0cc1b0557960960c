package extract

import (
	"fmt"
	"os"
	"path/filepath"

	"gltfpack/internal/gltfdoc"
)

// OutputSet stages fully validated file payloads in memory. Nothing touches
// the filesystem until Flush, so a run that fails validation leaves no output
// files behind.
type OutputSet struct {
	names []string
	blobs map[string][]byte
}

func NewOutputSet() *OutputSet {
	return &OutputSet{blobs: make(map[string][]byte)}
}

// Add stages one output file. Order of first Add is the flush order.
func (s *OutputSet) Add(name string, data []byte) {
	if _, ok := s.blobs[name]; !ok {
		s.names = append(s.names, name)
	}
	s.blobs[name] = data
}

// Files returns the staged file names in Add order.
func (s *OutputSet) Files() []string {
	return append([]string(nil), s.names...)
}

// Bytes returns the staged payload for name, or nil.
func (s *OutputSet) Bytes(name string) []byte {
	return s.blobs[name]
}

// Flush writes every staged payload into dir. Each file is written to a temp
// name and renamed into place, so an aborted process never leaves a partial
// file under its final name.
func (s *OutputSet) Flush(dir string) error {
	for _, name := range s.names {
		if err := writeAtomic(dir, name, s.blobs[name]); err != nil {
			return err
		}
	}
	return nil
}

func writeAtomic(dir, name string, data []byte) error {
	tmp, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("extract: %w: create temp for %s: %v", gltfdoc.ErrIO, name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("extract: %w: write %s: %v", gltfdoc.ErrIO, name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("extract: %w: close %s: %v", gltfdoc.ErrIO, name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("extract: %w: rename %s: %v", gltfdoc.ErrIO, name, err)
	}
	return nil
}
