// Package extract turns a validated glTF document into the fixed-layout
// binary files the runtime renderer maps directly into memory. All output is
// little-endian and headerless; the file set and record layouts are
// convention shared with the engine.
package extract

import (
	"regexp"

	"gltfpack/internal/gltfdoc"
	"gltfpack/internal/logging"
)

var outputName = regexp.MustCompile(`^(positions|normals|indices|vert_joints|vert_weights|nodes|joint_info|animations_\d+)\.bin$`)

// IsOutputFile reports whether name is one of the files this package emits.
// The watcher uses it to ignore the packer's own writes.
func IsOutputFile(name string) bool {
	return outputName.MatchString(name)
}

// Run stages every output file and flushes them into dir. Extraction is
// strictly sequential and fail-fast: the first violation aborts the run
// before any file exists on disk.
func Run(doc *gltfdoc.Document, dir string) ([]string, error) {
	out := NewOutputSet()

	if err := PackMesh(doc, out); err != nil {
		return nil, err
	}
	if err := PackNodes(doc, out); err != nil {
		return nil, err
	}
	if err := PackAnimation(doc, out); err != nil {
		return nil, err
	}
	if err := PackSkin(doc, out); err != nil {
		return nil, err
	}

	if err := out.Flush(dir); err != nil {
		return nil, err
	}

	files := out.Files()
	logging.Debug("%s: %d files written to %s", doc.Path, len(files), dir)
	return files, nil
}
