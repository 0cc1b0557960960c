// Package gltfdoc loads a glTF document and resolves accessor data for the
// runtime packer. Only a fixed subset is accepted: one mesh with one
// primitive, one animation, and at least one skin. Anything outside that
// subset fails at the load boundary, not mid-extraction.
package gltfdoc

import (
	"fmt"

	"github.com/qmuntal/gltf"

	"gltfpack/internal/logging"
)

// Document wraps a parsed glTF document whose external buffers have been
// resolved into memory. Read-only for the duration of one extraction run.
type Document struct {
	Path string

	doc *gltf.Document
}

// Load parses the document at path, resolving sibling buffer files by
// relative URI, and validates the structural subset up front.
func Load(path string) (*Document, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltfdoc: open %s: %w: %v", path, ErrIO, err)
	}

	d := &Document{Path: path, doc: doc}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// FromDocument wraps an already-parsed document. Buffers must have their Data
// populated. Used by tests and by callers that decode from memory.
func FromDocument(doc *gltf.Document) (*Document, error) {
	d := &Document{Path: "(in memory)", doc: doc}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadAny parses the document without subset validation. Inspection tooling
// uses it to report on documents the packer would reject.
func LoadAny(path string) (*Document, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltfdoc: open %s: %w: %v", path, ErrIO, err)
	}
	return &Document{Path: path, doc: doc}, nil
}

// Raw exposes the underlying parsed document for read-only reporting.
func (d *Document) Raw() *gltf.Document {
	return d.doc
}

// validate enforces every structural precondition before any extractor runs,
// so a bad document never produces output files.
func (d *Document) validate() error {
	if _, err := d.Primitive(); err != nil {
		return err
	}
	if _, err := d.Animation(); err != nil {
		return err
	}
	if _, err := d.Skin(); err != nil {
		return err
	}
	return nil
}

// Primitive returns the document's single mesh primitive.
func (d *Document) Primitive() (*gltf.Primitive, error) {
	if n := len(d.doc.Meshes); n != 1 {
		return nil, fmt.Errorf("gltfdoc: %w: expected exactly 1 mesh, found %d", ErrStructuralViolation, n)
	}
	mesh := d.doc.Meshes[0]
	if n := len(mesh.Primitives); n != 1 {
		return nil, fmt.Errorf("gltfdoc: %w: expected exactly 1 primitive, found %d", ErrStructuralViolation, n)
	}
	return mesh.Primitives[0], nil
}

// Animation returns the document's single animation.
func (d *Document) Animation() (*gltf.Animation, error) {
	if n := len(d.doc.Animations); n != 1 {
		return nil, fmt.Errorf("gltfdoc: %w: expected exactly 1 animation, found %d", ErrStructuralViolation, n)
	}
	return d.doc.Animations[0], nil
}

// Skin returns the first skin. A document with extra skins is accepted with a
// warning; rejecting it would refuse assets the engine can still consume.
func (d *Document) Skin() (*gltf.Skin, error) {
	if len(d.doc.Skins) == 0 {
		return nil, fmt.Errorf("gltfdoc: %w: document has no skin", ErrStructuralViolation)
	}
	if extra := len(d.doc.Skins) - 1; extra > 0 {
		logging.Warn("%s: %d extra skin(s) ignored, using skin 0", d.Path, extra)
	}
	return d.doc.Skins[0], nil
}

// Nodes returns the node array in source order. Node identity is the array
// position; that position is the cross-file index in every output.
func (d *Document) Nodes() []*gltf.Node {
	return d.doc.Nodes
}

// AccessorCount returns the element count an accessor declares.
func (d *Document) AccessorCount(idx int) (int, error) {
	acc, err := d.accessor(idx)
	if err != nil {
		return 0, err
	}
	return int(acc.Count), nil
}

func (d *Document) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(d.doc.Accessors) {
		return nil, fmt.Errorf("gltfdoc: %w: accessor %d out of range (have %d)", ErrStructuralViolation, idx, len(d.doc.Accessors))
	}
	return d.doc.Accessors[idx], nil
}
