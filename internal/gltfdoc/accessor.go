package gltfdoc

import (
	"fmt"

	"github.com/qmuntal/gltf"
)

// Resolve validates that accessor idx declares exactly the expected component
// and shape type and returns the byte range its bufferView denotes. The
// returned slice length always equals the bufferView's declared byteLength.
// No caching; every call re-derives the range from the document.
func (d *Document) Resolve(idx int, wantComp gltf.ComponentType, wantShape gltf.AccessorType) ([]byte, error) {
	acc, err := d.accessor(idx)
	if err != nil {
		return nil, err
	}

	if acc.ComponentType != wantComp || acc.Type != wantShape {
		return nil, fmt.Errorf("gltfdoc: accessor %d: %w: expected %s %s, found %s %s",
			idx, ErrTypeMismatch,
			ComponentName(wantComp), ShapeName(wantShape),
			ComponentName(acc.ComponentType), ShapeName(acc.Type))
	}

	if acc.BufferView == nil {
		return nil, fmt.Errorf("gltfdoc: accessor %d: %w: no bufferView (sparse accessors unsupported)", idx, ErrStructuralViolation)
	}
	// The output layout is a raw dump of the whole view, so an accessor that
	// starts partway into its view or an interleaved view cannot be honored.
	// Reject loudly instead of dumping misaligned bytes.
	if acc.ByteOffset != 0 {
		return nil, fmt.Errorf("gltfdoc: accessor %d: %w: nonzero accessor byteOffset %d unsupported", idx, ErrTypeMismatch, int(acc.ByteOffset))
	}

	bvIdx := int(*acc.BufferView)
	if bvIdx < 0 || bvIdx >= len(d.doc.BufferViews) {
		return nil, fmt.Errorf("gltfdoc: accessor %d: %w: bufferView %d out of range (have %d)", idx, ErrStructuralViolation, bvIdx, len(d.doc.BufferViews))
	}
	bv := d.doc.BufferViews[bvIdx]
	if bv.ByteStride != 0 {
		return nil, fmt.Errorf("gltfdoc: accessor %d: %w: interleaved bufferView %d (byteStride %d) unsupported", idx, ErrTypeMismatch, bvIdx, int(bv.ByteStride))
	}

	bufIdx := int(bv.Buffer)
	if bufIdx < 0 || bufIdx >= len(d.doc.Buffers) {
		return nil, fmt.Errorf("gltfdoc: accessor %d: %w: buffer %d out of range (have %d)", idx, ErrStructuralViolation, bufIdx, len(d.doc.Buffers))
	}
	buf := d.doc.Buffers[bufIdx]

	offset, length := int(bv.ByteOffset), int(bv.ByteLength)
	if offset+length > len(buf.Data) {
		return nil, fmt.Errorf("gltfdoc: accessor %d: %w: bufferView %d spans [%d:%d] but buffer %d holds %d bytes",
			idx, ErrIO, bvIdx, offset, offset+length, bufIdx, len(buf.Data))
	}

	return buf.Data[offset : offset+length], nil
}

// ComponentName returns the numeric kind an accessor component type denotes.
func ComponentName(c gltf.ComponentType) string {
	switch c {
	case gltf.ComponentFloat:
		return "float32"
	case gltf.ComponentByte:
		return "int8"
	case gltf.ComponentUbyte:
		return "uint8"
	case gltf.ComponentShort:
		return "int16"
	case gltf.ComponentUshort:
		return "uint16"
	case gltf.ComponentUint:
		return "uint32"
	}
	return fmt.Sprintf("component(%d)", int(c))
}

// ShapeName returns the glTF name of an accessor shape type.
func ShapeName(t gltf.AccessorType) string {
	switch t {
	case gltf.AccessorScalar:
		return "SCALAR"
	case gltf.AccessorVec2:
		return "VEC2"
	case gltf.AccessorVec3:
		return "VEC3"
	case gltf.AccessorVec4:
		return "VEC4"
	case gltf.AccessorMat2:
		return "MAT2"
	case gltf.AccessorMat3:
		return "MAT3"
	case gltf.AccessorMat4:
		return "MAT4"
	}
	return fmt.Sprintf("type(%d)", int(t))
}
