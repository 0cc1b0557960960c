package extract

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/qmuntal/gltf"

	"gltfpack/internal/gltfdoc"
	"gltfpack/internal/logging"
)

// Path enum values the runtime decodes from each channel file. The mapping
// is closed: any other target path rejects the document.
const (
	PathTranslation uint32 = 0
	PathRotation    uint32 = 1
	PathScale       uint32 = 2
)

func pathCode(p gltf.TRSProperty) (uint32, error) {
	switch p {
	case gltf.TRSTranslation:
		return PathTranslation, nil
	case gltf.TRSRotation:
		return PathRotation, nil
	case gltf.TRSScale:
		return PathScale, nil
	}
	return 0, fmt.Errorf("extract: %w: target path %d is not translation, rotation, or scale", gltfdoc.ErrUnsupportedAnimationPath, int(p))
}

// channelHeader is the fixed prefix of each animations_<i>.bin file, followed
// by the raw keyframe times and then the raw sampled values.
type channelHeader struct {
	TargetNode    uint32
	Path          uint32
	KeyframeCount uint32
}

// PackAnimation stages one file per channel of the single animation, in
// source declaration order. No interpolation mode is encoded; the runtime
// samples linearly by convention, so anything else the source declares is
// flagged here instead of being silently lost.
func PackAnimation(doc *gltfdoc.Document, out *OutputSet) error {
	anim, err := doc.Animation()
	if err != nil {
		return err
	}

	for i, ch := range anim.Channels {
		if ch.Target.Node == nil {
			return fmt.Errorf("extract: %w: animation channel %d has no target node", gltfdoc.ErrStructuralViolation, i)
		}
		path, err := pathCode(ch.Target.Path)
		if err != nil {
			return fmt.Errorf("animation channel %d: %w", i, err)
		}

		sIdx := int(ch.Sampler)
		if sIdx < 0 || sIdx >= len(anim.Samplers) {
			return fmt.Errorf("extract: %w: animation channel %d references sampler %d of %d", gltfdoc.ErrStructuralViolation, i, sIdx, len(anim.Samplers))
		}
		sampler := anim.Samplers[sIdx]
		if sampler.Interpolation != gltf.InterpolationLinear {
			logging.Warn("animation channel %d declares non-linear interpolation; output is sampled linearly", i)
		}

		times, err := doc.Resolve(int(sampler.Input), gltf.ComponentFloat, gltf.AccessorScalar)
		if err != nil {
			return fmt.Errorf("extract: animation channel %d times: %w", i, err)
		}
		count, err := doc.AccessorCount(int(sampler.Input))
		if err != nil {
			return fmt.Errorf("extract: animation channel %d: %w", i, err)
		}

		valueShape := gltf.AccessorVec3
		if path == PathRotation {
			valueShape = gltf.AccessorVec4
		}
		values, err := doc.Resolve(int(sampler.Output), gltf.ComponentFloat, valueShape)
		if err != nil {
			return fmt.Errorf("extract: animation channel %d values: %w", i, err)
		}

		var buf bytes.Buffer
		hdr := channelHeader{
			TargetNode:    uint32(*ch.Target.Node),
			Path:          path,
			KeyframeCount: uint32(count),
		}
		if err := binary.Write(&buf, binary.LittleEndian, hdr); err != nil {
			return fmt.Errorf("extract: %w: encode channel %d header: %v", gltfdoc.ErrIO, i, err)
		}
		buf.Write(times)
		buf.Write(values)

		out.Add(fmt.Sprintf("animations_%d.bin", i), buf.Bytes())
	}

	return nil
}
