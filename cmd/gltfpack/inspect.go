package main

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/spf13/cobra"

	"gltfpack/internal/extract"
	"gltfpack/internal/gltfdoc"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <document.gltf>...",
		Short: "Print the structure of glTF documents without extracting",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				doc, err := gltfdoc.LoadAny(path)
				if err != nil {
					return err
				}
				printDocument(doc)
			}
			return nil
		},
	}
}

func pathName(p gltf.TRSProperty) string {
	switch p {
	case gltf.TRSTranslation:
		return "translation"
	case gltf.TRSRotation:
		return "rotation"
	case gltf.TRSScale:
		return "scale"
	case gltf.TRSWeights:
		return "weights"
	}
	return fmt.Sprintf("path(%d)", int(p))
}

func printDocument(d *gltfdoc.Document) {
	doc := d.Raw()
	fmt.Printf("\n=== %s (meshes=%d nodes=%d animations=%d skins=%d) ===\n",
		d.Path, len(doc.Meshes), len(doc.Nodes), len(doc.Animations), len(doc.Skins))

	fmt.Println("--- ACCESSORS ---")
	for i, acc := range doc.Accessors {
		view, offset, length := -1, 0, 0
		if acc.BufferView != nil {
			view = int(*acc.BufferView)
			if view >= 0 && view < len(doc.BufferViews) {
				bv := doc.BufferViews[view]
				offset, length = int(bv.ByteOffset), int(bv.ByteLength)
			}
		}
		fmt.Printf("  [%3d] %-7s %-6s count=%-6d view=%d bytes=[%d:%d]\n",
			i, gltfdoc.ComponentName(acc.ComponentType), gltfdoc.ShapeName(acc.Type),
			int(acc.Count), view, offset, offset+length)
	}

	fmt.Println("--- NODES ---")
	parents, err := extract.BuildParents(doc.Nodes)
	if err != nil {
		fmt.Printf("  hierarchy invalid: %v\n", err)
	}
	for i, node := range doc.Nodes {
		parent := "root"
		if parents != nil && parents[i] != extract.NoParent {
			parent = fmt.Sprintf("%d", parents[i])
		}
		fmt.Printf("  [%3d] %-24q parent=%-4s children=%v\n", i, node.Name, parent, node.Children)
	}

	for ai, anim := range doc.Animations {
		fmt.Printf("--- ANIMATION %d %q (%d channels) ---\n", ai, anim.Name, len(anim.Channels))
		for ci, ch := range anim.Channels {
			node := -1
			if ch.Target.Node != nil {
				node = int(*ch.Target.Node)
			}
			keys := 0
			if int(ch.Sampler) < len(anim.Samplers) {
				s := anim.Samplers[int(ch.Sampler)]
				if int(s.Input) < len(doc.Accessors) {
					keys = int(doc.Accessors[int(s.Input)].Count)
				}
			}
			fmt.Printf("  [%3d] node=%-4d path=%s keyframes=%d\n", ci, node, pathName(ch.Target.Path), keys)
		}
	}

	for si, skin := range doc.Skins {
		fmt.Printf("--- SKIN %d %q (%d joints) ---\n", si, skin.Name, len(skin.Joints))
		fmt.Printf("  joints=%v\n", skin.Joints)
	}
}
