package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gltfpack/internal/config"
	"gltfpack/internal/extract"
	"gltfpack/internal/gltfdoc"
	"gltfpack/internal/watch"
)

func newExtractCmd() *cobra.Command {
	var (
		flagDoc   string
		flagOut   string
		flagWatch bool
	)

	cmd := &cobra.Command{
		Use:   "extract [asset-dir]",
		Short: "Extract one asset into its runtime binary files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var assetDir string
			if len(args) == 1 {
				assetDir = args[0]
			}
			cfg, err := loadConfig(config.Flags{
				AssetDir:  assetDir,
				Document:  flagDoc,
				OutputDir: flagOut,
			})
			if err != nil {
				return err
			}
			if cfg.Document == "" {
				return fmt.Errorf("no .gltf document found in %s", cfg.AssetDir)
			}

			doc, err := gltfdoc.Load(cfg.Document)
			if err != nil {
				return err
			}
			files, err := extract.Run(doc, cfg.OutputDir)
			if err != nil {
				return err
			}

			fmt.Printf("%s → %d files in %s\n", cfg.Document, len(files), cfg.OutputDir)
			for _, f := range files {
				fmt.Printf("  %s\n", f)
			}

			if flagWatch {
				ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				if err := watch.Run(ctx, cfg.Document, cfg.OutputDir); err != nil && ctx.Err() == nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagDoc, "doc", "", "document file (default: first .gltf in asset dir)")
	cmd.Flags().StringVar(&flagOut, "out", "", "output directory (default: asset dir)")
	cmd.Flags().BoolVar(&flagWatch, "watch", false, "re-extract when the document or buffers change")

	return cmd
}
