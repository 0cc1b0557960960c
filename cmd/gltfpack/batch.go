package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"gltfpack/internal/batch"
	"gltfpack/internal/config"
)

func newBatchCmd() *cobra.Command {
	var (
		flagOut     string
		flagWorkers int
	)

	cmd := &cobra.Command{
		Use:   "batch <root-dir>",
		Short: "Extract every glTF asset under a directory tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(config.Flags{
				OutputDir: flagOut,
				Workers:   flagWorkers,
			})
			if err != nil {
				return err
			}

			docs, err := batch.Discover(args[0])
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Println("No documents to extract.")
				return nil
			}

			outputDir := ""
			if flagOut != "" {
				outputDir = cfg.OutputDir
			}

			fmt.Printf("Documents: %d, Workers: %d\n", len(docs), cfg.Workers)
			fmt.Println("------------------------------------------------------------")
			start := time.Now()

			results := batch.Run(batch.Config{
				Root:      args[0],
				OutputDir: outputDir,
				Workers:   cfg.Workers,
			}, docs)

			fmt.Println("------------------------------------------------------------")
			fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

			success, failed := 0, 0
			for _, r := range results {
				if r.Success {
					success++
				} else {
					failed++
				}
			}
			fmt.Printf("Extracted: %d/%d\n", success, len(docs))

			if failed > 0 {
				fmt.Printf("\nFailed (%d):\n", failed)
				for _, r := range results {
					if !r.Success {
						fmt.Printf("  %s: %s\n", r.Document, r.Error)
					}
				}
			}

			manifestDir := outputDir
			if manifestDir == "" {
				manifestDir = args[0]
			}
			os.MkdirAll(manifestDir, 0755)
			manifestPath := filepath.Join(manifestDir, "manifest.json")
			if err := batch.WriteManifest(manifestPath, results); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
			} else {
				fmt.Printf("Manifest: %s\n", manifestPath)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed", failed, len(docs))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagOut, "out", "", "mirror outputs under this directory (default: next to each document)")
	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "worker goroutines (default: NumCPU)")

	return cmd
}
