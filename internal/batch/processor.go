// Package batch extracts many assets through a worker pool. Each individual
// extraction stays strictly sequential; parallelism is only across
// independent asset directories, whose outputs never overlap.
package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gltfpack/internal/extract"
	"gltfpack/internal/gltfdoc"
)

// Config holds the shared settings for a batch run.
type Config struct {
	// Root is walked recursively for *.gltf documents.
	Root string
	// OutputDir mirrors the document's directory structure when set;
	// otherwise outputs land next to each document.
	OutputDir string
	Workers   int
}

// Result holds the outcome of extracting one document.
type Result struct {
	Document string   `json:"document"`
	Files    []string `json:"files,omitempty"`
	Success  bool     `json:"success"`
	Error    string   `json:"error,omitempty"`
}

// Discover walks root and returns every .gltf document path, sorted by walk
// order.
func Discover(root string) ([]string, error) {
	var docs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".gltf") {
			docs = append(docs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: walk %s: %w", root, err)
	}
	return docs, nil
}

// Run extracts all documents using a worker pool and reports per-document
// results in input order.
func Run(cfg Config, docs []string) []Result {
	total := len(docs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f assets/sec\n", p, total, rate)
				}
			}
		}
	}()

	docChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range docChan {
				results[idx] = processDocument(cfg, docs[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range docs {
		docChan <- i
	}
	close(docChan)

	wg.Wait()
	close(done)

	return results
}

func processDocument(cfg Config, docPath string) Result {
	doc, err := gltfdoc.Load(docPath)
	if err != nil {
		return Result{Document: docPath, Error: err.Error()}
	}

	outDir, err := outputDir(cfg, docPath)
	if err != nil {
		return Result{Document: docPath, Error: err.Error()}
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return Result{Document: docPath, Error: err.Error()}
	}

	files, err := extract.Run(doc, outDir)
	if err != nil {
		return Result{Document: docPath, Error: err.Error()}
	}

	return Result{Document: docPath, Files: files, Success: true}
}

func outputDir(cfg Config, docPath string) (string, error) {
	if cfg.OutputDir == "" {
		return filepath.Dir(docPath), nil
	}
	rel, err := filepath.Rel(cfg.Root, filepath.Dir(docPath))
	if err != nil {
		return "", fmt.Errorf("batch: relativize %s: %w", docPath, err)
	}
	return filepath.Join(cfg.OutputDir, rel), nil
}
