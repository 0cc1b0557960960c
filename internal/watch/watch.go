// Package watch re-runs extraction whenever the document or its buffer files
// change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"gltfpack/internal/extract"
	"gltfpack/internal/gltfdoc"
	"gltfpack/internal/logging"
)

// debounce collapses the burst of write events editors and exporters emit
// into a single re-extraction.
const debounce = 200 * time.Millisecond

// Run watches the directory of docPath and re-extracts on every change to
// the document or a sibling .bin buffer. A failed re-run is logged and
// watching continues; the previous outputs stay in place untouched. Returns
// when ctx is cancelled.
func Run(ctx context.Context, docPath, outDir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(docPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch: add %s: %w", dir, err)
	}
	logging.Info("watching %s", dir)

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !relevant(docPath, event.Name) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("watch: %v", err)
		case <-fire:
			rerun(docPath, outDir)
		}
	}
}

func relevant(docPath, changed string) bool {
	if filepath.Clean(changed) == filepath.Clean(docPath) {
		return true
	}
	base := filepath.Base(changed)
	return strings.EqualFold(filepath.Ext(changed), ".bin") &&
		!strings.Contains(base, ".tmp-") &&
		!extract.IsOutputFile(base)
}

func rerun(docPath, outDir string) {
	doc, err := gltfdoc.Load(docPath)
	if err != nil {
		logging.Error("reload failed: %v", err)
		return
	}
	files, err := extract.Run(doc, outDir)
	if err != nil {
		logging.Error("extraction failed: %v", err)
		return
	}
	logging.Info("re-extracted %d files", len(files))
}
