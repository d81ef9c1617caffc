package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/listenloom/docquery/internal/logger"
)

// Writes often arrive as bursts of events; ingestion waits until a
// file has been quiet for this long.
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and ingest new or changed documents",
	Long: `Watches the directory (and its subdirectories) for supported
document files and uploads each one when it is created or modified.
Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errNoProviders
	}

	root := args[0]
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch target %s is not a directory", root)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchTree(watcher, root); err != nil {
		return err
	}

	cmd.Printf("Watching %s (press Ctrl+C to stop)\n", root)
	return watchLoop(cmd, watcher)
}

// addWatchTree registers the directory and every subdirectory.
// fsnotify watches are not recursive.
func addWatchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}
		}
		return nil
	})
}

func watchLoop(cmd *cobra.Command, watcher *fsnotify.Watcher) error {
	ctx := cmd.Context()

	var mu sync.Mutex
	pending := make(map[string]*time.Timer)

	schedule := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		if timer, ok := pending[path]; ok {
			timer.Reset(watchDebounce)
			return
		}
		pending[path] = time.AfterFunc(watchDebounce, func() {
			mu.Lock()
			delete(pending, path)
			mu.Unlock()
			ingestWatched(ctx, cmd, path)
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				// New subdirectories need their own watch.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addWatchTree(watcher, event.Name); err != nil {
						logger.Warn("Failed to watch new directory %s: %v", event.Name, err)
					}
					continue
				}
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !watchedExtension(event.Name) {
				continue
			}
			schedule(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

func watchedExtension(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return false
	}
	return extractorRegistry.Supported(ext)
}

func ingestWatched(ctx context.Context, cmd *cobra.Command, path string) {
	if ctx.Err() != nil {
		return
	}
	receipt, err := libraryService.Upload(ctx, path, cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Failed to ingest %s: %v\n", path, err)
		return
	}
	cmd.Printf("Ingested %s (%d chunks)\n", receipt.DocumentName, receipt.ChunksCreated)
}
