package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Tedfulk/ollama-rename-img/internal/core/domain"
	"github.com/Tedfulk/ollama-rename-img/pkg/ui"
)

var (
	watchDelimiter string
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and rename new WebP files as they arrive",
	Long: `Watch a directory for new WebP files and process them automatically.

Whenever WebP files appear (or are modified), the same convert/classify/
rename pipeline as 'process' runs over the directory. Events are debounced
so a burst of downloads triggers a single batch.

Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchDelimiter, "delimiter", "d", "", "Delimiter between keywords: '_', '-' or ' ' (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	directory := args[0]

	delimiter := resolveDelimiter(watchDelimiter)
	if err := domain.ValidateDelimiter(delimiter); err != nil {
		fmt.Println(ui.FormatError("Invalid delimiter: must be '_', '-' or ' ' (space)"))
		return err
	}

	info, err := os.Stat(directory)
	if err != nil || !info.IsDir() {
		fmt.Println(ui.FormatError("Not a directory: " + directory))
		return fmt.Errorf("not a directory: %s", directory)
	}

	// Create file watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(directory); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	fmt.Println(ui.FormatInfo("Watching: " + directory))
	fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
	fmt.Println()

	// Debounce timer so a burst of file events triggers one batch
	var debounceTimer *time.Timer
	debounceDuration := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	pending := false

	runBatch := func() {
		if !pending {
			return
		}
		pending = false

		stats, err := runPipeline(ctx, directory, delimiter)
		if err != nil {
			fmt.Println(ui.FormatError("Batch failed: " + err.Error()))
			return
		}
		if stats != nil {
			printSummary(stats)
		}
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !domain.IsLegacyImage(event.Name) {
				continue
			}

			appLogger.Debug("Detected %s", event.Name)
			pending = true
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDuration, runBatch)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			appLogger.Warn("Watcher error: %v", err)
		}
	}
}
