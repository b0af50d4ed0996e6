package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sdkwire/sdkwire/internal/errors"
	"github.com/sdkwire/sdkwire/internal/utils"
)

// debounceWindow coalesces the burst of filesystem events an external
// analyzer produces while rewriting its snapshot
const debounceWindow = 300 * time.Millisecond

// Watch regenerates whenever the snapshot file changes. Failures of an
// individual pass are reported and watching continues; only a broken
// watcher or context cancellation ends the loop.
func Watch(ctx context.Context, cfg *Config, diag *utils.DiagnosticSystem, reporter *Reporter) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.FileSystemErrorCode, "filesystem watcher could not be started", err)
	}
	defer watcher.Close()

	// watch the directory: editors and analyzers replace files by rename,
	// which drops a watch placed on the file itself
	snapshotDir := filepath.Dir(cfg.Snapshot)
	snapshotBase := filepath.Base(cfg.Snapshot)
	if err := watcher.Add(snapshotDir); err != nil {
		return errors.Wrapf(errors.FileSystemErrorCode, err,
			"directory %s could not be watched", snapshotDir)
	}

	diag.Info("Watching %s for changes", cfg.Snapshot)
	runOnce(ctx, cfg, diag, reporter)

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			diag.Warn("Watcher error: %v", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != snapshotBase {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			diag.Debug("Snapshot event: %s", event)
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerCh = timer.C
			} else {
				timer.Reset(debounceWindow)
			}
		case <-timerCh:
			timer = nil
			timerCh = nil
			runOnce(ctx, cfg, diag, reporter)
			diag.Info("Watching %s for changes", cfg.Snapshot)
		}
	}
}

func runOnce(ctx context.Context, cfg *Config, diag *utils.DiagnosticSystem, reporter *Reporter) {
	if err := Run(ctx, cfg, diag); err != nil {
		reporter.Report(err)
	}
}
