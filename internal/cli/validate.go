package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"contentbuild/internal/schema"
)

func (a *app) validateCommand() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "validate <export.json|dir>...",
		Short: "Validate CMS export files against the output schemas",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := schema.NewRegistry(schema.Options{Logger: a.log, Recorder: a.metrics})
			if err != nil {
				return err
			}
			files, dirs, err := expandExports(args)
			if err != nil {
				return err
			}
			failed := reportValidation(a.stdout, reg.ValidateFiles(cmd.Context(), files), len(files))
			if !watch {
				if failed {
					return errFailed
				}
				return nil
			}
			return a.watchExports(cmd.Context(), dirs, func(path string, err error) {
				reportValidation(a.stdout, err, 1)
			}, reg)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-validate files as they change")
	return cmd
}

// expandExports turns args into the .json files to validate and the
// directories that hold them.
func expandExports(args []string) ([]string, []string, error) {
	var files []string
	dirSet := map[string]struct{}{}
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			return nil, nil, err
		}
		if !fi.IsDir() {
			files = append(files, arg)
			dirSet[filepath.Dir(arg)] = struct{}{}
			continue
		}
		dirSet[arg] = struct{}{}
		matches, err := filepath.Glob(filepath.Join(arg, "*.json"))
		if err != nil {
			return nil, nil, err
		}
		files = append(files, matches...)
	}
	dirs := make([]string, 0, len(dirSet))
	for d := range dirSet {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return files, dirs, nil
}

func reportValidation(w io.Writer, err error, checked int) bool {
	errs := multierr.Errors(err)
	for _, e := range errs {
		fmt.Fprintln(w, e)
	}
	fmt.Fprintf(w, "%d checked, %d failed\n", checked, len(errs))
	return len(errs) > 0
}

// watchExports re-validates .json files under dirs as they are written,
// batching bursts of events. It returns when ctx is done.
func (a *app) watchExports(ctx context.Context, dirs []string, notify func(path string, err error), reg *schema.Registry) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	for _, d := range dirs {
		if err := watcher.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}
	a.log.Info("watching exports", zap.Strings("dirs", dirs))

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	pending := map[string]struct{}{}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				pending[event.Name] = struct{}{}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watch error", zap.Error(err))
		case <-ticker.C:
			for path := range pending {
				delete(pending, path)
				err := reg.ValidateFiles(ctx, []string{path})
				if errors.Is(err, context.Canceled) {
					return nil
				}
				notify(path, err)
			}
		}
	}
}
