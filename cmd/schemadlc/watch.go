package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/schema-dl/schemadl/internal/logging"
	"github.com/schema-dl/schemadl/pipeline"
)

func newWatchCommand(flags *globalFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "watch <schema-file>",
		Short: "Recompile a Schema-DL file every time it changes on disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, flags, args[0], out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file path (default: <input>.h)")
	return cmd
}

func runWatch(cmd *cobra.Command, flags *globalFlags, inPath, outPath string) error {
	log, err := logging.New(flags.verbose)
	if err != nil {
		return err
	}
	defer mustSync(log)
	log = log.With(zap.String("file", inPath))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(inPath)); err != nil {
		return err
	}

	if outPath == "" {
		outPath = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".h"
	}

	recompile := func() {
		runID := uuid.New().String()
		l := log.With(zap.String("run_id", runID))

		src, err := os.ReadFile(inPath)
		if err != nil {
			l.Error("read failed", zap.Error(err))
			return
		}

		start := time.Now()
		res := pipeline.New(flags.resolveOptions()).Compile(string(src))
		l.Debug("recompiled", zap.Duration("elapsed", time.Since(start)))

		if !res.OK() {
			for _, d := range res.Diagnostics() {
				l.Error(d)
			}
			return
		}
		if err := os.WriteFile(outPath, []byte(res.Output), 0o644); err != nil {
			l.Error("write failed", zap.Error(err))
			return
		}
		l.Info("wrote header", zap.String("out", outPath))
	}

	recompile()

	target, err := filepath.Abs(inPath)
	if err != nil {
		return err
	}

	log.Info("watching for changes")
	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			evPath, err := filepath.Abs(ev.Name)
			if err != nil || evPath != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				recompile()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watch error", zap.Error(err))
		}
	}
}
