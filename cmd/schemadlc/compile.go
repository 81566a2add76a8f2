package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/schema-dl/schemadl/internal/logging"
	"github.com/schema-dl/schemadl/pipeline"
)

func newCompileCommand(flags *globalFlags) *cobra.Command {
	var out string
	var dumpAST bool

	cmd := &cobra.Command{
		Use:   "compile <schema-file>",
		Short: "Compile a single Schema-DL file into a target-language header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(flags, args[0], out, dumpAST)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file path (default: <input>.h)")
	cmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed schema as JSON instead of generating code")

	return cmd
}

func runCompile(flags *globalFlags, inPath, outPath string, dumpAST bool) error {
	log, err := logging.New(flags.verbose)
	if err != nil {
		return err
	}
	defer mustSync(log)

	runID := uuid.New().String()
	log = log.With(zap.String("run_id", runID), zap.String("file", inPath))

	src, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	p := pipeline.New(flags.resolveOptions())

	if dumpAST {
		res := p.Analyze(string(src))
		if diags := res.Diagnostics(); len(diags) > 0 {
			for _, d := range diags {
				log.Error(d)
			}
			return errExitSilently
		}
		b, err := gojson.MarshalIndent(res.Schema, "", "  ")
		if err != nil {
			return err
		}
		os.Stdout.Write(b)
		os.Stdout.Write([]byte("\n"))
		return nil
	}

	start := time.Now()
	res := p.Compile(string(src))
	log.Debug("compiled", zap.Duration("elapsed", time.Since(start)))

	if !res.OK() {
		for _, d := range res.Diagnostics() {
			log.Error(d)
		}
		log.Error("compilation failed", zap.Int("diagnostic_count", len(res.Diagnostics())))
		return errExitSilently
	}

	if outPath == "" {
		outPath = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".h"
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(outPath, []byte(res.Output), 0o644); err != nil {
		return err
	}

	log.Info("wrote header", zap.String("out", outPath))
	return nil
}
