package main

import (
	"errors"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/schema-dl/schemadl/internal/logging"
	"github.com/schema-dl/schemadl/pipeline"
)

// errExitSilently signals main to exit(1) without printing a second
// error line: the diagnostics have already been logged by the command.
var errExitSilently = errors.New("")

// newLintCommand wraps Lex->Parse->Semantic without invoking Codegen: a
// thin policy layer over the same pipeline used for reporting only.
func newLintCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <schema-file>",
		Short: "Report diagnostics for a Schema-DL file without generating code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(flags, args[0])
		},
	}
}

func runLint(flags *globalFlags, inPath string) error {
	log, err := logging.New(flags.verbose)
	if err != nil {
		return err
	}
	defer mustSync(log)

	log = log.With(zap.String("run_id", uuid.New().String()), zap.String("file", inPath))

	src, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	p := pipeline.New(flags.resolveOptions())
	res := p.Analyze(string(src))

	diags := res.Diagnostics()
	if len(diags) == 0 {
		log.Info("no diagnostics")
		return nil
	}
	for _, d := range diags {
		log.Warn(d)
	}
	return errExitSilently
}
