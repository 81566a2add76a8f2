package main

import (
	"github.com/spf13/cobra"

	"github.com/schema-dl/schemadl/codegen"
	"github.com/schema-dl/schemadl/internal/config"
)

// globalFlags holds the flag values shared across compile/watch/lint,
// overlaying whatever internal/config.Load found in schemadlc.toml.
type globalFlags struct {
	configPath      string
	namespace       string
	outputBasename  string
	strongEntityID  bool
	entityIDTypedef string
	indent          int
	verbose         bool
}

func (f *globalFlags) resolveOptions() codegen.Options {
	cfg, _ := config.Load(f.configPath)
	opts := cfg.Options()
	if f.namespace != "" {
		opts.NamespaceName = f.namespace
	}
	if f.outputBasename != "" {
		opts.OutputBasename = f.outputBasename
	}
	if f.strongEntityID {
		opts.UseStrongEntityID = true
	}
	if f.entityIDTypedef != "" {
		opts.EntityIDTypedef = f.entityIDTypedef
	}
	if f.indent > 0 {
		opts.IndentationSize = f.indent
	}
	return opts
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "schemadlc",
		Short:         "Compile Schema-DL interface descriptions into target-language headers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", config.FileName, "path to schemadlc.toml")
	root.PersistentFlags().StringVar(&flags.namespace, "namespace", "", "override the emitted namespace/module name")
	root.PersistentFlags().StringVar(&flags.outputBasename, "output-basename", "", "override the header-guard basename")
	root.PersistentFlags().BoolVar(&flags.strongEntityID, "strong-entity-id", false, "emit a typed EntityID wrapper instead of a bare alias")
	root.PersistentFlags().StringVar(&flags.entityIDTypedef, "entity-id-type", "", "underlying integer type for EntityID")
	root.PersistentFlags().IntVar(&flags.indent, "indent", 0, "spaces per indent level")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug-level logging")

	root.AddCommand(newCompileCommand(flags))
	root.AddCommand(newWatchCommand(flags))
	root.AddCommand(newLintCommand(flags))

	return root
}
