package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// NewRootCommand builds the restmock command tree. Without a subcommand the
// root command serves, accepting the same flags as serve.
func NewRootCommand() *cobra.Command {
	opts := &serveOptions{}
	root := &cobra.Command{
		Use:   "restmock",
		Short: "restmock serves mock responses for OpenAPI 3 documents",
		Long: `restmock starts an HTTP server that answers every operation declared in one
or more OpenAPI 3 documents with synthesized, schema-conforming responses.

Configuration can be provided via flags, RESTMOCK_* environment variables, or a
YAML configuration file given with --config.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true, // errors are printed by Execute
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
	addServeFlags(root, opts)

	root.AddCommand(
		newServeCommand(),
		newValidateCommand(),
		newVersionCommand(),
	)
	return root
}

// Run executes the CLI with args, writing command output to stdout and logs
// to stderr.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// Execute runs the CLI with the process arguments and exits 1 on error.
// This is called by main.main().
func Execute() {
	if err := Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
