package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/cobra"

	"github.com/getmockd/restmock/pkg/cli/internal/output"
	"github.com/getmockd/restmock/pkg/config"
	"github.com/getmockd/restmock/pkg/engine"
	"github.com/getmockd/restmock/pkg/logging"
)

func newValidateCommand() *cobra.Command {
	var (
		specPath   string
		configFile string
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and merge the OpenAPI documents without serving",
		Long: `Load the OpenAPI documents at --path, merge them, and print the operations
that serve would register. Exits non-zero when no usable document is found.`,
		Example: `  restmock validate --path ./specs`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := specPath
			if !cmd.Flags().Changed("path") {
				cfg, err := config.Load(configFile)
				if err != nil {
					return err
				}
				path = cfg.SpecPath
			}

			doc, err := loadDocument(cmd.Context(), path, logging.Nop())
			if err != nil {
				return err
			}
			srv, err := engine.NewServer(doc, config.Default())
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), doc, srv.Routes())
		},
	}
	cmd.Flags().StringVar(&specPath, "path", config.DefaultSpecPath, "OpenAPI spec file or directory")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to YAML configuration file")
	return cmd
}

func printSummary(w io.Writer, doc *openapi3.T, routes []engine.Route) error {
	paths := map[string]bool{}
	for _, rt := range routes {
		paths[rt.Path] = true
	}

	title, version := "", ""
	if doc.Info != nil {
		title, version = doc.Info.Title, doc.Info.Version
	}
	fmt.Fprintf(w, "%s (%s)\n", title, version)
	fmt.Fprintf(w, "OpenAPI %s: %d paths, %d operations\n\n", doc.OpenAPI, len(paths), len(routes))

	tw := output.Table(w)
	fmt.Fprintln(tw, "METHOD\tPATH\tSUMMARY")
	for _, rt := range routes {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", rt.Method, rt.Path, rt.Operation.Summary)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(doc.Tags) > 0 {
		names := make([]string, 0, len(doc.Tags))
		for _, tag := range doc.Tags {
			names = append(names, tag.Name)
		}
		sort.Strings(names)
		fmt.Fprintf(w, "\nTags: %v\n", names)
	}
	return nil
}
