package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"vinoscan/internal/catalog"
	"vinoscan/internal/csvcodec"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import entries from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			entries, err := csvcodec.Import(string(raw), time.Now())
			if err != nil {
				return renderError(err)
			}

			return ctx.withCatalog(cmd, func(cctx context.Context, cat *catalog.Catalog) error {
				if err := cat.ImportBatch(cctx, entries); err != nil {
					return renderError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries from %s\n", len(entries), args[0])
				return nil
			})
		},
	}
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export active entries to a CSV file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := csvcodec.DefaultExportFilename
			if len(args) == 1 && args[0] != "" {
				target = args[0]
			}

			return ctx.withCatalog(cmd, func(_ context.Context, cat *catalog.Catalog) error {
				doc := csvcodec.Export(cat.Entries())
				if err := os.WriteFile(target, []byte(doc), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", target, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", cat.Len()-cat.TrashCount(), target)
				return nil
			})
		},
	}
}
