package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vinoscan/internal/catalog"
	"vinoscan/internal/query"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Move an entry to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(cmd, func(cctx context.Context, cat *catalog.Catalog) error {
				id, ok := resolveEntryID(cat.Entries(), args[0])
				if !ok {
					id = args[0]
				}
				if err := cat.SoftDelete(cctx, id); err != nil {
					return renderError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to trash (restore with `vinoscan restore %s`)\n", shortID(id), shortID(id))
				return nil
			})
		},
	}
}

func newRestoreCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore an entry from the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(cmd, func(cctx context.Context, cat *catalog.Catalog) error {
				id, ok := resolveEntryID(cat.Entries(), args[0])
				if !ok {
					id = args[0]
				}
				if err := cat.Restore(cctx, id); err != nil {
					return renderError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", shortID(id))
				return nil
			})
		},
	}
}

func newPurgeCommand(ctx *commandContext) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "purge <id>",
		Short: "Permanently delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(cmd, func(cctx context.Context, cat *catalog.Catalog) error {
				id, ok := resolveEntryID(cat.Entries(), args[0])
				if !ok {
					id = args[0]
				}
				if err := cat.Purge(cctx, id, confirmed); err != nil {
					return renderError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Permanently deleted %s\n", shortID(id))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm the permanent delete")
	return cmd
}

func newTrashCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "trash",
		Short: "List trashed entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(cmd, func(_ context.Context, cat *catalog.Catalog) error {
				view := query.Apply(cat.Entries(), query.Options{Trash: true})
				if asJSON {
					return writeJSON(cmd, view)
				}
				if len(view) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Trash is empty")
					return nil
				}
				rows := make([][]string, 0, len(view))
				for _, entry := range view {
					rows = append(rows, entryRow(entry))
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(entryHeaders, rows, entryAligns))
				fmt.Fprintf(cmd.OutOrStdout(), "%d trashed entries\n", len(view))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}
