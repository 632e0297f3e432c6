package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vinoscan/internal/catalog"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit fields of an existing entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(cmd, func(cctx context.Context, cat *catalog.Catalog) error {
				id, ok := resolveEntryID(cat.Entries(), args[0])
				if !ok {
					id = args[0]
				}
				entry, err := cat.Get(id)
				if err != nil {
					return renderError(err)
				}
				if err := flags.apply(cmd, &entry, ctx.imagingOptions()); err != nil {
					return err
				}
				if err := cat.Update(cctx, entry); err != nil {
					return renderError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", entry.Name, shortID(entry.ID))
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}
