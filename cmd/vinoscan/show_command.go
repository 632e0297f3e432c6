package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vinoscan/internal/catalog"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one entry in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(cmd, func(_ context.Context, cat *catalog.Catalog) error {
				id, ok := resolveEntryID(cat.Entries(), args[0])
				if !ok {
					id = args[0]
				}
				entry, err := cat.Get(id)
				if err != nil {
					return renderError(err)
				}

				if asJSON {
					return writeJSON(cmd, entry)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:       %s\n", entry.ID)
				fmt.Fprintf(out, "Name:     %s\n", entry.Name)
				fmt.Fprintf(out, "Maker:    %s\n", entry.Maker)
				fmt.Fprintf(out, "Year:     %s\n", entry.Year)
				fmt.Fprintf(out, "Type:     %s\n", entry.Type)
				fmt.Fprintf(out, "Price:    %s\n", entry.Price)
				fmt.Fprintf(out, "Bin:      %s\n", entry.BinNumber)
				fmt.Fprintf(out, "Added:    %s\n", formatCreated(entry.CreatedAt))
				if entry.Description != "" {
					fmt.Fprintf(out, "Description: %s\n", entry.Description)
				}
				if entry.Notes != "" {
					fmt.Fprintf(out, "Notes:    %s\n", entry.Notes)
				}
				for _, field := range entry.CustomFields {
					fmt.Fprintf(out, "%s: %s\n", field.Label, field.Value)
				}
				fmt.Fprintf(out, "Images:   %d\n", len(entry.ImageURLs))
				if entry.Deleted() {
					fmt.Fprintf(out, "Trashed:  %s\n", formatCreated(*entry.DeletedAt))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}
