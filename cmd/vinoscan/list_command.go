package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vinoscan/internal/catalog"
	"vinoscan/internal/query"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var searchTerm string
	var sortKey string
	var descending bool
	var trash bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cellar entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := query.ParseKey(sortKey)
			if err != nil {
				return err
			}
			order := query.Ascending
			if descending || sortKey == "" {
				order = query.Descending
			}

			return ctx.withCatalog(cmd, func(_ context.Context, cat *catalog.Catalog) error {
				view := query.Apply(cat.Entries(), query.Options{
					Trash:  trash,
					Search: searchTerm,
					Sort:   key,
					Order:  order,
				})

				if asJSON {
					return writeJSON(cmd, view)
				}

				if len(view) == 0 {
					if trash {
						fmt.Fprintln(cmd.OutOrStdout(), "Trash is empty")
					} else if searchTerm != "" {
						fmt.Fprintln(cmd.OutOrStdout(), "No entries match the search")
					} else {
						fmt.Fprintln(cmd.OutOrStdout(), "The cellar is empty")
					}
					return nil
				}

				rows := make([][]string, 0, len(view))
				for _, entry := range view {
					rows = append(rows, entryRow(entry))
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(entryHeaders, rows, entryAligns))
				if trashed := cat.TrashCount(); trashed > 0 && !trash {
					fmt.Fprintf(cmd.OutOrStdout(), "%d entries (%d in trash)\n", len(view), trashed)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%d entries\n", len(view))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&searchTerm, "search", "", "Filter by name, maker, notes, or bin")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort key: name, maker, year, price, createdAt")
	cmd.Flags().BoolVar(&descending, "desc", false, "Sort descending")
	cmd.Flags().BoolVar(&trash, "trash", false, "List trashed entries instead")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}
