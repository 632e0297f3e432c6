package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vinoscan/internal/catalog"
	"vinoscan/internal/imaging"
	"vinoscan/internal/wine"
)

type entryFlags struct {
	name        string
	maker       string
	year        string
	wineType    string
	price       string
	bin         string
	notes       string
	description string
	fields      []string
	images      []string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Wine name")
	cmd.Flags().StringVar(&f.maker, "maker", "", "Maker or winery")
	cmd.Flags().StringVar(&f.year, "year", "", "Vintage year")
	cmd.Flags().StringVar(&f.wineType, "type", "", "Wine type: Red, White, Rosé, Champagne/Sparkling, Other")
	cmd.Flags().StringVar(&f.price, "price", "", "Purchase price")
	cmd.Flags().StringVar(&f.bin, "bin", "", "Bin or storage location")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Personal notes")
	cmd.Flags().StringVar(&f.description, "description", "", "Tasting description")
	cmd.Flags().StringArrayVar(&f.fields, "field", nil, "Custom field as label=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.images, "image", nil, "Label image file (repeatable, first is primary)")
}

// apply copies set flags onto the entry. Unset flags leave the entry's
// current values alone, which makes the same flag set serve add and edit.
func (f *entryFlags) apply(cmd *cobra.Command, entry *wine.Entry, imgOpts imaging.Options) error {
	flagValues := map[string]*string{
		"name":        &entry.Name,
		"maker":       &entry.Maker,
		"year":        &entry.Year,
		"price":       &entry.Price,
		"bin":         &entry.BinNumber,
		"notes":       &entry.Notes,
		"description": &entry.Description,
	}
	sources := map[string]string{
		"name":        f.name,
		"maker":       f.maker,
		"year":        f.year,
		"price":       f.price,
		"bin":         f.bin,
		"notes":       f.notes,
		"description": f.description,
	}
	for flag, target := range flagValues {
		if cmd.Flags().Changed(flag) {
			*target = sources[flag]
		}
	}

	if cmd.Flags().Changed("type") {
		if !wine.ValidType(f.wineType) {
			return fmt.Errorf("invalid type %q (valid: %s)", f.wineType, joinTypes())
		}
		entry.Type = wine.Type(f.wineType)
	}

	if cmd.Flags().Changed("field") {
		fields := make([]wine.CustomField, 0, len(f.fields))
		for _, raw := range f.fields {
			label, value, ok := strings.Cut(raw, "=")
			if !ok {
				return fmt.Errorf("invalid --field %q, want label=value", raw)
			}
			fields = append(fields, wine.CustomField{
				Label: strings.TrimSpace(label),
				Value: strings.TrimSpace(value),
			})
		}
		entry.CustomFields = fields
	}

	for _, path := range f.images {
		raw, err := readImageFile(path)
		if err != nil {
			return err
		}
		entry.ImageURLs = append(entry.ImageURLs, imaging.ToDataURL(imaging.Compress(raw, imgOpts)))
	}
	return nil
}

func joinTypes() string {
	types := wine.Types()
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry to the cellar",
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := wine.NewEntry()
			if err := flags.apply(cmd, &entry, ctx.imagingOptions()); err != nil {
				return err
			}
			if strings.TrimSpace(entry.Name) == "" {
				return fmt.Errorf("--name is required")
			}

			return ctx.withCatalog(cmd, func(cctx context.Context, cat *catalog.Catalog) error {
				if err := cat.Insert(cctx, entry); err != nil {
					return renderError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", entry.Name, shortID(entry.ID))
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}
