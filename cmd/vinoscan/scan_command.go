package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vinoscan/internal/catalog"
	"vinoscan/internal/staging"
	"vinoscan/internal/wine"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var manual bool
	var quick bool
	var save bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scan <image...>",
		Short: "Stage label images and draft an entry",
		Long: `Stage one or more label images, analyze the first one, and build a
draft entry. --manual skips analysis and drafts blank fields. --quick takes a
single image and analyzes it immediately. Without --save the draft is printed
and discarded.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if manual && quick {
				return fmt.Errorf("--manual and --quick are mutually exclusive")
			}
			if quick && len(args) != 1 {
				return fmt.Errorf("--quick takes exactly one image")
			}

			session, err := ctx.newSession()
			if err != nil {
				return err
			}

			draft, err := buildDraft(cmd.Context(), session, args, manual, quick)
			if err != nil {
				return renderError(err)
			}

			if asJSON {
				if err := writeJSON(cmd, draft); err != nil {
					return err
				}
			} else {
				printDraft(cmd, draft)
			}

			if !save {
				if cancelErr := session.CancelDraft(); cancelErr != nil {
					return cancelErr
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Draft discarded (re-run with --save to keep it)")
				return nil
			}

			return ctx.withCatalog(cmd, func(cctx context.Context, cat *catalog.Catalog) error {
				saved, err := session.SaveDraft(cctx, cat)
				if err != nil {
					return renderError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s)\n", saved.Name, shortID(saved.ID))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&manual, "manual", false, "Skip analysis, draft blank fields")
	cmd.Flags().BoolVar(&quick, "quick", false, "Single-shot capture and analyze")
	cmd.Flags().BoolVar(&save, "save", false, "Save the draft to the cellar")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the draft as JSON")
	return cmd
}

func buildDraft(ctx context.Context, session *staging.Session, paths []string, manual, quick bool) (wine.Entry, error) {
	if quick {
		raw, err := readImageFile(paths[0])
		if err != nil {
			return wine.Entry{}, err
		}
		return session.QuickScan(ctx, raw)
	}

	images := make([][]byte, 0, len(paths))
	for _, path := range paths {
		raw, err := readImageFile(path)
		if err != nil {
			return wine.Entry{}, err
		}
		images = append(images, raw)
	}
	if err := session.AddImages(images...); err != nil {
		return wine.Entry{}, err
	}

	if manual {
		return session.ManualDraft()
	}
	return session.Analyze(ctx)
}

func printDraft(cmd *cobra.Command, draft wine.Entry) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:   %s\n", draft.Name)
	fmt.Fprintf(out, "Maker:  %s\n", draft.Maker)
	fmt.Fprintf(out, "Year:   %s\n", draft.Year)
	fmt.Fprintf(out, "Type:   %s\n", draft.Type)
	if draft.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", draft.Description)
	}
	fmt.Fprintf(out, "Images: %d\n", len(draft.ImageURLs))
}
