package main

import (
	"fmt"

	"brandlink-be/internal/dto"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newMergeCmd(opts *rootOptions) *cobra.Command {
	var workspace, keep string
	var ids []string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge contacts into the one given by --keep",
		Example: `  contactctl merge --workspace 6f1c... --keep 0a2b... --ids 0a2b...,9c8d...
  contactctl merge --workspace 6f1c... --keep 0a2b... --ids 0a2b...,9c8d... --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			wsId, err := parseWorkspace(workspace)
			if err != nil {
				return err
			}
			keepId, err := uuid.Parse(keep)
			if err != nil {
				return fmt.Errorf("--keep must be a UUID: %w", err)
			}
			req := dto.MergeContactsRequest{KeepId: keepId}
			for _, raw := range ids {
				id, err := uuid.Parse(raw)
				if err != nil {
					return fmt.Errorf("--ids: %q is not a UUID", raw)
				}
				req.ContactIds = append(req.ContactIds, id)
			}

			c, err := openContainer(opts)
			if err != nil {
				return err
			}
			defer c.Close()

			var res *dto.MergeContactsResponse
			if dryRun {
				res, err = c.DuplicateService.PreviewMerge(cmd.Context(), wsId, &req)
			} else {
				res, err = c.DuplicateService.Merge(cmd.Context(), wsId, uuid.Nil, &req)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			verb := "Merged"
			if dryRun {
				verb = "Would merge"
			}
			color.New(color.FgGreen).Fprintf(out, "%s %d contact(s) into %s\n", verb, len(res.RemovedIds), res.Contact.Id)
			fmt.Fprintf(out, "  %s\n", describe(res.Contact))
			if len(res.Contact.Tags) > 0 {
				fmt.Fprintf(out, "  tags: %v\n", res.Contact.Tags)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&workspace, "workspace", "", "workspace id")
	cmd.Flags().StringVar(&keep, "keep", "", "id of the contact that survives")
	cmd.Flags().StringSliceVar(&ids, "ids", nil, "ids to merge, including --keep")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the merged contact without saving")
	cmd.MarkFlagRequired("workspace")
	cmd.MarkFlagRequired("keep")
	cmd.MarkFlagRequired("ids")
	return cmd
}
