package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"brandlink-be/internal/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newDuplicatesCmd(opts *rootOptions) *cobra.Command {
	var workspace string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "duplicates",
		Short: "List duplicate groups in a workspace, largest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			wsId, err := parseWorkspace(workspace)
			if err != nil {
				return err
			}

			c, err := openContainer(opts)
			if err != nil {
				return err
			}
			defer c.Close()

			groups, err := c.DuplicateService.FindDuplicates(cmd.Context(), wsId)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(groups)
			}
			printGroups(out, groups)
			return nil
		},
	}
	cmd.Flags().StringVar(&workspace, "workspace", "", "workspace id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a report")
	cmd.MarkFlagRequired("workspace")
	return cmd
}

func printGroups(w io.Writer, groups []dto.DuplicateGroupResponse) {
	if len(groups) == 0 {
		color.New(color.FgGreen).Fprintln(w, "No duplicates found.")
		return
	}

	header := color.New(color.FgYellow, color.Bold)
	dim := color.New(color.Faint)
	for _, g := range groups {
		header.Fprintf(w, "%s (%d)\n", g.Key, g.Count)
		for _, c := range g.Contacts {
			fmt.Fprintf(w, "  %s  %s\n", c.Id, describe(c))
		}
		dim.Fprintln(w, strings.Repeat("-", 60))
	}
	fmt.Fprintf(w, "%d groups\n", len(groups))
}

func describe(c dto.ContactResponse) string {
	parts := make([]string, 0, 3)
	for _, p := range []*string{c.Name, c.Email, c.Company} {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, *p)
		}
	}
	if len(parts) == 0 {
		return "(no identity)"
	}
	return strings.Join(parts, " / ")
}
