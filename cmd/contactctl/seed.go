package main

import (
	"fmt"
	"os"
	"time"

	"brandlink-be/internal/dto"
	"brandlink-be/internal/pkg/serverutils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Contacts []seedContact `yaml:"contacts"`
}

type seedContact struct {
	Name           *string    `yaml:"name"`
	Email          *string    `yaml:"email"`
	Company        *string    `yaml:"company"`
	Title          *string    `yaml:"title"`
	Phone          *string    `yaml:"phone"`
	Seniority      *string    `yaml:"seniority"`
	Department     *string    `yaml:"department"`
	Tags           []string   `yaml:"tags"`
	Notes          *string    `yaml:"notes"`
	NextStep       *string    `yaml:"next_step"`
	RemindAt       *time.Time `yaml:"remind_at"`
	Status         *string    `yaml:"status"`
	VerifiedStatus *string    `yaml:"verified_status"`
}

func (s seedContact) fields() dto.ContactFields {
	return dto.ContactFields{
		Name:           s.Name,
		Email:          s.Email,
		Company:        s.Company,
		Title:          s.Title,
		Phone:          s.Phone,
		Seniority:      s.Seniority,
		Department:     s.Department,
		Tags:           s.Tags,
		Notes:          s.Notes,
		NextStep:       s.NextStep,
		RemindAt:       s.RemindAt,
		Status:         s.Status,
		VerifiedStatus: s.VerifiedStatus,
	}
}

func loadSeedFile(path string) (*seedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var workspace, file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load contacts from a YAML file into a workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			wsId, err := parseWorkspace(workspace)
			if err != nil {
				return err
			}
			f, err := loadSeedFile(file)
			if err != nil {
				return err
			}

			// validate everything before writing anything
			reqs := make([]dto.CreateContactRequest, 0, len(f.Contacts))
			for i, sc := range f.Contacts {
				req := dto.CreateContactRequest{ContactFields: sc.fields()}
				if err := serverutils.ValidateRequest(&req); err != nil {
					return fmt.Errorf("contact #%d: %w", i+1, err)
				}
				reqs = append(reqs, req)
			}

			c, err := openContainer(opts)
			if err != nil {
				return err
			}
			defer c.Close()

			for i := range reqs {
				if _, err := c.ContactService.Create(cmd.Context(), wsId, &reqs[i]); err != nil {
					return fmt.Errorf("contact #%d: %w", i+1, err)
				}
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Seeded %d contact(s) into %s\n", len(reqs), wsId)
			return nil
		},
	}
	cmd.Flags().StringVar(&workspace, "workspace", "", "workspace id")
	cmd.Flags().StringVar(&file, "file", "", "YAML file with a top-level contacts list")
	cmd.MarkFlagRequired("workspace")
	cmd.MarkFlagRequired("file")
	return cmd
}
