package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"neurobiomark/internal/domain"
)

func newRequestsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "requests",
		Aliases: []string{"req"},
		Short:   "Manage demo requests",
	}
	cmd.AddCommand(
		newListCmd(opts),
		newBrowseCmd(opts),
		newStatusCmd(opts),
		newNotesCmd(opts),
		newDeleteCmd(opts),
		newBulkDeleteCmd(opts),
		newExportCmd(opts),
		newStatsCmd(opts),
	)
	return cmd
}

func newListCmd(opts *options) *cobra.Command {
	var q domain.DemoRequestQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of demo requests, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := opts.client().List(cmd.Context(), q)
			if err != nil {
				return err
			}
			pageNum := q.Page
			if pageNum < 1 {
				pageNum = 1
			}
			return renderTable(opts.out, derefItems(page.Items), nil, pageNum, page.Pages)
		},
	}
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number (1-based)")
	cmd.Flags().StringVar(&q.Search, "search", "", "substring of name or email")
	cmd.Flags().StringVar(&q.Status, "status", "", "new, contacted or responded")
	return cmd
}

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <new|contacted|responded>",
		Short: "Set the follow-up status of a request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, ok := domain.ParseDemoRequestStatus(args[1])
			if !ok {
				return fmt.Errorf("unknown status %q", args[1])
			}
			updated, err := opts.client().UpdateStatus(cmd.Context(), args[0], st)
			if err != nil {
				return err
			}
			fmt.Fprintf(opts.out, "%s is now %s\n", updated.ID, updated.Status)
			return nil
		},
	}
}

func newNotesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "notes <id> <text>...",
		Short: "Replace the internal notes of a request",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := opts.client().SaveNotes(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(opts.out, "notes saved for %s\n", updated.ID)
			return nil
		},
	}
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(opts.out, "deleted %s\n", args[0])
			return nil
		},
	}
}

func newBulkDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "bulk-delete <id>...",
		Short: "Delete several requests",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().BulkDelete(cmd.Context(), args); err != nil {
				return err
			}
			fmt.Fprintf(opts.out, "deleted %d requests\n", len(args))
			return nil
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download all requests as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" || output == "-" {
				return opts.client().Export(cmd.Context(), opts.out)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := opts.client().Export(cmd.Context(), f); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")
	return cmd
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print requests per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			counts, err := opts.client().Stats(cmd.Context())
			if err != nil {
				return err
			}
			return renderStats(opts.out, counts)
		},
	}
}

func derefItems(items []*domain.DemoRequest) []domain.DemoRequest {
	out := make([]domain.DemoRequest, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, *it)
		}
	}
	return out
}
