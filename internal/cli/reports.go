package cli

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"contentbuild/internal/reports"
)

func (a *app) reportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Inspect stored crawl reports",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := reports.Open(cmd.Context(), a.cfg.Reports)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			list, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range list {
				fmt.Fprintf(a.stdout, "%s\t%s\t%s\t%d pages\t%d failing\t%d violations\n",
					s.ID, s.StartedAt.Format("2006-01-02T15:04:05Z07:00"), s.BaseURL, s.Pages, s.Failures, s.Violations)
			}
			return nil
		},
	}, &cobra.Command{
		Use:   "show <id>",
		Short: "Print one report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("report id: %w", err)
			}
			store, err := reports.Open(cmd.Context(), a.cfg.Reports)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			report, err := store.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(a.stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	})
	return cmd
}
