package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"contentbuild/internal/featureflags"
	"contentbuild/internal/graphql"
)

func (a *app) queryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "query <name>",
		Short: "Print an assembled GraphQL query document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := featureflags.Enabled(a.cfg.BuildType)
			if err != nil {
				return err
			}
			q, ok := graphql.Queries(flags)[args[0]]
			if !ok {
				return fmt.Errorf("unknown query %q (have %s)", args[0], strings.Join(graphql.QueryNames(flags), ", "))
			}
			doc := q.Document()
			if err := graphql.Validate(doc); err != nil {
				return fmt.Errorf("query %s: %w", q.Name, err)
			}
			fmt.Fprint(a.stdout, doc)
			return nil
		},
	}
}
