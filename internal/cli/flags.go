package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"contentbuild/internal/featureflags"
)

func (a *app) flagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "flags",
		Short: "Print the feature flags enabled for the build type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := featureflags.Enabled(a.cfg.BuildType)
			if err != nil {
				return err
			}
			for _, d := range featureflags.Definitions {
				fmt.Fprintf(a.stdout, "%s\t%s\t%t\n", d.Key, d.Flag, set.On(d.Flag))
			}
			return nil
		},
	}
}
