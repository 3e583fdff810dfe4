package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"contentbuild/internal/blob"
	"contentbuild/internal/publish"
)

func (a *app) publishCommand() *cobra.Command {
	var (
		prefix       string
		cacheControl string
	)
	cmd := &cobra.Command{
		Use:   "publish <dir>",
		Short: "Upload a built directory to the asset bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := blob.Open(cmd.Context(), a.cfg.Blob)
			if err != nil {
				return err
			}
			p := &publish.Publisher{Store: store, CacheControl: cacheControl, Metrics: a.metrics, Logger: a.log}
			sum, err := p.Publish(cmd.Context(), args[0], prefix)
			fmt.Fprintf(a.stdout, "%d uploaded (%d bytes), %d unchanged, %d failed\n", sum.Uploaded, sum.Bytes, sum.Skipped, sum.Failed)
			return err
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "key prefix inside the bucket")
	cmd.Flags().StringVar(&cacheControl, "cache-control", "", "Cache-Control header for uploaded objects")
	return cmd
}
