package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/miniframe/internal/config"
	"github.com/vango-dev/miniframe/internal/publish"
)

func publishCmd(g *globals) *cobra.Command {
	var (
		bucket string
		prefix string
		region string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "publish <dir>",
		Short: "Upload a static bundle to S3",
		Long: `Upload every file below <dir> to an S3 bucket.

Credentials come from the standard AWS chain: environment variables, shared
config and credentials files (AWS_PROFILE), SSO or an instance role. Set
AWS_ENDPOINT_URL to use an S3-compatible store.

Examples:
  miniframe render --out dist
  miniframe publish dist --bucket my-site --prefix todo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.setup(func(c *config.Config) {
				if bucket != "" {
					c.Publish.Bucket = bucket
				}
				if cmd.Flags().Changed("prefix") {
					c.Publish.Prefix = prefix
				}
				if region != "" {
					c.Publish.Region = region
				}
			})
			if err != nil {
				return err
			}

			client, err := publish.NewClient(cmd.Context(), cfg.Publish.Region)
			if err != nil {
				return err
			}
			res, err := publish.Publish(cmd.Context(), client, args[0], publish.Options{
				Bucket:       cfg.Publish.Bucket,
				Prefix:       cfg.Publish.Prefix,
				CacheControl: cfg.Publish.CacheControl,
				DryRun:       dryRun,
				Logger:       logger,
			})
			if err != nil {
				return err
			}
			success(cmd, "Published %d files (%d bytes) to s3://%s", len(res.Objects), res.Bytes, cfg.Publish.Bucket)
			return nil
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Destination bucket (default from miniframe.json)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default from miniframe.json)")
	cmd.Flags().StringVar(&region, "region", "", "Bucket region (default from miniframe.json)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the files without uploading")

	return cmd
}
