package publish

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/miniframe/internal/errors"
)

// NewClient creates an S3 client from the default AWS configuration chain
// (environment, shared config and credentials files, SSO, instance roles).
// An empty region keeps the region the chain resolves. When an endpoint
// override such as AWS_ENDPOINT_URL is set, path-style addressing is used so
// that S3-compatible stores work.
func NewClient(ctx context.Context, region string) (*s3.Client, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.New(errors.CodeUploadFailed).
			WithDetail("The AWS configuration could not be loaded.").
			Wrap(err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if o.BaseEndpoint != nil {
			o.UsePathStyle = true
		}
	}), nil
}
