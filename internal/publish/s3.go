package publish

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	awssession "github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/hashicorp/go-hclog"

	"github.com/optimald/webevo-report-gen/pkg/shared/config"
)

// Publisher delivers a finished artifact to an external destination.
type Publisher interface {
	Publish(ctx context.Context, name string, data []byte) error
}

// uploader is the slice of s3manager.Uploader the publisher needs.
type uploader interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// S3Publisher uploads artifacts under <prefix>/<filename> in a bucket.
type S3Publisher struct {
	uploader uploader
	bucket   string
	prefix   string
	logger   hclog.Logger
}

func NewS3Publisher(cfg config.S3, logger hclog.Logger) (*S3Publisher, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 publishing requires a bucket")
	}

	awsCfg := aws.NewConfig()
	if cfg.Region != "" {
		awsCfg = awsCfg.WithRegion(cfg.Region)
	}
	sess, err := awssession.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Publisher{
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.Bucket,
		prefix:   cfg.Prefix,
		logger:   logger,
	}, nil
}

func (p *S3Publisher) Publish(ctx context.Context, name string, data []byte) error {
	key := path.Join(p.prefix, name)

	_, err := p.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType(name)),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %q to s3://%s/%s: %w", name, p.bucket, key, err)
	}

	p.logger.Info("published artifact", "bucket", p.bucket, "key", key)
	return nil
}

func contentType(name string) string {
	switch {
	case strings.HasSuffix(name, ".png"):
		return "image/png"
	case strings.HasSuffix(name, ".pdf"):
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
