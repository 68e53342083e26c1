package publish

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimald/webevo-report-gen/pkg/shared/config"
)

type fakeUploader struct {
	input *s3manager.UploadInput
	err   error
}

func (f *fakeUploader) UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return &s3manager.UploadOutput{}, nil
}

func TestPublishUploadsUnderPrefix(t *testing.T) {
	fake := &fakeUploader{}
	publisher := &S3Publisher{
		uploader: fake,
		bucket:   "reports",
		prefix:   "final",
		logger:   hclog.NewNullLogger(),
	}

	err := publisher.Publish(context.Background(), "test-site-com_2025-08-13_webevo-ai.png", []byte("png-bytes"))
	require.NoError(t, err)
	require.NotNil(t, fake.input)

	assert.Equal(t, "reports", aws.StringValue(fake.input.Bucket))
	assert.Equal(t, "final/test-site-com_2025-08-13_webevo-ai.png", aws.StringValue(fake.input.Key))
	assert.Equal(t, "image/png", aws.StringValue(fake.input.ContentType))

	body, err := io.ReadAll(fake.input.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), body)
}

func TestPublishWrapsUploadErrors(t *testing.T) {
	fake := &fakeUploader{err: errors.New("access denied")}
	publisher := &S3Publisher{
		uploader: fake,
		bucket:   "reports",
		logger:   hclog.NewNullLogger(),
	}

	err := publisher.Publish(context.Background(), "report.pdf", []byte("pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", contentType("a.png"))
	assert.Equal(t, "application/pdf", contentType("a.pdf"))
	assert.Equal(t, "application/octet-stream", contentType("a.bin"))
}

func TestNewS3PublisherRequiresBucket(t *testing.T) {
	_, err := NewS3Publisher(config.S3{}, hclog.NewNullLogger())
	assert.Error(t, err)
}
