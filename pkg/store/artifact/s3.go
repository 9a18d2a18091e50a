package artifact

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/de-tools/report-atlas/pkg/models/domain"
)

// S3 uploads artifacts to a bucket.
type S3 struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3 loads the shared AWS config for the given profile and builds an
// uploader targeting bucket under prefix.
func NewS3(ctx context.Context, profile, bucket, prefix string) (*S3, error) {
	cfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithSharedConfigProfile(profile),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	return &S3{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (s *S3) Put(ctx context.Context, localPath string, name string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", domain.IOf("failed to open artifact %s: %v", localPath, err)
	}
	defer f.Close()

	key := path.Join(s.prefix, name)
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awssdk.String(s.bucket),
		Key:         awssdk.String(key),
		Body:        f,
		ContentType: awssdk.String(contentType),
	})
	if err != nil {
		return "", domain.IOf("failed to upload %s to s3://%s/%s: %v", localPath, s.bucket, key, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
