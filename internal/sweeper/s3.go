package sweeper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config locates the bucket sweep reports are archived in. BaseEndpoint
// and the static credentials are for S3-compatible servers such as MinIO;
// leave them empty to use the AWS defaults.
type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// seams for tests
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
)

// S3Reporter stores each report as JSON under sweeps/<date>/<run id>.json.
type S3Reporter struct {
	client objectPutter
	bucket string
}

func NewS3Reporter(ctx context.Context, c S3Config) (*S3Reporter, error) {
	if c.Bucket == "" {
		return nil, fmt.Errorf("s3 reporter: bucket is required")
	}

	var opts []func(*awsconfig.LoadOptions) error
	if c.Region != "" {
		opts = append(opts, awsconfig.WithRegion(c.Region))
	}
	if c.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3 reporter: loading aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Reporter{client: client, bucket: c.Bucket}, nil
}

// ObjectKey returns where the report is stored in the bucket.
func ObjectKey(r *Report) string {
	return fmt.Sprintf("sweeps/%s/%s.json", r.StartedAt.UTC().Format("2006-01-02"), r.RunID)
}

func (s *S3Reporter) Report(ctx context.Context, r *Report) error {
	body, err := json.Marshal(r)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(ObjectKey(r)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 reporter: put %s: %w", ObjectKey(r), err)
	}
	return nil
}
