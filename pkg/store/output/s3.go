package output

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const DefaultRegion = "us-east-1"

// PutObjectAPI is the part of the S3 client used by the bucket sink.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Settings struct {
	Bucket  string
	Prefix  string
	Profile string
	Region  string
}

type Bucket struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// LoadAWSConfig resolves credentials for the given shared profile.
func LoadAWSConfig(ctx context.Context, profile, region string) (aws.Config, error) {
	if region == "" {
		region = DefaultRegion
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithDefaultRegion(region)}
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return cfg, nil
}

func NewS3Bucket(ctx context.Context, settings S3Settings) (*Bucket, error) {
	cfg, err := LoadAWSConfig(ctx, settings.Profile, settings.Region)
	if err != nil {
		return nil, err
	}
	return NewBucket(s3.NewFromConfig(cfg), settings.Bucket, settings.Prefix)
}

func NewBucket(client PutObjectAPI, bucket, prefix string) (*Bucket, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	return &Bucket{client: client, bucket: bucket, prefix: prefix}, nil
}

func (b *Bucket) Store(ctx context.Context, name string, data []byte) (string, error) {
	key := path.Join(b.prefix, name)

	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", key, b.bucket, err)
	}
	return fmt.Sprintf("s3://%s/%s", b.bucket, key), nil
}
