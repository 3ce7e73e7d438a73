package s3

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"gstbill/internal/config"
	"gstbill/internal/port"
)

type s3Client struct {
	client    *s3.Client
	presigner *s3.PresignClient
	uploader  *manager.Uploader
}

// NewS3Client creates an S3-backed ObjectStorage for archived invoice PDFs.
// A custom endpoint (MinIO, LocalStack) switches to path-style addressing.
func NewS3Client(ctx context.Context, cfg *config.S3Config) (port.ObjectStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &s3Client{
		client:    client,
		presigner: s3.NewPresignClient(client),
		uploader:  manager.NewUploader(client),
	}, nil
}

func (c *s3Client) Put(ctx context.Context, bucket string, obj port.ArchiveObject) error {
	put := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(obj.Key),
		Body:        obj.Body,
		ContentType: aws.String(obj.ContentType),
	}
	if obj.Size > 0 {
		put.ContentLength = aws.Int64(obj.Size)
	}
	if _, err := c.uploader.Upload(ctx, put); err != nil {
		return fmt.Errorf("s3 upload %s: %w", obj.Key, err)
	}
	return nil
}

func (c *s3Client) Delete(ctx context.Context, bucket, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

func (c *s3Client) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	result, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(bucket),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String(fmt.Sprintf("inline; filename=%q", path.Base(key))),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s: %w", key, err)
	}
	return result.URL, nil
}

