package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// ObjectAPI is the part of the S3 client the image store calls.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3 keeps product images in a bucket. Image URLs point at PublicBaseURL,
// usually a CDN in front of the bucket.
type S3 struct {
	Client        ObjectAPI
	Bucket        string
	Prefix        string
	PublicBaseURL string
}

// S3Config is filled from the S3_* settings.
type S3Config struct {
	Region        string
	Bucket        string
	Prefix        string
	PublicBaseURL string
}

// NewS3 builds an image store using the default AWS credential chain.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("image bucket is not configured")
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3{
		Client:        s3.NewFromConfig(awsCfg),
		Bucket:        cfg.Bucket,
		Prefix:        cfg.Prefix,
		PublicBaseURL: cfg.PublicBaseURL,
	}, nil
}

func (s *S3) objectKey(name string) string {
	if prefix := strings.Trim(s.Prefix, "/"); prefix != "" {
		return prefix + "/" + name
	}
	return name
}

// Put uploads r as a product image under a random key.
func (s *S3) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	name, err := imageName(in.Filename)
	if err != nil {
		return PutResult{}, err
	}
	key := s.objectKey(name)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType(in)),
	}
	if in.Size > 0 {
		input.ContentLength = aws.Int64(in.Size)
	}
	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return PutResult{}, fmt.Errorf("failed to store image %s in bucket %s: %w", key, s.Bucket, err)
	}
	return PutResult{Key: key, URL: strings.TrimRight(s.PublicBaseURL, "/") + "/" + key}, nil
}

// Delete removes the image stored under key.
func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NoSuchKey" || apiErr.ErrorCode() == "NotFound") {
		return fmt.Errorf("%s: %w", key, ErrImageNotFound)
	}
	return fmt.Errorf("failed to delete image %s from bucket %s: %w", key, s.Bucket, err)
}

func (s *S3) String() string { return fmt.Sprintf("s3(%s/%s)", s.Bucket, strings.Trim(s.Prefix, "/")) }
