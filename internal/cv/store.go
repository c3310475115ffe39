// Package cv fetches uploaded CVs from Cloudflare R2 and turns them into
// plain text for prompts.
package cv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrNotConfigured = errors.New("cv storage is not configured")

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

// ObjectGetter is the part of *s3.Client the store needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Store struct {
	client ObjectGetter
	bucket string
}

func NewStore(client ObjectGetter, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

// NewR2Store builds an S3 client pointed at the account's R2 endpoint.
func NewR2Store(ctx context.Context, cfg R2Config) (*Store, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("load r2 config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	})
	return NewStore(client, cfg.Bucket), nil
}

// Object is a downloaded file and the content type R2 reported for it.
type Object struct {
	Data        []byte
	ContentType string
}

func (s *Store) Download(ctx context.Context, key string) (Object, error) {
	if s == nil || s.client == nil {
		return Object{}, ErrNotConfigured
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return Object{}, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return Object{}, fmt.Errorf("failed to read object body: %w", err)
	}
	return Object{Data: buf.Bytes(), ContentType: aws.ToString(out.ContentType)}, nil
}

// Text downloads key and extracts its text. mime overrides the stored
// content type when set.
func (s *Store) Text(ctx context.Context, key, mime string) (string, error) {
	obj, err := s.Download(ctx, key)
	if err != nil {
		return "", err
	}
	if mime == "" {
		mime = obj.ContentType
	}
	return ExtractText(mime, obj.Data)
}
