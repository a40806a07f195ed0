// Package storage is the object storage gateway. All image bytes live in S3;
// documents only carry opaque keys minted here.
package storage

//go generate: mockery --name ObjectStorage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/driveline/vehicle-inspection-api/config"
)

// Default lifetimes for presigned URLs. Downloads are long-lived so report
// links keep working for a week; upload slots expire within a day.
const (
	DownloadURLExpiry = 7 * 24 * time.Hour
	UploadURLExpiry   = 24 * time.Hour
)

// PresignedUpload is a minted upload slot: the client PUTs to URL and the
// caller attaches Key to a document afterwards
type PresignedUpload struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// ObjectStorage contains the object storage operations used by the handlers
// and the audit scheduler. Delete is best-effort at every call site: callers
// log failures and move on rather than failing the enclosing operation.
type ObjectStorage interface {
	Upload(ctx context.Context, body io.Reader, originalName, folder, mimeType string) (string, error)
	SignedURL(ctx context.Context, key string) (string, error)
	PresignUpload(ctx context.Context, fileName, mimeType, folder string) (PresignedUpload, error)
	Delete(ctx context.Context, key string) error
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}

type s3Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// New builds the S3-backed object storage from the project config
func New(ctx context.Context, conf *config.Config) (ObjectStorage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(conf.AWSRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AWSAccessKey, conf.AWSSecretKey, ""),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg)
	return &s3Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  conf.AWSBucket,
	}, nil
}

// buildKey mints a collision-free object key without any coordination
func buildKey(folder, fileName string) string {
	if folder == "" {
		return fmt.Sprintf("%s-%s", uuid.New().String(), fileName)
	}
	return fmt.Sprintf("%s/%s-%s", folder, uuid.New().String(), fileName)
}

func (s *s3Storage) Upload(ctx context.Context, body io.Reader, originalName, folder, mimeType string) (string, error) {
	key := buildKey(folder, originalName)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *s3Storage) SignedURL(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(DownloadURLExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (s *s3Storage) PresignUpload(ctx context.Context, fileName, mimeType, folder string) (PresignedUpload, error) {
	key := buildKey(folder, fileName)

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(mimeType),
	}, s3.WithPresignExpires(UploadURLExpiry))
	if err != nil {
		return PresignedUpload{}, err
	}
	return PresignedUpload{URL: req.URL, Key: key}, nil
}

func (s *s3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *s3Storage) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}
