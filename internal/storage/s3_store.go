package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"wonderscape/internal/common"
	"wonderscape/internal/config"
)

type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Store keeps blobs in an S3-compatible bucket (MinIO in development).
// References are object keys; URLs are short-lived presigned GETs.
type S3Store struct {
	objects  objectAPI
	presign  presignAPI
	bucket   string
	urlTTL   time.Duration
	keyMaker func() string
}

var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

func NewS3Store(ctx context.Context, cfg config.StorageConfig) (*S3Store, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	ttl := time.Duration(cfg.S3URLTTL) * time.Minute
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &S3Store{
		objects:  client,
		presign:  s3.NewPresignClient(client),
		bucket:   cfg.S3Bucket,
		urlTTL:   ttl,
		keyMaker: RandomStorageKey,
	}, nil
}

// RandomStorageKey spreads objects by upload date.
func RandomStorageKey() string {
	d := time.Now().UTC()
	return fmt.Sprintf("videos/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *S3Store) Put(ctx context.Context, name, contentType string, uploader uint64, size int64, r io.Reader) (string, error) {
	if contentType == "" {
		contentType = common.DefaultContentType
	}
	key := s.keyMaker()

	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"filename":    name,
			"file-type":   common.DetectFileType(contentType).String(),
			"uploaded-by": fmt.Sprintf("%d", uploader),
		},
	}
	if size >= 0 {
		in.ContentLength = aws.Int64(size)
	}

	// request bodies are streamed, so the payload cannot be hashed up front
	_, err := s.objects.PutObject(ctx, in, s3.WithAPIOptions(v4.SwapComputePayloadSHA256ForUnsignedPayloadMiddleware))
	if err != nil {
		return "", fmt.Errorf("s3 put: %w", err)
	}
	return key, nil
}

func (s *S3Store) URL(ctx context.Context, ref string) (string, bool, error) {
	if ref == "" {
		return "", false, nil
	}

	_, err := s.objects.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		var nf *types.NotFound
		var nsk *types.NoSuchKey
		if errors.As(err, &nf) || errors.As(err, &nsk) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("s3 head: %w", err)
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	}, s3.WithPresignExpires(s.urlTTL))
	if err != nil {
		return "", false, fmt.Errorf("s3 presign: %w", err)
	}
	return req.URL, true, nil
}
