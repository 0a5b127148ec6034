package pinning

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Options holds connection settings for the S3-compatible backend
// (MinIO in development).
type S3Options struct {
	RootUser     string
	RootPassword string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// S3Pinner stores blobs in an S3-compatible bucket under keys derived from
// the content's SHA-256 digest, so the store behaves as content-addressed:
// identical bytes always map to the same CID.
type S3Pinner struct {
	opts   S3Options
	client *s3.Client
}

func NewS3Pinner(ctx context.Context, opts S3Options) (*S3Pinner, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.RootUser,
			opts.RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Pinner{opts: opts, client: client}, nil
}

// CIDFor derives the content identifier for a blob.
func CIDFor(content []byte) string {
	sum := sha256.Sum256(content)
	return "sha256-" + hex.EncodeToString(sum[:])
}

func storageKey(cid string) string {
	return fmt.Sprintf("pins/%s", cid)
}

func (p *S3Pinner) Put(ctx context.Context, content []byte) (string, error) {
	cid := CIDFor(content)
	key := storageKey(cid)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.opts.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(content),
	})
	if err != nil {
		return "", fmt.Errorf("pin put: %w", err)
	}

	return cid, nil
}

func (p *S3Pinner) Get(ctx context.Context, cid string) ([]byte, error) {
	key := storageKey(cid)

	out, err := p.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.opts.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("pin get: %w", err)
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("pin get: %w", err)
	}

	return content, nil
}
