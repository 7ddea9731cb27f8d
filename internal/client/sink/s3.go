package sink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/assetbrowser/internal/filex"
)

// S3Config selects the bucket downloads are uploaded to. Endpoint,
// AccessKey and SecretKey are optional; without them the default AWS
// endpoint and credential chain are used.
type S3Config struct {
	Bucket    string `json:"bucket"`
	Region    string `json:"region"`
	Endpoint  string `json:"endpoint"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	Prefix    string `json:"prefix"`
}

// PutObjectAPI is the part of the S3 client S3Sink uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

// S3Sink uploads triggered downloads to s3://<bucket>/<prefix><filename>.
type S3Sink struct {
	api     PutObjectAPI
	bucket  string
	prefix  string
	client  *http.Client
	objects ObjectURLs
}

// NewS3Sink builds an S3 client from cfg.
func NewS3Sink(ctx context.Context, cfg S3Config, client *http.Client, objects ObjectURLs) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 sink: bucket is required")
	}

	opts := []func(*config.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3 sink: load aws config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3SinkWithAPI(api, cfg.Bucket, cfg.Prefix, client, objects), nil
}

// NewS3SinkWithAPI wraps an existing S3 client. client and objects are
// used as in NewFileSink.
func NewS3SinkWithAPI(api PutObjectAPI, bucket, prefix string, client *http.Client, objects ObjectURLs) *S3Sink {
	return &S3Sink{api: api, bucket: bucket, prefix: prefix, client: client, objects: objects}
}

func (s *S3Sink) Trigger(ctx context.Context, url, filename string) error {
	name := filex.SafeName(filename)
	if name == "" {
		name = ArchiveFilename(url)
	}

	src, err := open(ctx, s.client, s.objects, url)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer src.Close()

	// PutObject signs the payload, so the body has to be seekable.
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	in := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.Key(name)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		in.ContentType = aws.String(ct)
	}

	if _, err := s.api.PutObject(ctx, in); err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	return nil
}

// Key returns the object key a file named name is stored under.
func (s *S3Sink) Key(name string) string {
	return s.prefix + name
}
