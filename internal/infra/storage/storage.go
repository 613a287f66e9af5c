package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/caarlos0/env/v11"
)

type StorageConfig struct {
	Bucket string `env:"S3_BUCKET" envDefault:"dirmaster-media"`
	Region string `env:"AWS_DEFAULT_REGION" envDefault:"eu-north-1"`
}

func NewStorageConfig() *StorageConfig {
	cfg := &StorageConfig{}
	if err := env.Parse(cfg); err != nil {
		slog.Error("error parsing storage config", "err", err)
	}
	return cfg
}

type Storage struct {
	client *s3.Client
	bucket string
	region string
}

func NewStorage(awsCfg aws.Config, cfg *StorageConfig) *Storage {
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return &Storage{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
	}
}

func (s *Storage) UploadFile(ctx context.Context, key string, contentType *string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading for content-type detection: %v", err)
	}

	var ct string
	if contentType == nil {
		ct = http.DetectContentType(data)
		if strings.HasSuffix(key, ".svg") {
			ct = "image/svg+xml"
		}
	} else {
		ct = *contentType
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(ct),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", err
	}

	fileURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	return fileURL, nil
}
