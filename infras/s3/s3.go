package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"lagoon/config"
	"lagoon/infras/otel"
	"lagoon/shared/constant"
)

const (
	otelAttrObjectName = "object_name"
	otelAttrBucket     = "bucket"
)

type S3 interface {
	UploadFile(ctx context.Context, bucketName, directory, fileName, contentType string, body io.Reader) (url string, err error)
	DownloadFile(ctx context.Context, bucketName, directory, objectName string) (data []byte, contentType string, err error)
	DeleteFile(ctx context.Context, bucketName, directory, objectName string) error
	GetObjectNameFromURL(bucketName, url string) (objectName string)
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) S3 {
	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(cfg.External.S3.Region),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.External.S3.AccessKey,
			cfg.External.S3.SecretKey,
			constant.Empty,
		)),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		if cfg.External.S3.Endpoint != constant.Empty {
			options.BaseEndpoint = aws.String(cfg.External.S3.Endpoint)
			options.UsePathStyle = true
		}
	})

	log.Info().
		Str("bucket", cfg.External.S3.BucketName).
		Str("region", cfg.External.S3.Region).
		Msg("S3 client initialized")

	return &s3Impl{
		Client: client,
		Config: cfg,
		otel:   otl,
	}
}

func (svc *s3Impl) UploadFile(ctx context.Context, bucketName, directory, fileName, contentType string, body io.Reader) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFile")
	defer scope.End()
	defer scope.TraceIfError(err)

	if bucketName == constant.Empty {
		bucketName = svc.Config.External.S3.BucketName
	}

	objectKey := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectName: objectKey,
		otelAttrBucket:     bucketName,
	})

	buf := bytes.NewBuffer(nil)
	if _, err = io.Copy(buf, body); err != nil {
		return constant.Empty, fmt.Errorf("failed to read file contents: %w", err)
	}

	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload object to S3")

		return constant.Empty, fmt.Errorf("failed to upload object: %w", err)
	}

	return svc.buildObjectURL(bucketName, objectKey), nil
}

func (svc *s3Impl) DownloadFile(ctx context.Context, bucketName, directory, objectName string) (data []byte, contentType string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DownloadFile")
	defer scope.End()
	defer scope.TraceIfError(err)

	if bucketName == constant.Empty {
		bucketName = svc.Config.External.S3.BucketName
	}

	objectKey := path.Join(directory, objectName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectName: objectKey,
		otelAttrBucket:     bucketName,
	})

	output, err := svc.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to get object from S3")

		return nil, constant.Empty, fmt.Errorf("failed to get object: %w", err)
	}
	defer output.Body.Close()

	data, err = io.ReadAll(output.Body)
	if err != nil {
		return nil, constant.Empty, fmt.Errorf("failed to read object body: %w", err)
	}

	if output.ContentType != nil {
		contentType = *output.ContentType
	}

	return data, contentType, nil
}

func (svc *s3Impl) DeleteFile(ctx context.Context, bucketName, directory, objectName string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteFile")
	defer scope.End()
	defer scope.TraceIfError(err)

	if bucketName == constant.Empty {
		bucketName = svc.Config.External.S3.BucketName
	}

	objectKey := path.Join(directory, objectName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectName: objectKey,
		otelAttrBucket:     bucketName,
	})

	_, err = svc.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to delete object from S3")

		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// GetObjectNameFromURL extracts the object name from a previously built URL.
// Returns an empty string when the URL does not belong to the given bucket.
func (svc *s3Impl) GetObjectNameFromURL(bucketName, url string) string {
	if bucketName == constant.Empty {
		bucketName = svc.Config.External.S3.BucketName
	}

	marker := bucketName + "/"

	idx := strings.Index(url, marker)
	if idx == -1 {
		if idx = strings.Index(url, ".amazonaws.com/"); idx == -1 {
			return constant.Empty
		}

		return url[idx+len(".amazonaws.com/"):]
	}

	return url[idx+len(marker):]
}

func (svc *s3Impl) buildObjectURL(bucketName, objectKey string) string {
	endpoint := svc.Config.External.S3.Endpoint
	if endpoint != constant.Empty {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(endpoint, "/"), bucketName, objectKey)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucketName, svc.Config.External.S3.Region, objectKey)
}
