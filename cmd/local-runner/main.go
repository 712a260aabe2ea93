// Command local-runner exercises the pipeline against LocalStack: it ensures
// the drop bucket exists, uploads the sample payload under a fresh key,
// synthesizes the matching S3 notification, and runs the pipeline in-process.
package main

import (
	"bytes"
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/lynza/transcript-triage/internal/awsconn"
	appconfig "github.com/lynza/transcript-triage/internal/config"
	"github.com/lynza/transcript-triage/internal/pipeline"
	"github.com/lynza/transcript-triage/internal/queue"
	"github.com/lynza/transcript-triage/internal/storage"
	"github.com/lynza/transcript-triage/pkg/logging"
)

const (
	defaultBucket         = "transcript-drop"
	payloadPath           = "testdata/sample_payload.json"
	defaultRunnerEndpoint = "http://localhost:4566"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	if cfg.AWSEndpointOverride == "" {
		cfg.AWSEndpointOverride = defaultRunnerEndpoint
	}
	logger := logging.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	awsCfg, err := awsconn.Load(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	bucket := os.Getenv("TRIAGE_BUCKET")
	if bucket == "" {
		bucket = defaultBucket
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// LocalStack serves buckets on the root endpoint, not per-bucket hosts.
		o.UsePathStyle = true
	})

	key, err := uploadSample(ctx, s3Client, bucket)
	if err != nil {
		logger.Error("failed to upload sample payload", "bucket", bucket, "error", err)
		os.Exit(1)
	}
	logger.Info("sample payload uploaded", "bucket", bucket, "key", key)

	fetcher := storage.NewFetcher(s3Client)
	publisher := queue.NewPublisher(sqs.NewFromConfig(awsCfg), cfg.QueueURL)
	pipe := pipeline.New(fetcher, publisher, logger)

	evt := events.S3Event{Records: []events.S3EventRecord{{
		S3: events.S3Entity{
			Bucket: events.S3Bucket{Name: bucket},
			Object: events.S3Object{Key: key},
		},
	}}}

	result, err := pipe.Handle(ctx, evt)
	if err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}
	logger.Info("pipeline finished", "status", result.StatusCode, "body", result.Body)
}

// uploadSample ensures the bucket exists and stores the sample payload under
// a unique key, returning that key.
func uploadSample(ctx context.Context, client *s3.Client, bucket string) (string, error) {
	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
		if _, err := client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)}); err != nil {
			return "", err
		}
	}

	payload, err := os.ReadFile(payloadPath)
	if err != nil {
		return "", err
	}

	key := "incoming/" + uuid.NewString() + ".json"
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", err
	}
	return key, nil
}
