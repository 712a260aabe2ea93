package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/lynza/transcript-triage/internal/awsconn"
	appconfig "github.com/lynza/transcript-triage/internal/config"
	"github.com/lynza/transcript-triage/internal/pipeline"
	"github.com/lynza/transcript-triage/internal/queue"
	"github.com/lynza/transcript-triage/internal/storage"
	"github.com/lynza/transcript-triage/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	awsCfg, err := awsconn.Load(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	fetcher := storage.NewFetcher(s3.NewFromConfig(awsCfg))
	publisher := queue.NewPublisher(sqs.NewFromConfig(awsCfg), cfg.QueueURL)
	pipe := pipeline.New(fetcher, publisher, logger)

	lambda.Start(func(ctx context.Context, evt events.S3Event) (pipeline.Result, error) {
		return pipe.Handle(ctx, evt)
	})
}
