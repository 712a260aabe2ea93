// Package pipeline sequences the triage stages for one invocation:
// locate, fetch, classify, publish.
package pipeline

import (
	"context"

	"github.com/aws/aws-lambda-go/events"

	"github.com/lynza/transcript-triage/internal/event"
	"github.com/lynza/transcript-triage/internal/queue"
	"github.com/lynza/transcript-triage/internal/sentiment"
	"github.com/lynza/transcript-triage/internal/storage"
	"github.com/lynza/transcript-triage/pkg/logging"
)

// Result is the terminal success response of an invocation.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Pipeline runs the stages in order. It holds no per-invocation state; the
// injected clients are shared read-only across invocations.
type Pipeline struct {
	fetcher   *storage.Fetcher
	publisher *queue.Publisher
	logger    *logging.Logger
}

// New wires a Pipeline from its stage dependencies.
func New(fetcher *storage.Fetcher, publisher *queue.Publisher, logger *logging.Logger) *Pipeline {
	if fetcher == nil {
		panic("pipeline: fetcher cannot be nil")
	}
	if publisher == nil {
		panic("pipeline: publisher cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Pipeline{fetcher: fetcher, publisher: publisher, logger: logger}
}

// Handle processes one trigger event end to end. Every stage failure is
// logged with its stage context and returned unchanged to the caller;
// nothing is retried or suppressed here.
func (p *Pipeline) Handle(ctx context.Context, evt events.S3Event) (Result, error) {
	loc, err := event.Locate(evt)
	if err != nil {
		p.logger.Error("malformed trigger event", "stage", "locate", "error", err)
		return Result{}, err
	}
	p.logger.Info("object notification received", "bucket", loc.Bucket, "key", loc.Key)

	payload, err := p.fetcher.FetchJSON(ctx, loc.Bucket, loc.Key)
	if err != nil {
		p.logger.Error("payload fetch failed", "stage", "fetch", "bucket", loc.Bucket, "key", loc.Key, "error", err)
		return Result{}, err
	}

	enriched, err := sentiment.Process(payload)
	if err != nil {
		p.logger.Error("transcript rejected", "stage", "classify", "bucket", loc.Bucket, "key", loc.Key, "error", err)
		return Result{}, err
	}
	p.logger.Debug("transcript classified",
		"interaction_id", enriched.InteractionID,
		"sentiment", enriched.Analysis.Sentiment,
	)

	if err := p.publisher.Publish(ctx, enriched); err != nil {
		p.logger.Error("publish failed", "stage", "publish", "interaction_id", enriched.InteractionID, "error", err)
		return Result{}, err
	}
	p.logger.Info("message sent to queue", "interaction_id", enriched.InteractionID)

	return Result{StatusCode: 200, Body: "Processed successfully"}, nil
}
