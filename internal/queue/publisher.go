// Package queue publishes enriched records to the outbound SQS queue.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSAPI is the subset of the SQS client used by Publisher.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// ConfigurationError indicates a required setting is absent. This is a
// deployment defect, not a per-message condition.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return "queue: missing required configuration: " + e.Setting
}

// SerializationError indicates the record could not be rendered as JSON.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("queue: failed to serialize message body: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// DispatchError wraps a transport-level publish failure. Not retried here.
type DispatchError struct {
	QueueURL string
	Err      error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("queue: failed to send message to %s: %v", e.QueueURL, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// Publisher sends one message per call to a fixed queue URL.
type Publisher struct {
	client   SQSAPI
	queueURL string
}

// NewPublisher creates a Publisher around the provided SQS client. An empty
// queueURL is tolerated here and rejected on Publish, so a misconfigured
// deployment fails per invocation with a ConfigurationError rather than at
// construction.
func NewPublisher(client SQSAPI, queueURL string) *Publisher {
	if client == nil {
		panic("queue: SQS client cannot be nil")
	}
	return &Publisher{client: client, queueURL: queueURL}
}

// Publish serializes the record and enqueues it. The configuration check
// runs before any serialization attempt.
func (p *Publisher) Publish(ctx context.Context, record any) error {
	if p.queueURL == "" {
		return &ConfigurationError{Setting: "SQS_QUEUE_URL"}
	}

	body, err := json.Marshal(record)
	if err != nil {
		return &SerializationError{Err: err}
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return &DispatchError{QueueURL: p.queueURL, Err: err}
	}
	return nil
}
