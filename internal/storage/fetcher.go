// Package storage retrieves and validates JSON payloads from S3.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of the S3 client used by Fetcher.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// RetrievalError wraps a transport-level failure while fetching an object.
// The fetch is not retried here; redelivery belongs to the trigger source.
type RetrievalError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("storage: failed to retrieve object %q from bucket %q: %v", e.Key, e.Bucket, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// NotFound reports whether the underlying cause is a missing object.
func (e *RetrievalError) NotFound() bool {
	var nsk *s3types.NoSuchKey
	return errors.As(e.Err, &nsk)
}

// EmptyObjectError indicates the object exists but holds zero bytes.
type EmptyObjectError struct {
	Bucket string
	Key    string
}

func (e *EmptyObjectError) Error() string {
	return fmt.Sprintf("storage: object %q in bucket %q is empty", e.Key, e.Bucket)
}

// MalformedJSONError indicates the object bytes are not valid JSON.
type MalformedJSONError struct {
	Key string
	Err error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("storage: object %q contains invalid JSON: %v", e.Key, e.Err)
}

func (e *MalformedJSONError) Unwrap() error { return e.Err }

// UnexpectedShapeError indicates valid JSON whose top-level value is not an
// object.
type UnexpectedShapeError struct {
	Key  string
	Kind string
}

func (e *UnexpectedShapeError) Error() string {
	return fmt.Sprintf("storage: object %q: expected a JSON object, got %s", e.Key, e.Kind)
}

// Fetcher reads JSON documents from S3. Every call performs a fresh fetch;
// nothing is cached between invocations.
type Fetcher struct {
	client S3API
}

// NewFetcher creates a Fetcher around the provided S3 client.
func NewFetcher(client S3API) *Fetcher {
	if client == nil {
		panic("storage: S3 client cannot be nil")
	}
	return &Fetcher{client: client}
}

// FetchJSON retrieves the object at (bucket, key) and parses it as a JSON
// object. The validation ladder is: non-empty bytes, syntactically valid
// JSON, object-shaped top level. Each rung fails with its own error type.
func (f *Fetcher) FetchJSON(ctx context.Context, bucket, key string) (map[string]any, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, &RetrievalError{Bucket: bucket, Key: key, Err: err}
	}
	defer out.Body.Close()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, &RetrievalError{Bucket: bucket, Key: key, Err: err}
	}

	if len(raw) == 0 {
		return nil, &EmptyObjectError{Bucket: bucket, Key: key}
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &MalformedJSONError{Key: key, Err: err}
	}

	payload, ok := parsed.(map[string]any)
	if !ok {
		return nil, &UnexpectedShapeError{Key: key, Kind: jsonKind(parsed)}
	}
	return payload, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
