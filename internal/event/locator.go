// Package event extracts storage coordinates from inbound S3 notifications.
package event

import (
	"github.com/aws/aws-lambda-go/events"
)

// StructuralError indicates the trigger event itself is malformed: an empty
// record list or a record without the expected bucket/key fields. It is
// distinct from payload validation failures raised later in the pipeline.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return "event: invalid trigger structure: " + e.Reason
}

// ObjectLocation identifies a single stored object.
type ObjectLocation struct {
	Bucket string
	Key    string
}

// Locate returns the bucket name and object key carried by the first record
// of the trigger event. The key is passed through verbatim, not URL-decoded.
func Locate(evt events.S3Event) (ObjectLocation, error) {
	if len(evt.Records) == 0 {
		return ObjectLocation{}, &StructuralError{Reason: "event contains no records"}
	}

	record := evt.Records[0]
	loc := ObjectLocation{
		Bucket: record.S3.Bucket.Name,
		Key:    record.S3.Object.Key,
	}
	if loc.Bucket == "" {
		return ObjectLocation{}, &StructuralError{Reason: "record is missing the bucket name"}
	}
	if loc.Key == "" {
		return ObjectLocation{}, &StructuralError{Reason: "record is missing the object key"}
	}
	return loc, nil
}
