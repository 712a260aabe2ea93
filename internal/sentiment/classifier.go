// Package sentiment validates transcript payloads and assigns a sentiment
// label with a deterministic keyword rule.
package sentiment

import (
	"fmt"
	"strings"
)

// Label is the closed set of sentiment labels.
type Label string

const (
	LabelNegative Label = "NEGATIVE"
	LabelPositive Label = "POSITIVE"
	LabelNeutral  Label = "NEUTRAL"
)

// Keyword vocabularies, kept as data so the rule can be table-tested and the
// terms swapped without touching control flow. Order matters: the negative
// set is scanned first, so a transcript matching both vocabularies is
// labelled NEGATIVE.
var (
	negativeTerms = []string{"problem", "help", "not working", "late", "complaint"}
	positiveTerms = []string{"thanks", "excellent", "resolved", "perfect"}
)

// TranscriptRecord is a validated transcript payload. All three fields are
// required strings; nothing else is accepted in their place.
type TranscriptRecord struct {
	InteractionID string `json:"interaction_id"`
	CustomerID    string `json:"customer_id"`
	Transcript    string `json:"transcript"`
}

// Analysis holds the computed classification for a transcript.
type Analysis struct {
	Sentiment Label `json:"sentiment"`
}

// EnrichedRecord is the transcript record plus its analysis. This is the
// exact structure serialized onto the outbound queue.
type EnrichedRecord struct {
	TranscriptRecord
	Analysis Analysis `json:"analysis"`
}

// ValidationError reports a single field that failed domain validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("sentiment: invalid input data: field %q: %s", e.Field, e.Reason)
}

// Process validates the parsed payload and returns it enriched with a
// sentiment label. The original field values are echoed back unmodified.
func Process(data map[string]any) (EnrichedRecord, error) {
	record, err := validate(data)
	if err != nil {
		return EnrichedRecord{}, err
	}
	return EnrichedRecord{
		TranscriptRecord: record,
		Analysis:         Analysis{Sentiment: Classify(record.Transcript)},
	}, nil
}

// Classify assigns a label to the transcript text. Matching is
// case-insensitive substring search over the fixed vocabularies; the
// negative set takes precedence when both match. Pure function.
func Classify(text string) Label {
	lowered := strings.ToLower(text)
	for _, term := range negativeTerms {
		if strings.Contains(lowered, term) {
			return LabelNegative
		}
	}
	for _, term := range positiveTerms {
		if strings.Contains(lowered, term) {
			return LabelPositive
		}
	}
	return LabelNeutral
}

func validate(data map[string]any) (TranscriptRecord, error) {
	interactionID, err := requiredString(data, "interaction_id")
	if err != nil {
		return TranscriptRecord{}, err
	}
	customerID, err := requiredString(data, "customer_id")
	if err != nil {
		return TranscriptRecord{}, err
	}
	transcript, err := requiredString(data, "transcript")
	if err != nil {
		return TranscriptRecord{}, err
	}
	return TranscriptRecord{
		InteractionID: interactionID,
		CustomerID:    customerID,
		Transcript:    transcript,
	}, nil
}

func requiredString(data map[string]any, field string) (string, error) {
	raw, ok := data[field]
	if !ok {
		return "", &ValidationError{Field: field, Reason: "field is required"}
	}
	value, ok := raw.(string)
	if !ok {
		return "", &ValidationError{Field: field, Reason: fmt.Sprintf("expected a string, got %s", jsonTypeName(raw))}
	}
	return value, nil
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case float64:
		return "number"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
