package sentiment

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Label
	}{
		{"negative keyword", "I have a problem with my order and need urgent help", LabelNegative},
		{"positive keyword", "Thanks, excellent service. Order resolved", LabelPositive},
		{"no keywords", "Just want to confirm order status", LabelNeutral},
		{"case insensitive negative", "MY ORDER IS LATE", LabelNegative},
		{"multi-word negative term", "the app is NOT WORKING at all", LabelNegative},
		{"negative wins over positive", "Thanks for nothing, I want to file a complaint", LabelNegative},
		{"negative wins even when positive appears first", "Excellent start, but now nothing works and I need help", LabelNegative},
		{"empty text", "", LabelNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	text := "Thanks, excellent service. Order resolved"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(text))
	}
}

func TestProcessEchoesFieldsVerbatim(t *testing.T) {
	// Mixed case on purpose: the transcript must come back untouched even
	// though classification lower-cases a copy.
	payload := map[string]any{
		"interaction_id": "CHAT-9000",
		"customer_id":    "CUST-9000",
		"transcript":     "ThAnKs, EXCELLENT service",
	}

	enriched, err := Process(payload)
	require.NoError(t, err)
	assert.Equal(t, "CHAT-9000", enriched.InteractionID)
	assert.Equal(t, "CUST-9000", enriched.CustomerID)
	assert.Equal(t, "ThAnKs, EXCELLENT service", enriched.Transcript)
	assert.Equal(t, LabelPositive, enriched.Analysis.Sentiment)
}

func TestProcessRejectsInvalidPayloads(t *testing.T) {
	valid := func() map[string]any {
		return map[string]any{
			"interaction_id": "CHAT-1",
			"customer_id":    "CUST-1",
			"transcript":     "hello",
		}
	}

	tests := []struct {
		name       string
		mutate     func(map[string]any)
		wantField  string
		wantReason string
	}{
		{
			name:      "missing interaction_id",
			mutate:    func(m map[string]any) { delete(m, "interaction_id") },
			wantField: "interaction_id",
		},
		{
			name:      "missing customer_id",
			mutate:    func(m map[string]any) { delete(m, "customer_id") },
			wantField: "customer_id",
		},
		{
			name:      "missing transcript",
			mutate:    func(m map[string]any) { delete(m, "transcript") },
			wantField: "transcript",
		},
		{
			name:       "numeric interaction_id",
			mutate:     func(m map[string]any) { m["interaction_id"] = float64(12) },
			wantField:  "interaction_id",
			wantReason: "expected a string, got number",
		},
		{
			name:       "null transcript",
			mutate:     func(m map[string]any) { m["transcript"] = nil },
			wantField:  "transcript",
			wantReason: "expected a string, got null",
		},
		{
			name:       "object customer_id",
			mutate:     func(m map[string]any) { m["customer_id"] = map[string]any{"id": "CUST-1"} },
			wantField:  "customer_id",
			wantReason: "expected a string, got object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := valid()
			tt.mutate(payload)

			_, err := Process(payload)
			var validation *ValidationError
			require.True(t, errors.As(err, &validation), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, validation.Field)
			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, validation.Reason)
			}
			assert.Contains(t, validation.Error(), tt.wantField)
		})
	}
}

func TestEnrichedRecordWireShape(t *testing.T) {
	enriched, err := Process(map[string]any{
		"interaction_id": "CHAT-42",
		"customer_id":    "CUST-42",
		"transcript":     "all good",
	})
	require.NoError(t, err)

	data, err := json.Marshal(enriched)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, "CHAT-42", wire["interaction_id"])
	assert.Equal(t, "CUST-42", wire["customer_id"])
	assert.Equal(t, "all good", wire["transcript"])
	assert.Equal(t, map[string]any{"sentiment": "NEUTRAL"}, wire["analysis"])
	assert.Len(t, wire, 4)
}
