package symptom

import (
	"context"
	"encoding/json"
	"log"
)

// Extractor turns free-text conversation into a structured symptom Record.
type Extractor struct {
	completion CompletionClient
}

func NewExtractor(completion CompletionClient) *Extractor {
	return &Extractor{completion: completion}
}

// Extract never fails: when the model call or its output is unusable it
// degrades to a keyword scan of the raw conversation. The returned record
// always has a non-nil symptom list.
func (e *Extractor) Extract(ctx context.Context, conversation string) Record {
	text, err := e.completion.Complete(ctx, extractionPrompt, conversation, 1.0, 300)
	if err != nil {
		log.Printf("symptom extraction degraded to keyword scan: %v", err)
		return keywordFallback(conversation, "extracted with keyword fallback: model call failed")
	}

	var rec Record
	if err := json.Unmarshal([]byte(text), &rec); err != nil {
		log.Printf("symptom extraction returned malformed JSON: %v", err)
		return keywordFallback(conversation, "extracted with keyword fallback: malformed model output")
	}

	if rec.Symptoms == nil {
		rec.Symptoms = []string{}
	}
	switch rec.Severity {
	case SeverityMild, SeverityModerate, SeveritySevere:
	default:
		rec.Severity = SeverityUnknown
	}
	return rec
}

func keywordFallback(conversation, note string) Record {
	symptoms := ScanSymptoms(conversation)
	if symptoms == nil {
		symptoms = []string{}
	}
	return Record{
		Symptoms: symptoms,
		Severity: SeverityUnknown,
		Context:  &note,
	}
}
