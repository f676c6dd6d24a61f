package symptom

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Recommender maps a symptom Record to over-the-counter medicine names.
type Recommender struct {
	completion CompletionClient
}

func NewRecommender(completion CompletionClient) *Recommender {
	return &Recommender{completion: completion}
}

// Recommend returns medicine names in priority order, deduplicated. When the
// model call fails or returns anything other than a JSON array of strings it
// degrades to the static symptom-to-medicine table.
func (r *Recommender) Recommend(ctx context.Context, rec Record) []string {
	if len(rec.Symptoms) == 0 {
		return nil
	}

	userPrompt := fmt.Sprintf("Symptoms: %s\nSeverity: %s\nDuration: %s",
		strings.Join(rec.Symptoms, ", "), rec.Severity, orUnknown(rec.Duration))

	text, err := r.completion.Complete(ctx, recommendationPrompt, userPrompt, 1.0, 200)
	if err != nil {
		log.Printf("medicine recommendation degraded to static table: %v", err)
		return MapMedicines(rec.Symptoms)
	}

	var medicines []string
	if err := json.Unmarshal([]byte(text), &medicines); err != nil {
		log.Printf("medicine recommendation returned malformed JSON: %v", err)
		return MapMedicines(rec.Symptoms)
	}
	return dedupeMedicines(medicines)
}

func orUnknown(s *string) string {
	if s == nil || *s == "" {
		return "unknown"
	}
	return *s
}
