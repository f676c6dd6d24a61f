package symptom

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Synthesizer turns product listings into one spoken-style paragraph.
type Synthesizer struct {
	completion CompletionClient
}

func NewSynthesizer(completion CompletionClient) *Synthesizer {
	return &Synthesizer{completion: completion}
}

// Synthesize always returns a speakable string ending with a professional
// consultation disclaimer. On completion failure it degrades to a
// deterministic numbered-list template.
func (s *Synthesizer) Synthesize(ctx context.Context, products []Product, rec Record) string {
	if len(products) == 0 {
		return fmt.Sprintf(
			"I couldn't find specific products for your symptoms of %s. Please consult with a healthcare professional for medical advice.",
			strings.Join(rec.Symptoms, ", "))
	}

	listing, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return s.template(products, rec)
	}

	userPrompt := fmt.Sprintf(
		"Based on these symptoms: %s (severity: %s, duration: %s)\n\nHere are the product search results:\n%s\n\nPlease create a natural, conversational response for voice communication that summarizes the recommended medicines and products.",
		strings.Join(rec.Symptoms, ", "), rec.Severity, orUnknown(rec.Duration), listing)

	text, err := s.completion.Complete(ctx, synthesisPrompt, userPrompt, 1.0, 500)
	if err != nil || strings.TrimSpace(text) == "" {
		log.Printf("response synthesis degraded to template: %v", err)
		return s.template(products, rec)
	}
	return strings.TrimSpace(text)
}

func (s *Synthesizer) template(products []Product, rec Record) string {
	return s.FormatListing(products, strings.Join(rec.Symptoms, ", "))
}

// FormatListing renders products as a deterministic spoken numbered list for
// a raw symptom description, without involving the completion backend.
func (s *Synthesizer) FormatListing(products []Product, symptoms string) string {
	if len(products) == 0 {
		return fmt.Sprintf(
			"I couldn't find any products specifically for %s. You might want to consult with a healthcare professional for medical advice.",
			symptoms)
	}

	parts := make([]string, 0, len(products)+2)
	parts = append(parts, fmt.Sprintf("Based on your symptoms of %s, I found %d product recommendations:",
		symptoms, len(products)))

	for i, p := range products {
		var rating, price string
		if p.Rating > 0 {
			rating = fmt.Sprintf(" with a %g star rating from %d reviews", p.Rating, p.Reviews)
		}
		if p.Price != PriceUnavailable && p.Price != "" {
			price = fmt.Sprintf(" for %s", p.Price)
		}
		parts = append(parts, fmt.Sprintf("%d. %s%s%s.", i+1, p.Title, rating, price))
	}

	parts = append(parts, "These are general recommendations. Please consult with a healthcare professional for medical advice, especially if symptoms persist or worsen.")
	return strings.Join(parts, " ")
}
