package symptom

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize_NoProductsReturnsApology(t *testing.T) {
	completion := &fakeCompletion{reply: "should not be called"}
	synthesizer := NewSynthesizer(completion)

	got := synthesizer.Synthesize(context.Background(), nil, Record{
		Symptoms: []string{"headache", "fever"},
	})

	assert.Contains(t, got, "headache, fever")
	assert.Contains(t, got, "healthcare professional")
	assert.Zero(t, completion.calls)
}

func TestSynthesize_UsesModelParagraph(t *testing.T) {
	completion := &fakeCompletion{reply: "For your headache I'd suggest Tylenol, rated 4.8 stars. Please consult a healthcare professional."}
	synthesizer := NewSynthesizer(completion)

	products := []Product{{Title: "Tylenol", Price: "$9.99", Rating: 4.8, Reviews: 1200}}
	got := synthesizer.Synthesize(context.Background(), products, Record{Symptoms: []string{"headache"}})

	assert.Equal(t, completion.reply, got)
	require.Len(t, completion.userPrompts, 1)
	assert.Contains(t, completion.userPrompts[0], "headache")
	assert.Contains(t, completion.userPrompts[0], "Tylenol")
}

func TestSynthesize_CompletionFailureFallsBackToTemplate(t *testing.T) {
	completion := &fakeCompletion{err: fmt.Errorf("backend down")}
	synthesizer := NewSynthesizer(completion)

	products := []Product{
		{Title: "Tylenol Extra Strength", Price: "$9.99", Rating: 4.8, Reviews: 1200},
		{Title: "Advil Tablets", Price: PriceUnavailable, Rating: 4.7, Reviews: 900},
	}
	got := synthesizer.Synthesize(context.Background(), products, Record{Symptoms: []string{"headache"}})

	assert.Contains(t, got, "Based on your symptoms of headache, I found 2 product recommendations:")
	assert.Contains(t, got, "1. Tylenol Extra Strength with a 4.8 star rating from 1200 reviews for $9.99.")
	// Price clause is omitted when no price is known.
	assert.Contains(t, got, "2. Advil Tablets with a 4.7 star rating from 900 reviews.")
	assert.Contains(t, got, "healthcare professional")
}

func TestSynthesize_BlankModelReplyFallsBackToTemplate(t *testing.T) {
	completion := &fakeCompletion{reply: "   "}
	synthesizer := NewSynthesizer(completion)

	products := []Product{{Title: "Tylenol", Rating: 4.8, Reviews: 100}}
	got := synthesizer.Synthesize(context.Background(), products, Record{Symptoms: []string{"headache"}})

	assert.Contains(t, got, "1. Tylenol")
	assert.Contains(t, got, "healthcare professional")
}

func TestFormatListing(t *testing.T) {
	synthesizer := NewSynthesizer(&fakeCompletion{})

	got := synthesizer.FormatListing(nil, "headache and fever")
	assert.Equal(t, "I couldn't find any products specifically for headache and fever. You might want to consult with a healthcare professional for medical advice.", got)

	products := []Product{{Title: "Tylenol", Price: "$9.99", Rating: 4.8, Reviews: 1200}}
	got = synthesizer.FormatListing(products, "headache and fever")
	assert.Contains(t, got, "Based on your symptoms of headache and fever, I found 1 product recommendations:")
	assert.Contains(t, got, "1. Tylenol with a 4.8 star rating from 1200 reviews for $9.99.")
	assert.Contains(t, got, "symptoms persist or worsen")
}
