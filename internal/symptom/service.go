package symptom

import (
	"context"
	"fmt"
	"log"
	"sort"
)

// CompletionClient generates text from a prompt pair. Implementations hide
// backend parameter quirks behind this single method.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error)
}

// SearchClient resolves a query against the commerce search backend and
// returns filtered product listings.
type SearchClient interface {
	Search(ctx context.Context, query, domain string, maxResults int) ([]Product, error)
}

// Service runs a conversation through the full four-stage pipeline, or
// answers a direct symptom-text product search in a single call.
type Service interface {
	ProcessConversation(ctx context.Context, conversation string, maxResults int) PipelineResult
	SearchProducts(ctx context.Context, symptoms string, maxResults int) ProductSearchResult
}

// DefaultMaxResults is the per-medicine listing cap when the caller gives none.
const DefaultMaxResults = 5

type service struct {
	extractor   *Extractor
	recommender *Recommender
	locator     *Locator
	synthesizer *Synthesizer
	repo        Repository
}

// NewService wires the pipeline stages. repo may be nil, in which case runs
// are not recorded.
func NewService(completion CompletionClient, search SearchClient, amazonDomain string, repo Repository) Service {
	return &service{
		extractor:   NewExtractor(completion),
		recommender: NewRecommender(completion),
		locator:     NewLocator(search, amazonDomain),
		synthesizer: NewSynthesizer(completion),
		repo:        repo,
	}
}

// ProcessConversation executes the stages strictly in order, short-circuiting
// when a stage produces nothing usable. The result always carries the list of
// completed steps and a voice-ready response.
func (s *service) ProcessConversation(ctx context.Context, conversation string, maxResults int) (result PipelineResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("pipeline panic: %v", r)
			result = PipelineResult{
				Status:        StatusError,
				Message:       fmt.Sprintf("Pipeline failed: %v", r),
				Conversation:  conversation,
				PipelineSteps: []string{},
				VoiceResponse: "I'm sorry, but I encountered an error processing your request. Please try again or consult with a healthcare professional.",
			}
		}
	}()

	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	result = PipelineResult{
		Conversation:  conversation,
		PipelineSteps: []string{},
	}

	// Stage 1: symptom extraction.
	rec := s.extractor.Extract(ctx, conversation)
	result.PipelineSteps = append(result.PipelineSteps, StepSymptomExtraction)
	if len(rec.Symptoms) == 0 {
		s.finishError(&result, "No symptoms could be extracted from the conversation")
		return result
	}
	result.Symptoms = &rec

	// Stage 2: medicine recommendation.
	medicines := s.recommender.Recommend(ctx, rec)
	result.PipelineSteps = append(result.PipelineSteps, StepMedicineRecommendation)
	if len(medicines) == 0 {
		s.finishError(&result, "No medicines could be recommended for the symptoms")
		return result
	}
	result.RecommendedMedicines = medicines

	// Stage 3: product search.
	products, err := s.locator.LocateForMedicines(ctx, medicines, maxResults)
	if err != nil {
		log.Printf("product search aborted the run: %v", err)
		result.Status = StatusError
		result.Message = fmt.Sprintf("Search failed: %v", err)
		result.VoiceResponse = "I'm sorry, but I couldn't look up products for your symptoms right now. Please consult with a healthcare professional for medical advice."
		s.store(&result)
		return result
	}
	// Best-rated first; equal ratings keep their first-seen order.
	sort.SliceStable(products, func(i, j int) bool { return products[i].Rating > products[j].Rating })
	result.SearchResults = &SearchResults{
		Status:       StatusSuccess,
		TotalResults: len(products),
		Results:      products,
	}
	result.PipelineSteps = append(result.PipelineSteps, StepAmazonSearch)

	// Stage 4: response synthesis.
	natural := s.synthesizer.Synthesize(ctx, products, rec)
	result.PipelineSteps = append(result.PipelineSteps, StepResponseFormatting)

	result.Status = StatusSuccess
	result.NaturalResponse = natural
	result.VoiceResponse = natural
	s.store(&result)
	return result
}

// SearchProducts maps raw symptom text to a search query and returns the
// matching listings with a deterministic spoken summary. It skips the
// extraction and recommendation stages entirely.
func (s *service) SearchProducts(ctx context.Context, symptoms string, maxResults int) ProductSearchResult {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	products, query, err := s.locator.LocateForSymptoms(ctx, symptoms, maxResults)
	if err != nil {
		log.Printf("symptom product search failed: %v", err)
		return ProductSearchResult{
			Status:        StatusError,
			Message:       fmt.Sprintf("Failed to search for products: %v", err),
			Symptoms:      symptoms,
			SearchQuery:   query,
			Results:       []Product{},
			VoiceResponse: "I'm sorry, but I couldn't look up products for your symptoms right now. Please consult with a healthcare professional for medical advice.",
		}
	}
	sort.SliceStable(products, func(i, j int) bool { return products[i].Rating > products[j].Rating })
	if products == nil {
		products = []Product{}
	}

	return ProductSearchResult{
		Status:        StatusSuccess,
		Symptoms:      symptoms,
		SearchQuery:   query,
		TotalResults:  len(products),
		Results:       products,
		VoiceResponse: s.synthesizer.FormatListing(products, symptoms),
	}
}

func (s *service) finishError(result *PipelineResult, message string) {
	result.Status = StatusError
	result.Message = message
	result.VoiceResponse = "I'm sorry, but I couldn't process your symptoms. " + message + ". Please consult with a healthcare professional."
	s.store(result)
}

// store records the run asynchronously; persistence must never slow down or
// fail a voice reply.
func (s *service) store(result *PipelineResult) {
	if s.repo == nil {
		return
	}
	run := NewRun(*result)
	go func() {
		if err := s.repo.Save(context.Background(), run); err != nil {
			log.Printf("failed to store pipeline run: %v", err)
		}
	}()
}
