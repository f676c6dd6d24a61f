package symptom

// Severity is the overall severity reported for a set of symptoms.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityUnknown  Severity = "unknown"
)

// Record holds the structured symptoms extracted from one conversation.
// It is immutable once produced by the extractor.
type Record struct {
	Symptoms []string `json:"symptoms"`
	Severity Severity `json:"severity"`
	Duration *string  `json:"duration"`
	Context  *string  `json:"context"`
}

// PriceUnavailable is the display value used when a listing carries no price.
const PriceUnavailable = "Price not available"

// Product is a single commerce listing matched to a recommended medicine.
type Product struct {
	Title        string  `json:"title"`
	Brand        string  `json:"brand"`
	Price        string  `json:"price"`
	Rating       float64 `json:"rating"`
	Reviews      int     `json:"reviews"`
	Link         string  `json:"link"`
	Thumbnail    string  `json:"thumbnail"`
	IsPrime      bool    `json:"is_prime"`
	MedicineName string  `json:"medicine_name,omitempty"`
}

// SearchResults groups the product listings for the response payload.
type SearchResults struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"total_results"`
	Results      []Product `json:"results"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Pipeline step names, in execution order.
const (
	StepSymptomExtraction      = "symptom_extraction"
	StepMedicineRecommendation = "medicine_recommendation"
	StepAmazonSearch           = "amazon_search"
	StepResponseFormatting     = "response_formatting"
)

// ProductSearchResult is the outcome of a direct symptom-text product search,
// the single-call alternative to the full pipeline.
type ProductSearchResult struct {
	Status        string    `json:"status"`
	Message       string    `json:"message,omitempty"`
	Symptoms      string    `json:"symptoms"`
	SearchQuery   string    `json:"search_query,omitempty"`
	TotalResults  int       `json:"total_results"`
	Results       []Product `json:"results"`
	VoiceResponse string    `json:"voice_response"`
}

// PipelineResult is the aggregate outcome of one conversation run. Every run,
// failed or not, carries a voice-ready response.
type PipelineResult struct {
	Status               string         `json:"status"`
	Message              string         `json:"message,omitempty"`
	Conversation         string         `json:"conversation"`
	PipelineSteps        []string       `json:"pipeline_steps"`
	Symptoms             *Record        `json:"symptoms,omitempty"`
	RecommendedMedicines []string       `json:"recommended_medicines,omitempty"`
	SearchResults        *SearchResults `json:"search_results,omitempty"`
	NaturalResponse      string         `json:"natural_response,omitempty"`
	VoiceResponse        string         `json:"voice_response"`
}
