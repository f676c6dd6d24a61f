package symptom

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handler struct {
	svc  Service
	repo Repository
}

// NewHandler builds the HTTP handler. repo may be nil when run history is
// disabled.
func NewHandler(svc Service, repo Repository) *Handler {
	return &Handler{svc: svc, repo: repo}
}

type processRequest struct {
	Conversation string `json:"conversation"`
	MaxResults   int    `json:"max_results"`
}

type webhookArgs struct {
	Conversation string `json:"conversation"`
	Symptoms     string `json:"symptoms"`
	MaxResults   int    `json:"max_results"`
}

type functionCall struct {
	Name      string      `json:"name"`
	Arguments webhookArgs `json:"arguments"`
}

type webhookRequest struct {
	FunctionCall *functionCall `json:"functionCall"`
}

// Info describes the service and its routes for anyone probing the root URL.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":     "Symptom Search Pipeline",
		"version":     "2.0.0",
		"description": "Multi-layer pipeline for symptom extraction, medicine recommendation, and natural language response generation",
		"endpoints": map[string]string{
			"health":               "/health",
			"process_conversation": "/process_conversation",
			"webhook":              "/webhook",
			"runs":                 "/runs",
		},
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "symptom-search-pipeline",
	})
}

func (h *Handler) ProcessConversation(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Conversation == "" {
		writeError(w, http.StatusBadRequest, "Conversation parameter is required")
		return
	}

	log.Printf("processing conversation: %s", truncate(req.Conversation, 100))
	result := h.svc.ProcessConversation(r.Context(), req.Conversation, req.MaxResults)
	log.Printf("pipeline completed with status: %s", result.Status)
	writeJSON(w, http.StatusOK, result)
}

// Webhook handles the call platform's function-call envelope, dispatching by
// function name.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.FunctionCall == nil {
		writeError(w, http.StatusBadRequest, "No function call found in request")
		return
	}
	args := req.FunctionCall.Arguments
	switch req.FunctionCall.Name {
	case "process_symptom_conversation":
		if args.Conversation == "" {
			writeError(w, http.StatusBadRequest, "Conversation parameter is required")
			return
		}
		log.Printf("processing function call %s: %s", req.FunctionCall.Name, truncate(args.Conversation, 100))
		result := h.svc.ProcessConversation(r.Context(), args.Conversation, args.MaxResults)
		writeJSON(w, http.StatusOK, result)
	case "search_products_for_symptoms":
		if args.Symptoms == "" {
			writeError(w, http.StatusBadRequest, "Symptoms parameter is required")
			return
		}
		log.Printf("processing function call %s: %s", req.FunctionCall.Name, truncate(args.Symptoms, 100))
		result := h.svc.SearchProducts(r.Context(), args.Symptoms, args.MaxResults)
		writeJSON(w, http.StatusOK, result)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown function: %s", req.FunctionCall.Name))
	}
}

func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		writeError(w, http.StatusServiceUnavailable, "Run history is not available")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid run ID")
		return
	}

	run, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "Run not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load run")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		writeError(w, http.StatusServiceUnavailable, "Run history is not available")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	runs, err := h.repo.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs")
		return
	}
	if runs == nil {
		runs = []Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.Info)
	r.Get("/health", h.Health)
	r.Post("/process_conversation", h.ProcessConversation)
	r.Post("/webhook", h.Webhook)
	r.Get("/runs", h.ListRuns)
	r.Get("/runs/{id}", h.GetRun)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

// writeError keeps the contract that every reply, even a rejected request,
// carries something speakable.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"status":         StatusError,
		"message":        message,
		"voice_response": "I'm sorry, but I couldn't process your request. Please try again or consult with a healthcare professional.",
	})
}

// truncate shortens log excerpts without splitting a multi-byte rune.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
