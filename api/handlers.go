package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"prodgen/listing"
	"prodgen/pipeline"

	"go.uber.org/zap"
)

const (
	welcomeMessage = "Welcome to the AI Product Description API"
	maxRequestBody = 1 << 20
)

// Processor turns a product description into a listing.
type Processor interface {
	Process(ctx context.Context, product pipeline.ProductInput) (listing.Listing, error)
}

// ProcessRequest is the body of POST /process/.
type ProcessRequest struct {
	Prompt      string   `json:"prompt"`
	Description string   `json:"description,omitempty"`
	Variation   string   `json:"variation,omitempty"`
	Pricing     *float64 `json:"pricing,omitempty"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type Handlers struct {
	processor Processor
	logger    *zap.Logger
}

func NewHandlers(processor Processor, logger *zap.Logger) *Handlers {
	return &Handlers{processor: processor, logger: logger}
}

func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Process handles POST /process/. Validation failures are 422, a reply the
// model did not format as JSON is 400, anything else is 500.
func (h *Handlers) Process(w http.ResponseWriter, r *http.Request) {
	logger := pipeline.GetContextLogger(r.Context(), h.logger)

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()

	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "missing prompt parameter"})
		return
	}

	product := pipeline.ProductInput{
		Name:        req.Prompt,
		Description: req.Description,
		Variation:   req.Variation,
		Pricing:     req.Pricing,
	}

	result, err := h.processor.Process(r.Context(), product)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, result)
	case errors.Is(err, listing.ErrMalformedOutput):
		logger.Warn("model returned malformed output", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Invalid JSON format"})
	default:
		logger.Error("failed to process product", zap.String("product", req.Prompt), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
