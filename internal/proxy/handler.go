package proxy

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/honeycarbs/occupation-insights/pkg/logging"
)

// DatasetRoute is where the dataset is served
const DatasetRoute = "/api/soc-analysis"

const (
	notFoundMessage   = "SOC analysis results not found. Please run the analysis first."
	loadFailedMessage = "Failed to load SOC analysis results"
)

type errorBody struct {
	Error string `json:"error"`
}

// Handler serves the dataset from a Source
type Handler struct {
	source Source
	logger *logging.Logger
}

func NewHandler(source Source, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{source: source, logger: logger.Named("proxy")}
}

// Register mounts the dataset route on r
func (h *Handler) Register(r chi.Router) {
	r.Get(DatasetRoute, h.handleDataset)
}

func (h *Handler) handleDataset(w http.ResponseWriter, r *http.Request) {
	results, err := h.source.Load(r.Context())
	if err != nil {
		if errors.Is(err, ErrResultsNotFound) {
			h.logger.Warn("dataset missing", "err", err)
			WriteJSON(w, http.StatusNotFound, errorBody{Error: notFoundMessage})
			return
		}
		h.logger.Error("failed to load dataset", "err", err)
		WriteJSON(w, http.StatusInternalServerError, errorBody{Error: loadFailedMessage})
		return
	}

	h.logger.Debug("serving dataset", "codes", results.Len())
	WriteJSON(w, http.StatusOK, results)
}

// WriteJSON encodes v with the given status
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a {"error": msg} body
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorBody{Error: msg})
}
