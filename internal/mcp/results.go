package mcp

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/honeycarbs/occupation-insights/internal/handoff"
	"github.com/honeycarbs/occupation-insights/internal/proxy"
	"github.com/honeycarbs/occupation-insights/pkg/logging"
)

// SessionHeader carries the handoff session on results requests
const SessionHeader = "X-Session-ID"

const noResultsMessage = "No analysis results for this session. Please search again."

type resultsHandler struct {
	store  handoff.Store
	logger *logging.Logger
}

// handle returns the report handed off for the session, but only when it
// belongs to the requested occupation.
func (h resultsHandler) handle(w http.ResponseWriter, r *http.Request) {
	socCode := chi.URLParam(r, "socCode")
	if r.URL.RawPath != "" {
		// chi matched against the escaped path
		unescaped, err := url.PathUnescape(socCode)
		if err != nil {
			proxy.WriteError(w, http.StatusBadRequest, "invalid SOC code")
			return
		}
		socCode = unescaped
	}

	session := strings.TrimSpace(r.Header.Get(SessionHeader))
	if session == "" {
		session = strings.TrimSpace(r.URL.Query().Get("session"))
	}
	if session == "" {
		proxy.WriteError(w, http.StatusBadRequest, "missing session")
		return
	}

	report, err := h.store.Load(r.Context(), session)
	if err != nil {
		if errors.Is(err, handoff.ErrNotFound) {
			proxy.WriteError(w, http.StatusNotFound, noResultsMessage)
			return
		}
		h.logger.Error("failed to read handoff slot", "err", err, "session", session)
		proxy.WriteError(w, http.StatusInternalServerError, "Failed to load analysis results")
		return
	}

	if report.SOCCode != socCode {
		h.logger.Debug("handoff slot holds another occupation", "want", socCode, "have", report.SOCCode)
		proxy.WriteError(w, http.StatusNotFound, noResultsMessage)
		return
	}

	proxy.WriteJSON(w, http.StatusOK, report)
}
