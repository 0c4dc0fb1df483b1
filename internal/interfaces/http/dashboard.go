package http

import (
	"context"
	"net/http"

	"homefront/internal/domain/dashboard"
)

// SummaryProvider builds a user's dashboard summary.
type SummaryProvider interface {
	Summary(ctx context.Context, userID int64) (*dashboard.Summary, error)
}

type DashboardHandler struct {
	summaries SummaryProvider
}

func NewDashboardHandler(summaries SummaryProvider) *DashboardHandler {
	return &DashboardHandler{summaries: summaries}
}

// HandleDashboard returns the totals, payoff plan and next snowball targets.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	summary, err := h.summaries.Summary(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
