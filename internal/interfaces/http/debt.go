package http

import (
	"net/http"

	"homefront/internal/domain/debt"
)

type DebtHandler struct {
	service *debt.Service
}

func NewDebtHandler(service *debt.Service) *DebtHandler {
	return &DebtHandler{service: service}
}

// HandleDebts routes /api/debts/
func (h *DebtHandler) HandleDebts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w)
	}
}

// HandleDebtByID routes /api/debts/{id}
func (h *DebtHandler) HandleDebtByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPatch:
		h.handleUpdate(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *DebtHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	debts, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if debts == nil {
		debts = []*debt.Debt{}
	}
	writeJSON(w, http.StatusOK, debts)
}

func (h *DebtHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	d, err := h.service.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DebtHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var params debt.CreateParams
	if !decodeBody(w, r, &params) {
		return
	}

	d, err := h.service.Create(r.Context(), userID, params)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *DebtHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var params debt.UpdateParams
	if !decodeBody(w, r, &params) {
		return
	}

	d, err := h.service.Update(r.Context(), userID, r.PathValue("id"), params)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DebtHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
