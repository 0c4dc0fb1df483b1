package http

import (
	"net/http"

	"homefront/internal/domain/income"
)

type IncomeHandler struct {
	service *income.Service
}

func NewIncomeHandler(service *income.Service) *IncomeHandler {
	return &IncomeHandler{service: service}
}

// HandleIncomes routes /api/incomes/
func (h *IncomeHandler) HandleIncomes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w)
	}
}

// HandleIncomeByID routes /api/incomes/{id}
func (h *IncomeHandler) HandleIncomeByID(w http.ResponseWriter, r *http.Request) {
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

func (h *IncomeHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	incomes, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if incomes == nil {
		incomes = []*income.Income{}
	}
	writeJSON(w, http.StatusOK, incomes)
}

func (h *IncomeHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	in, err := h.service.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (h *IncomeHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var params income.CreateParams
	if !decodeBody(w, r, &params) {
		return
	}

	in, err := h.service.Create(r.Context(), userID, params)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, in)
}

func (h *IncomeHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var params income.UpdateParams
	if !decodeBody(w, r, &params) {
		return
	}

	in, err := h.service.Update(r.Context(), userID, r.PathValue("id"), params)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (h *IncomeHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
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
