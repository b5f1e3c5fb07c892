package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type LeadHandler struct {
	ListUC   *usecase.ListLeadsUseCase
	GetUC    *usecase.GetLeadUseCase
	CreateUC *usecase.CreateLeadUseCase
	UpdateUC *usecase.UpdateLeadUseCase
	DeleteUC *usecase.DeleteLeadUseCase
}

func NewLeadHandler(
	listUC *usecase.ListLeadsUseCase,
	getUC *usecase.GetLeadUseCase,
	createUC *usecase.CreateLeadUseCase,
	updateUC *usecase.UpdateLeadUseCase,
	deleteUC *usecase.DeleteLeadUseCase,
) *LeadHandler {
	return &LeadHandler{
		ListUC:   listUC,
		GetUC:    getUC,
		CreateUC: createUC,
		UpdateUC: updateUC,
		DeleteUC: deleteUC,
	}
}

// HandleList: GET /leads?status_id=&q=&page=&page_size=&sort=&dir=
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	input := usecase.ListLeadsInput{
		Search:        query.Get("q"),
		SortField:     query.Get("sort"),
		SortDirection: query.Get("dir"),
	}

	if raw := query.Get("status_id"); raw != "" {
		statusID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_STATUS_ID", "status_id deve ser numérico")
			return
		}
		input.StatusID = &statusID
	}

	input.Page, _ = strconv.Atoi(query.Get("page"))
	input.PageSize, _ = strconv.Atoi(query.Get("page_size"))

	page, err := h.ListUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// HandleGet: GET /leads/{id}
func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "id is required")
		return
	}

	lead, err := h.GetUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// HandleCreate: POST /leads
func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	lead, err := h.CreateUC.Execute(r.Context(), actor, input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadCreated("manual")
	writeJSON(w, http.StatusCreated, lead)
}

// HandleUpdate: PATCH /leads/{id}
func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "id is required")
		return
	}

	var input usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	lead, err := h.UpdateUC.Execute(r.Context(), actor, id, input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// HandleDelete: DELETE /leads/{id}
func (h *LeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "id is required")
		return
	}

	if err := h.DeleteUC.Execute(r.Context(), actor, id); err != nil {
		writeUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
