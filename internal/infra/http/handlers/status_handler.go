package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type StatusHandler struct {
	UseCase *usecase.StatusUseCase
}

func NewStatusHandler(useCase *usecase.StatusUseCase) *StatusHandler {
	return &StatusHandler{UseCase: useCase}
}

type statusRequest struct {
	Descricao string `json:"descricao"`
}

// HandleList: GET /status
func (h *StatusHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.UseCase.List(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

// HandleCreate: POST /status
func (h *StatusHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	var body statusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	status, err := h.UseCase.Create(r.Context(), actor, body.Descricao)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, status)
}

// HandleUpdate: PUT /status/{id}
func (h *StatusHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	id, err := parseStatusID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "id deve ser numérico")
		return
	}

	var body statusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	if err := h.UseCase.Update(r.Context(), actor, id, body.Descricao); err != nil {
		writeUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete: DELETE /status/{id}
func (h *StatusHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	id, err := parseStatusID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "id deve ser numérico")
		return
	}

	if err := h.UseCase.Delete(r.Context(), actor, id); err != nil {
		writeUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseStatusID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
