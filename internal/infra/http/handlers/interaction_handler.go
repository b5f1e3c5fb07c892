package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type InteractionHandler struct {
	UseCase *usecase.InteracoesUseCase
}

func NewInteractionHandler(useCase *usecase.InteracoesUseCase) *InteractionHandler {
	return &InteractionHandler{UseCase: useCase}
}

// HandleList: GET /leads/{id}/interacoes
func (h *InteractionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")
	if leadID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "id is required")
		return
	}

	interacoes, err := h.UseCase.List(r.Context(), leadID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, interacoes)
}

// HandleCreate: POST /leads/{id}/interacoes
func (h *InteractionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	var input usecase.CreateInteracaoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}
	input.LeadID = chi.URLParam(r, "id")

	interacao, err := h.UseCase.Create(r.Context(), actor, input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, interacao)
}

// HandleDelete: DELETE /interacoes/{id}
func (h *InteractionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	if err := h.UseCase.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
