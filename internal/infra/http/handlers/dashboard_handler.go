package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type DashboardHandler struct {
	UseCase *usecase.DashboardUseCase
}

func NewDashboardHandler(useCase *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{UseCase: useCase}
}

// Handle: GET /dashboard. O leaderboard só vem para admin; o resto das
// métricas é igual para todo mundo.
func (h *DashboardHandler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	metrics, err := h.UseCase.Execute(r.Context(), actor)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}
