package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type ImportHandler struct {
	UseCase *usecase.ImportLeadsUseCase
}

func NewImportHandler(useCase *usecase.ImportLeadsUseCase) *ImportHandler {
	return &ImportHandler{UseCase: useCase}
}

type importRequest struct {
	CSV        string  `json:"csv"`
	StatusID   *int64  `json:"status_id"`
	AssignedTo *string `json:"assigned_to"`
	Origem     string  `json:"origem"`
}

// Handle: POST /leads/import. A requisição segura até o fim da
// importação; o progresso por lote vai para o log e para as métricas.
func (h *ImportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	var body importRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	if body.CSV == "" {
		writeError(w, http.StatusBadRequest, "EMPTY_CSV", "csv is required")
		return
	}

	input := usecase.ImportLeadsInput{
		CSV:        body.CSV,
		StatusID:   body.StatusID,
		AssignedTo: body.AssignedTo,
		Origem:     body.Origem,
	}

	result, err := h.UseCase.Execute(r.Context(), actor, input, func(fraction float64) {
		middleware.RecordImportBatch("ok")
		log.Printf("importação de leads: %.0f%% concluído", fraction*100)
	})
	if err != nil {
		middleware.RecordImportBatch("failed")
		// Importação parcial: devolve o que já foi gravado junto com
		// o erro.
		if result != nil && result.Imported > 0 {
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":   "IMPORT_FAILED",
				"message": err.Error(),
				"result":  result,
			})
			return
		}
		writeUseCaseError(w, err)
		return
	}

	for i := 0; i < result.Imported; i++ {
		middleware.RecordLeadCreated("import")
	}

	writeJSON(w, http.StatusOK, result)
}
