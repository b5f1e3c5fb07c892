package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}

// writeUseCaseError converte o erro do caso de uso em resposta HTTP.
// DomainError vira 4xx com o código de negócio; o resto é 500.
func writeUseCaseError(w http.ResponseWriter, err error) {
	if domainErr, ok := err.(*usecase.DomainError); ok {
		status := http.StatusBadRequest
		switch domainErr.Code {
		case "FORBIDDEN", "SELF_ROLE_CHANGE", "SELF_DELETE":
			status = http.StatusForbidden
		case "NOT_FOUND":
			status = http.StatusNotFound
		case "STATUS_IN_USE", "DUPLICATE_STATUS":
			status = http.StatusConflict
		}
		writeError(w, status, domainErr.Code, domainErr.Message)
		return
	}

	if techErr, ok := err.(*usecase.TechnicalError); ok {
		writeError(w, http.StatusInternalServerError, techErr.Code, techErr.Message)
		return
	}

	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
}

func mustActor(w http.ResponseWriter, r *http.Request) (usecase.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "sessão inválida")
	}
	return actor, ok
}
