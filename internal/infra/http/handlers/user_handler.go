package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type UserHandler struct {
	UseCase *usecase.UsersUseCase
}

func NewUserHandler(useCase *usecase.UsersUseCase) *UserHandler {
	return &UserHandler{UseCase: useCase}
}

// HandleListProfiles: GET /profiles — alimenta o seletor de
// responsável, aberto a qualquer usuário autenticado.
func (h *UserHandler) HandleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.UseCase.ListProfiles(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// HandleListUsers: GET /users
func (h *UserHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	users, err := h.UseCase.ListUsers(r.Context(), actor)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// HandleUpdateRole: PUT /users/{id}/role
func (h *UserHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	userID := chi.URLParam(r, "id")
	if err := h.UseCase.UpdateRole(r.Context(), actor, userID, entity.AppRole(body.Role)); err != nil {
		writeUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdateProfile: PUT /profiles/{id}
func (h *UserHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	var body struct {
		Nome string `json:"nome"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	userID := chi.URLParam(r, "id")
	if err := h.UseCase.UpdateProfileNome(r.Context(), actor, userID, body.Nome); err != nil {
		writeUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleCreate: POST /users
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	var input usecase.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	user, err := h.UseCase.CreateUser(r.Context(), actor, input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// HandleDelete: DELETE /users/{id}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	if err := h.UseCase.DeleteUser(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
