package usecase

import (
	"context"
	"log"
	"net/mail"
	"strings"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/cache"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/authadmin"
)

type CreateUserInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nome     string `json:"nome"`
	Role     string `json:"role"`
}

type UsersUseCase struct {
	Profiles ProfileRepositoryInterface
	Admin    AdminAPI
	Email    EmailService
	Cache    *cache.QueryCache
}

func NewUsersUseCase(profiles ProfileRepositoryInterface, admin AdminAPI, email EmailService, queryCache *cache.QueryCache) *UsersUseCase {
	return &UsersUseCase{Profiles: profiles, Admin: admin, Email: email, Cache: queryCache}
}

// ListProfiles alimenta o seletor de responsável; qualquer usuário
// autenticado pode ver.
func (uc *UsersUseCase) ListProfiles(ctx context.Context) ([]entity.Profile, error) {
	value, err := uc.Cache.GetOrFetch(ctx, cache.EntityUsers, "profiles", func(ctx context.Context) (any, error) {
		profiles, err := uc.Profiles.ListAll(ctx)
		if err != nil {
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}
		return profiles, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]entity.Profile), nil
}

func (uc *UsersUseCase) ListUsers(ctx context.Context, actor Actor) ([]entity.UserWithRole, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden("gerenciar usuários")
	}

	value, err := uc.Cache.GetOrFetch(ctx, cache.EntityUsers, "with-roles", func(ctx context.Context) (any, error) {
		users, err := uc.Profiles.ListWithRoles(ctx)
		if err != nil {
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]entity.UserWithRole), nil
}

// UpdateRole recusa auto-rebaixamento: o admin agindo não altera a
// própria linha, e a regra vale aqui no servidor, não só na UI.
func (uc *UsersUseCase) UpdateRole(ctx context.Context, actor Actor, userID string, role entity.AppRole) error {
	if !actor.IsAdmin() {
		return ErrForbidden("gerenciar usuários")
	}
	if userID == actor.ID {
		return &DomainError{
			Code:    "SELF_ROLE_CHANGE",
			Message: "você não pode alterar a própria permissão",
		}
	}
	if role != entity.RoleAdmin && role != entity.RoleUser {
		return &DomainError{Code: "VALIDATION_ERROR", Message: "role must be admin or user"}
	}

	if err := uc.Profiles.UpsertRole(ctx, userID, role); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	uc.Cache.Invalidate(cache.EntityUsers)
	return nil
}

func (uc *UsersUseCase) UpdateProfileNome(ctx context.Context, actor Actor, userID, nome string) error {
	if userID != actor.ID && !actor.IsAdmin() {
		return ErrForbidden("editar o perfil de outros usuários")
	}

	if err := uc.Profiles.UpdateNome(ctx, userID, strings.TrimSpace(nome)); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	uc.Cache.Invalidate(cache.EntityUsers)
	return nil
}

// CreateUser delega ao endpoint administrativo externo, que é quem
// manipula a identidade de autenticação. O bearer é o da sessão do
// admin que está agindo.
func (uc *UsersUseCase) CreateUser(ctx context.Context, actor Actor, input CreateUserInput) (*authadmin.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden("criar usuários")
	}

	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "email is invalid"}
	}
	if len(input.Password) < 6 {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "password must have at least 6 characters"}
	}

	user, err := uc.Admin.CreateUser(ctx, actor.Token, authadmin.CreateUserInput{
		Email:    input.Email,
		Password: input.Password,
		Nome:     input.Nome,
		Role:     input.Role,
	})
	if err != nil {
		return nil, &DomainError{Code: "ADMIN_API_ERROR", Message: err.Error()}
	}

	if entity.AppRole(input.Role) == entity.RoleAdmin {
		if err := uc.Profiles.UpsertRole(ctx, user.ID, entity.RoleAdmin); err != nil {
			log.Printf("usuário %s criado mas role admin não gravada: %v", user.ID, err)
		}
	}

	uc.Cache.Invalidate(cache.EntityUsers)

	if uc.Email != nil {
		go func() {
			if err := uc.Email.SendWelcome(input.Email, input.Nome); err != nil {
				log.Printf("falha ao enviar boas-vindas para %s: %v", input.Email, err)
			}
		}()
	}

	return user, nil
}

func (uc *UsersUseCase) DeleteUser(ctx context.Context, actor Actor, userID string) error {
	if !actor.IsAdmin() {
		return ErrForbidden("excluir usuários")
	}
	if userID == actor.ID {
		return &DomainError{
			Code:    "SELF_DELETE",
			Message: "você não pode excluir a própria conta",
		}
	}

	if err := uc.Admin.DeleteUser(ctx, actor.Token, userID); err != nil {
		return &DomainError{Code: "ADMIN_API_ERROR", Message: err.Error()}
	}

	uc.Cache.Invalidate(cache.EntityUsers)
	return nil
}
