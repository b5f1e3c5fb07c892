package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/cache"
)

// StatusUseCase cobre o CRUD das etapas do funil. Só admin mexe aqui.
type StatusUseCase struct {
	Repo     StatusRepositoryInterface
	LeadRepo LeadRepositoryInterface
	Cache    *cache.QueryCache
}

func NewStatusUseCase(repo StatusRepositoryInterface, leadRepo LeadRepositoryInterface, queryCache *cache.QueryCache) *StatusUseCase {
	return &StatusUseCase{Repo: repo, LeadRepo: leadRepo, Cache: queryCache}
}

func (uc *StatusUseCase) List(ctx context.Context) ([]entity.StatusOption, error) {
	value, err := uc.Cache.GetOrFetch(ctx, cache.EntityStatus, "all", func(ctx context.Context) (any, error) {
		statuses, err := uc.Repo.ListAll(ctx)
		if err != nil {
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}
		return statuses, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]entity.StatusOption), nil
}

func (uc *StatusUseCase) Create(ctx context.Context, actor Actor, descricao string) (*entity.StatusOption, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden("gerenciar status")
	}

	status := &entity.StatusOption{Descricao: entity.NormalizeDescricao(descricao)}
	if err := status.Validate(); err != nil {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: err.Error()}
	}

	if err := uc.Repo.Create(ctx, status); err != nil {
		return nil, wrapStatusError(err, "criar")
	}

	uc.Cache.Invalidate(cache.EntityStatus)
	return status, nil
}

func (uc *StatusUseCase) Update(ctx context.Context, actor Actor, id int64, descricao string) error {
	if !actor.IsAdmin() {
		return ErrForbidden("gerenciar status")
	}

	normalized := entity.NormalizeDescricao(descricao)
	if normalized == "" {
		return &DomainError{Code: "VALIDATION_ERROR", Message: "descricao is required"}
	}

	if err := uc.Repo.Update(ctx, id, normalized); err != nil {
		return wrapStatusError(err, "atualizar")
	}

	// As listagens de lead embutem a descrição do status
	uc.Cache.Invalidate(cache.EntityStatus, cache.EntityLeads, cache.EntityLead)
	return nil
}

// Delete primeiro conta os leads que ainda apontam para o status e
// recusa com mensagem descritiva se houver algum. A janela entre a
// contagem e o delete é coberta pelo RESTRICT do schema, que o
// repositório mapeia para o mesmo erro.
func (uc *StatusUseCase) Delete(ctx context.Context, actor Actor, id int64) error {
	if !actor.IsAdmin() {
		return ErrForbidden("gerenciar status")
	}

	count, err := uc.LeadRepo.CountByStatus(ctx, id)
	if err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if count > 0 {
		return &DomainError{
			Code: "STATUS_IN_USE",
			Message: fmt.Sprintf(
				"Este status está em uso por %d lead(s). Remova ou altere o status dos leads antes de excluir.",
				count),
		}
	}

	if err := uc.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrStatusInUse) {
			return &DomainError{
				Code:    "STATUS_IN_USE",
				Message: "Este status está em uso por leads existentes. Remova ou altere o status dos leads antes de excluir.",
			}
		}
		return wrapStatusError(err, "excluir")
	}

	uc.Cache.Invalidate(cache.EntityStatus)
	return nil
}

func wrapStatusError(err error, action string) error {
	if errors.Is(err, entity.ErrStatusNotFound) {
		return &DomainError{Code: "NOT_FOUND", Message: err.Error()}
	}
	if errors.Is(err, entity.ErrDescricaoDuplicada) {
		return &DomainError{Code: "DUPLICATE_STATUS", Message: err.Error()}
	}
	return &TechnicalError{
		Code:    "DATABASE_ERROR",
		Message: "falha ao " + action + " status: " + err.Error(),
	}
}
