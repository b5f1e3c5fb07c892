package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/cache"
)

type DeleteLeadUseCase struct {
	Repo  LeadRepositoryInterface
	Cache *cache.QueryCache
}

func NewDeleteLeadUseCase(repo LeadRepositoryInterface, queryCache *cache.QueryCache) *DeleteLeadUseCase {
	return &DeleteLeadUseCase{Repo: repo, Cache: queryCache}
}

// As interações do lead caem em cascata no banco; não são tratadas
// aqui.
func (uc *DeleteLeadUseCase) Execute(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin() {
		return ErrForbidden("excluir leads")
	}

	if err := uc.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return &DomainError{Code: "NOT_FOUND", Message: err.Error()}
		}
		return &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao excluir lead: " + err.Error(),
		}
	}

	uc.Cache.Invalidate(cache.EntityLead, cache.EntityLeads)
	return nil
}
