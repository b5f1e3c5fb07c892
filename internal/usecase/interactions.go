package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/cache"
)

type CreateInteracaoInput struct {
	LeadID    string `json:"lead_id"`
	Tipo      string `json:"tipo"`
	Descricao string `json:"descricao"`
}

type InteracoesUseCase struct {
	Repo  InteractionRepositoryInterface
	Cache *cache.QueryCache
}

func NewInteracoesUseCase(repo InteractionRepositoryInterface, queryCache *cache.QueryCache) *InteracoesUseCase {
	return &InteracoesUseCase{Repo: repo, Cache: queryCache}
}

func (uc *InteracoesUseCase) List(ctx context.Context, leadID string) ([]entity.LeadInteracaoWithAuthor, error) {
	value, err := uc.Cache.GetOrFetch(ctx, cache.EntityInteracoes, leadID, func(ctx context.Context) (any, error) {
		interacoes, err := uc.Repo.ListByLead(ctx, leadID)
		if err != nil {
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}
		return interacoes, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]entity.LeadInteracaoWithAuthor), nil
}

// Create registra a interação em nome do próprio actor. Interação não
// tem update: uma vez criada, só admin exclui.
func (uc *InteracoesUseCase) Create(ctx context.Context, actor Actor, input CreateInteracaoInput) (*entity.LeadInteracao, error) {
	interacao, err := entity.NewLeadInteracao(input.LeadID, actor.ID, input.Tipo, input.Descricao)
	if err != nil {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: err.Error()}
	}

	if err := uc.Repo.Create(ctx, interacao); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao registrar interação: " + err.Error(),
		}
	}

	uc.Cache.Invalidate(cache.EntityInteracoes)
	return interacao, nil
}

func (uc *InteracoesUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin() {
		return ErrForbidden("excluir interações")
	}

	if err := uc.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrInteracaoNotFound) {
			return &DomainError{Code: "NOT_FOUND", Message: err.Error()}
		}
		return &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao excluir interação: " + err.Error(),
		}
	}

	uc.Cache.Invalidate(cache.EntityInteracoes)
	return nil
}
