package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/cache"
	"github.com/xavierca1/ligue-leads/internal/infra/database"
)

type ListLeadsInput struct {
	StatusID      *int64
	Search        string
	Page          int
	PageSize      int
	SortField     string
	SortDirection string
}

// LeadPage é uma página de leads mais o total que casa com o filtro,
// para a UI montar a paginação.
type LeadPage struct {
	Leads    []entity.LeadWithRelations `json:"leads"`
	Total    int                        `json:"total"`
	Page     int                        `json:"page"`
	PageSize int                        `json:"page_size"`
}

type ListLeadsUseCase struct {
	Repo  LeadRepositoryInterface
	Cache *cache.QueryCache
}

func NewListLeadsUseCase(repo LeadRepositoryInterface, queryCache *cache.QueryCache) *ListLeadsUseCase {
	return &ListLeadsUseCase{Repo: repo, Cache: queryCache}
}

// Execute resolve a página pelo cache: tuplas de parâmetros idênticas
// reutilizam o resultado até a próxima mutação de lead invalidar.
func (uc *ListLeadsUseCase) Execute(ctx context.Context, input ListLeadsInput) (*LeadPage, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.PageSize < 1 {
		input.PageSize = 20
	}

	key := listLeadsCacheKey(input)

	value, err := uc.Cache.GetOrFetch(ctx, cache.EntityLeads, key, func(ctx context.Context) (any, error) {
		leads, total, err := uc.Repo.List(ctx, database.ListLeadsParams{
			StatusID:      input.StatusID,
			Search:        input.Search,
			Page:          input.Page,
			PageSize:      input.PageSize,
			SortField:     input.SortField,
			SortDirection: input.SortDirection,
		})
		if err != nil {
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}
		return &LeadPage{
			Leads:    leads,
			Total:    total,
			Page:     input.Page,
			PageSize: input.PageSize,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return value.(*LeadPage), nil
}

// ExecuteAll busca o conjunto inteiro (com joins). Existe porque o
// dashboard agrega sobre todos os leads, não sobre uma página.
func (uc *ListLeadsUseCase) ExecuteAll(ctx context.Context) ([]entity.LeadWithRelations, error) {
	value, err := uc.Cache.GetOrFetch(ctx, cache.EntityLeads, "all", func(ctx context.Context) (any, error) {
		leads, err := uc.Repo.ListAll(ctx)
		if err != nil {
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}
		return leads, nil
	})
	if err != nil {
		return nil, err
	}

	return value.([]entity.LeadWithRelations), nil
}

type GetLeadUseCase struct {
	Repo  LeadRepositoryInterface
	Cache *cache.QueryCache
}

func NewGetLeadUseCase(repo LeadRepositoryInterface, queryCache *cache.QueryCache) *GetLeadUseCase {
	return &GetLeadUseCase{Repo: repo, Cache: queryCache}
}

func (uc *GetLeadUseCase) Execute(ctx context.Context, id string) (*entity.LeadWithRelations, error) {
	value, err := uc.Cache.GetOrFetch(ctx, cache.EntityLead, id, func(ctx context.Context) (any, error) {
		lead, err := uc.Repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, entity.ErrLeadNotFound) {
				return nil, &DomainError{Code: "NOT_FOUND", Message: err.Error()}
			}
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}
		return lead, nil
	})
	if err != nil {
		return nil, err
	}

	return value.(*entity.LeadWithRelations), nil
}

func listLeadsCacheKey(input ListLeadsInput) string {
	status := "-"
	if input.StatusID != nil {
		status = fmt.Sprintf("%d", *input.StatusID)
	}
	return fmt.Sprintf("status=%s|q=%s|page=%d|size=%d|sort=%s:%s",
		status, input.Search, input.Page, input.PageSize,
		input.SortField, input.SortDirection)
}
