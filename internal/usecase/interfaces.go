package usecase

import (
	"context"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/database"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/authadmin"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

type LeadRepositoryInterface interface {
	List(ctx context.Context, params database.ListLeadsParams) ([]entity.LeadWithRelations, int, error)
	ListAll(ctx context.Context) ([]entity.LeadWithRelations, error)
	FindByID(ctx context.Context, id string) (*entity.LeadWithRelations, error)
	Create(ctx context.Context, lead *entity.Lead) error
	CreateBatch(ctx context.Context, leads []*entity.Lead) error
	UpdatePartial(ctx context.Context, id string, update database.LeadUpdate) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, statusID int64) (int, error)
}

type StatusRepositoryInterface interface {
	ListAll(ctx context.Context) ([]entity.StatusOption, error)
	Create(ctx context.Context, status *entity.StatusOption) error
	Update(ctx context.Context, id int64, descricao string) error
	Delete(ctx context.Context, id int64) error
}

type ProfileRepositoryInterface interface {
	ListAll(ctx context.Context) ([]entity.Profile, error)
	FindByID(ctx context.Context, id string) (*entity.Profile, error)
	ListWithRoles(ctx context.Context) ([]entity.UserWithRole, error)
	UpdateNome(ctx context.Context, id, nome string) error
	UpsertRole(ctx context.Context, userID string, role entity.AppRole) error
}

type InteractionRepositoryInterface interface {
	ListByLead(ctx context.Context, leadID string) ([]entity.LeadInteracaoWithAuthor, error)
	Create(ctx context.Context, interacao *entity.LeadInteracao) error
	Delete(ctx context.Context, id string) error
}

type QueueProducerInterface interface {
	PublishAssignment(ctx context.Context, payload queue.AssignmentPayload) error
}

// AdminAPI é o endpoint administrativo externo que manipula a
// identidade de autenticação (criar/excluir conta). Exige o bearer da
// sessão do admin que está agindo.
type AdminAPI interface {
	CreateUser(ctx context.Context, bearer string, input authadmin.CreateUserInput) (*authadmin.User, error)
	DeleteUser(ctx context.Context, bearer string, userID string) error
}

type EmailService interface {
	SendWelcome(to, nome string) error
}
