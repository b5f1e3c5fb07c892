package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/database"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/authadmin"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) List(ctx context.Context, params database.ListLeadsParams) ([]entity.LeadWithRelations, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.LeadWithRelations), args.Int(1), args.Error(2)
}

func (m *MockLeadRepository) ListAll(ctx context.Context) ([]entity.LeadWithRelations, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeadWithRelations), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.LeadWithRelations, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LeadWithRelations), args.Error(1)
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) CreateBatch(ctx context.Context, leads []*entity.Lead) error {
	args := m.Called(ctx, leads)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdatePartial(ctx context.Context, id string, update database.LeadUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) CountByStatus(ctx context.Context, statusID int64) (int, error) {
	args := m.Called(ctx, statusID)
	return args.Int(0), args.Error(1)
}

// MockStatusRepository
type MockStatusRepository struct {
	mock.Mock
}

func (m *MockStatusRepository) ListAll(ctx context.Context) ([]entity.StatusOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.StatusOption), args.Error(1)
}

func (m *MockStatusRepository) Create(ctx context.Context, status *entity.StatusOption) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockStatusRepository) Update(ctx context.Context, id int64, descricao string) error {
	args := m.Called(ctx, id, descricao)
	return args.Error(0)
}

func (m *MockStatusRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) ListAll(ctx context.Context) ([]entity.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) ListWithRoles(ctx context.Context) ([]entity.UserWithRole, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UserWithRole), args.Error(1)
}

func (m *MockProfileRepository) UpdateNome(ctx context.Context, id, nome string) error {
	args := m.Called(ctx, id, nome)
	return args.Error(0)
}

func (m *MockProfileRepository) UpsertRole(ctx context.Context, userID string, role entity.AppRole) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

// MockInteractionRepository
type MockInteractionRepository struct {
	mock.Mock
}

func (m *MockInteractionRepository) ListByLead(ctx context.Context, leadID string) ([]entity.LeadInteracaoWithAuthor, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeadInteracaoWithAuthor), args.Error(1)
}

func (m *MockInteractionRepository) Create(ctx context.Context, interacao *entity.LeadInteracao) error {
	args := m.Called(ctx, interacao)
	return args.Error(0)
}

func (m *MockInteractionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishAssignment(ctx context.Context, payload queue.AssignmentPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockAdminAPI
type MockAdminAPI struct {
	mock.Mock
}

func (m *MockAdminAPI) CreateUser(ctx context.Context, bearer string, input authadmin.CreateUserInput) (*authadmin.User, error) {
	args := m.Called(ctx, bearer, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authadmin.User), args.Error(1)
}

func (m *MockAdminAPI) DeleteUser(ctx context.Context, bearer string, userID string) error {
	args := m.Called(ctx, bearer, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendWelcome(to, nome string) error {
	args := m.Called(to, nome)
	return args.Error(0)
}
