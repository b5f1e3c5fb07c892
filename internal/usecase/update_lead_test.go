package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/cache"
	"github.com/xavierca1/ligue-leads/internal/infra/database"
)

func leadFixture(id string) *entity.LeadWithRelations {
	return &entity.LeadWithRelations{
		Lead: entity.Lead{ID: id, Nome: "Marcos", Origem: "site"},
	}
}

// TestUpdateLeadParcialSoTocaOsCamposEnviados
func TestUpdateLeadParcialSoTocaOsCamposEnviados(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	var update database.LeadUpdate
	mockRepo.On("UpdatePartial", ctx, "lead-1", mock.Anything).Run(func(args mock.Arguments) {
		update = args.Get(2).(database.LeadUpdate)
	}).Return(nil)
	mockRepo.On("FindByID", ctx, "lead-1").Return(leadFixture("lead-1"), nil)

	uc := NewUpdateLeadUseCase(mockRepo, cache.New(), nil)

	fone := "11900001111"
	_, err := uc.Execute(ctx, userActor(), "lead-1", UpdateLeadInput{Telefone1: &fone})

	assert.NoError(t, err)
	assert.NotNil(t, update.Telefone1)
	assert.Equal(t, "11900001111", *update.Telefone1)
	assert.Nil(t, update.Nome)
	assert.Nil(t, update.StatusID)
	assert.Nil(t, update.AssignedTo)
	assert.False(t, update.ClearStatus)
	assert.False(t, update.ClearAssignedTo)
}

// TestUpdateLeadVazioERecusado - PATCH sem nenhum campo é erro, não
// no-op silencioso
func TestUpdateLeadVazioERecusado(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	uc := NewUpdateLeadUseCase(mockRepo, cache.New(), nil)

	_, err := uc.Execute(context.Background(), userActor(), "lead-1", UpdateLeadInput{})

	domainErr, ok := err.(*DomainError)
	assert.True(t, ok)
	assert.Equal(t, "EMPTY_UPDATE", domainErr.Code)
	mockRepo.AssertNotCalled(t, "UpdatePartial")
}

// TestUpdateLeadNaoAdminNaoReatribuiParaTerceiros
func TestUpdateLeadNaoAdminNaoReatribuiParaTerceiros(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	uc := NewUpdateLeadUseCase(mockRepo, cache.New(), nil)

	outro := "outro-usuario"
	_, err := uc.Execute(context.Background(), userActor(), "lead-1", UpdateLeadInput{AssignedTo: &outro})

	assert.True(t, IsDomainError(err))
	mockRepo.AssertNotCalled(t, "UpdatePartial")
}

func TestUpdateLeadNaoAdminPuxaParaSi(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)
	mockRepo.On("UpdatePartial", ctx, "lead-1", mock.Anything).Return(nil)
	mockRepo.On("FindByID", ctx, "lead-1").Return(leadFixture("lead-1"), nil)

	uc := NewUpdateLeadUseCase(mockRepo, cache.New(), nil)

	proprio := "user-1"
	_, err := uc.Execute(ctx, userActor(), "lead-1", UpdateLeadInput{AssignedTo: &proprio})

	assert.NoError(t, err)
}

// TestUpdateLeadLimpaStatus - clear_status manda NULL de verdade, não
// "campo ausente"
func TestUpdateLeadLimpaStatus(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	var update database.LeadUpdate
	mockRepo.On("UpdatePartial", ctx, "lead-1", mock.Anything).Run(func(args mock.Arguments) {
		update = args.Get(2).(database.LeadUpdate)
	}).Return(nil)
	mockRepo.On("FindByID", ctx, "lead-1").Return(leadFixture("lead-1"), nil)

	uc := NewUpdateLeadUseCase(mockRepo, cache.New(), nil)

	_, err := uc.Execute(ctx, userActor(), "lead-1", UpdateLeadInput{ClearStatus: true})

	assert.NoError(t, err)
	assert.True(t, update.ClearStatus)
	assert.Nil(t, update.StatusID)
}

func TestUpdateLeadInexistente(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)
	mockRepo.On("UpdatePartial", ctx, "fantasma", mock.Anything).Return(entity.ErrLeadNotFound)

	uc := NewUpdateLeadUseCase(mockRepo, cache.New(), nil)

	nome := "Novo Nome"
	_, err := uc.Execute(ctx, adminActor(), "fantasma", UpdateLeadInput{Nome: &nome})

	domainErr, ok := err.(*DomainError)
	assert.True(t, ok)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestUpdateLeadValidaValoresFixos(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	uc := NewUpdateLeadUseCase(mockRepo, cache.New(), nil)

	sexo := "X"
	_, err := uc.Execute(context.Background(), adminActor(), "lead-1", UpdateLeadInput{Sexo: &sexo})

	assert.True(t, IsDomainError(err))
	mockRepo.AssertNotCalled(t, "UpdatePartial")
}

// TestDeleteLeadSoAdmin
func TestDeleteLeadSoAdmin(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)
	mockRepo.On("Delete", ctx, "lead-1").Return(nil)

	uc := NewDeleteLeadUseCase(mockRepo, cache.New())

	err := uc.Execute(ctx, userActor(), "lead-1")
	assert.True(t, IsDomainError(err))
	mockRepo.AssertNotCalled(t, "Delete")

	assert.NoError(t, uc.Execute(ctx, adminActor(), "lead-1"))
	mockRepo.AssertCalled(t, "Delete", ctx, "lead-1")
}
