package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/cache"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

// TestCreateLeadNaoAdminForcaProprioResponsavel - o assigned_to que
// veio do cliente é ignorado para quem não é admin
func TestCreateLeadNaoAdminForcaProprioResponsavel(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)

	var criado *entity.Lead
	mockRepo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		criado = args.Get(1).(*entity.Lead)
	}).Return(nil)

	uc := NewCreateLeadUseCase(mockRepo, nil, cache.New(), nil)

	outro := "outro-usuario"
	lead, err := uc.Execute(ctx, userActor(), CreateLeadInput{
		Nome:       "Marcos",
		Origem:     "indicacao",
		AssignedTo: &outro,
	})

	assert.NoError(t, err)
	assert.NotNil(t, lead.AssignedTo)
	assert.Equal(t, "user-1", *lead.AssignedTo)
	assert.Equal(t, "user-1", *criado.AssignedTo)
}

func TestCreateLeadAdminEscolheResponsavel(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)
	mockRepo.On("Create", ctx, mock.Anything).Return(nil)

	uc := NewCreateLeadUseCase(mockRepo, nil, cache.New(), nil)

	vendedor := "vendedor-3"
	lead, err := uc.Execute(ctx, adminActor(), CreateLeadInput{
		Nome:       "Tereza",
		Origem:     "site",
		AssignedTo: &vendedor,
	})

	assert.NoError(t, err)
	assert.Equal(t, "vendedor-3", *lead.AssignedTo)
}

// TestCreateLeadValidacao - nome e origem são obrigatórios; sexo e
// classe só aceitam os valores fixos
func TestCreateLeadValidacao(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	uc := NewCreateLeadUseCase(mockRepo, nil, cache.New(), nil)

	casos := []CreateLeadInput{
		{Nome: "", Origem: "site"},
		{Nome: "Ana", Origem: ""},
		{Nome: "Ana", Origem: "site", Sexo: "X"},
		{Nome: "Ana", Origem: "site", Classe: "Z"},
		{Nome: "Ana", Origem: "site", UF: "SAO"},
	}

	for _, input := range casos {
		lead, err := uc.Execute(context.Background(), adminActor(), input)
		assert.Error(t, err)
		assert.Nil(t, lead)
		assert.True(t, IsDomainError(err))
	}

	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreateLeadNormalizaCampos(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)
	mockRepo.On("Create", ctx, mock.Anything).Return(nil)

	uc := NewCreateLeadUseCase(mockRepo, nil, cache.New(), nil)

	lead, err := uc.Execute(ctx, adminActor(), CreateLeadInput{
		Nome:   "  Beatriz Souza ",
		Origem: "site",
		Sexo:   "f",
		Classe: "b",
		UF:     "sp",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Beatriz Souza", lead.Nome)
	assert.Equal(t, "F", lead.Sexo)
	assert.Equal(t, "B", lead.Classe)
	assert.Equal(t, "SP", lead.UF)
	assert.NotEmpty(t, lead.ID)
}

// TestCreateLeadNotificaResponsavelBuscadoPorID - o evento de
// atribuição sai com nome e email do responsável, resolvidos por id e
// fora do caminho da requisição
func TestCreateLeadNotificaResponsavelBuscadoPorID(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)
	mockRepo.On("Create", ctx, mock.Anything).Return(nil)

	mockProfiles := new(MockProfileRepository)
	mockProfiles.On("FindByID", mock.Anything, "vendedor-3").Return(&entity.Profile{
		ID:    "vendedor-3",
		Nome:  "Carla",
		Email: "carla@liguemed.com.br",
	}, nil)

	published := make(chan queue.AssignmentPayload, 1)
	mockQueue := new(MockQueueProducer)
	mockQueue.On("PublishAssignment", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		published <- args.Get(1).(queue.AssignmentPayload)
	}).Return(nil)

	uc := NewCreateLeadUseCase(mockRepo, mockProfiles, cache.New(), mockQueue)

	vendedor := "vendedor-3"
	lead, err := uc.Execute(ctx, adminActor(), CreateLeadInput{
		Nome:       "Tereza",
		Origem:     "site",
		AssignedTo: &vendedor,
	})
	assert.NoError(t, err)

	select {
	case payload := <-published:
		assert.Equal(t, lead.ID, payload.LeadID)
		assert.Equal(t, "vendedor-3", payload.AssigneeID)
		assert.Equal(t, "Carla", payload.AssigneeNome)
		assert.Equal(t, "carla@liguemed.com.br", payload.AssigneeEmail)
		assert.Equal(t, "admin-1", payload.AssignedBy)
	case <-time.After(2 * time.Second):
		t.Fatal("evento de atribuição não foi publicado")
	}

	mockProfiles.AssertNotCalled(t, "ListAll")
}

// TestCreateLeadInvalidaCacheDeListagem - a lista some do cache após a
// mutação
func TestCreateLeadInvalidaCacheDeListagem(t *testing.T) {
	ctx := context.Background()
	queryCache := cache.New()

	mockRepo := new(MockLeadRepository)
	mockRepo.On("ListAll", ctx).Return([]entity.LeadWithRelations{}, nil)
	mockRepo.On("Create", ctx, mock.Anything).Return(nil)

	listUC := NewListLeadsUseCase(mockRepo, queryCache)
	createUC := NewCreateLeadUseCase(mockRepo, nil, queryCache, nil)

	// Popula o cache
	_, err := listUC.ExecuteAll(ctx)
	assert.NoError(t, err)
	_, err = listUC.ExecuteAll(ctx)
	assert.NoError(t, err)
	mockRepo.AssertNumberOfCalls(t, "ListAll", 1)

	_, err = createUC.Execute(ctx, adminActor(), CreateLeadInput{Nome: "Novo", Origem: "site"})
	assert.NoError(t, err)

	// A próxima listagem recarrega do banco
	_, err = listUC.ExecuteAll(ctx)
	assert.NoError(t, err)
	mockRepo.AssertNumberOfCalls(t, "ListAll", 2)
}
