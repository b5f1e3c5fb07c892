package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/cache"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

type CreateLeadInput struct {
	Nome          string  `json:"nome"`
	Sexo          string  `json:"sexo"`
	AnoNascimento *int    `json:"ano_nascimento"`
	Classe        string  `json:"classe"`
	Endereco      string  `json:"endereco"`
	Numero        string  `json:"numero"`
	Complemento   string  `json:"complemento"`
	Bairro        string  `json:"bairro"`
	CEP           string  `json:"cep"`
	Cidade        string  `json:"cidade"`
	UF            string  `json:"uf"`
	StatusID      *int64  `json:"status_id"`
	Telefone1     string  `json:"telefone_1"`
	Telefone2     string  `json:"telefone_2"`
	Telefone3     string  `json:"telefone_3"`
	Telefone4     string  `json:"telefone_4"`
	Telefone5     string  `json:"telefone_5"`
	Observacoes   string  `json:"observacoes"`
	Origem        string  `json:"origem"`
	AssignedTo    *string `json:"assigned_to"`
}

type CreateLeadUseCase struct {
	Repo     LeadRepositoryInterface
	Profiles ProfileRepositoryInterface
	Cache    *cache.QueryCache
	Queue    QueueProducerInterface
}

func NewCreateLeadUseCase(
	repo LeadRepositoryInterface,
	profiles ProfileRepositoryInterface,
	queryCache *cache.QueryCache,
	producer QueueProducerInterface,
) *CreateLeadUseCase {
	return &CreateLeadUseCase{
		Repo:     repo,
		Profiles: profiles,
		Cache:    queryCache,
		Queue:    producer,
	}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, actor Actor, input CreateLeadInput) (*entity.Lead, error) {
	validationErrors := ValidateCreateLeadInput(input)
	if len(validationErrors) > 0 {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: joinValidationErrors(validationErrors),
		}
	}

	lead := &entity.Lead{
		ID:            uuid.New().String(),
		Nome:          strings.TrimSpace(input.Nome),
		Sexo:          strings.ToUpper(strings.TrimSpace(input.Sexo)),
		AnoNascimento: input.AnoNascimento,
		Classe:        strings.ToUpper(strings.TrimSpace(input.Classe)),
		Endereco:      input.Endereco,
		Numero:        input.Numero,
		Complemento:   input.Complemento,
		Bairro:        input.Bairro,
		CEP:           input.CEP,
		Cidade:        input.Cidade,
		UF:            strings.ToUpper(strings.TrimSpace(input.UF)),
		StatusID:      input.StatusID,
		Telefone1:     input.Telefone1,
		Telefone2:     input.Telefone2,
		Telefone3:     input.Telefone3,
		Telefone4:     input.Telefone4,
		Telefone5:     input.Telefone5,
		Observacoes:   input.Observacoes,
		Origem:        strings.TrimSpace(input.Origem),
		AssignedTo:    input.AssignedTo,
		CreatedAt:     time.Now(),
	}

	// Quem não é admin não escolhe o responsável: o lead nasce na
	// carteira do próprio usuário, decidido aqui e não no cliente.
	if !actor.IsAdmin() {
		assignee := actor.ID
		lead.AssignedTo = &assignee
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao criar lead: " + err.Error(),
		}
	}

	uc.Cache.Invalidate(cache.EntityLeads)

	if lead.AssignedTo != nil {
		uc.notifyAssignment(lead, *lead.AssignedTo, actor.ID)
	}

	return lead, nil
}

// notifyAssignment publica o evento de atribuição. Melhor esforço: a
// mutação já foi persistida, falha aqui só gera log.
func (uc *CreateLeadUseCase) notifyAssignment(lead *entity.Lead, assigneeID, actorID string) {
	if uc.Queue == nil {
		return
	}

	payload := queue.AssignmentPayload{
		LeadID:     lead.ID,
		LeadNome:   lead.Nome,
		AssigneeID: assigneeID,
		AssignedBy: actorID,
	}

	go func() {
		if uc.Profiles != nil {
			if profile, err := uc.Profiles.FindByID(context.Background(), assigneeID); err == nil {
				payload.AssigneeNome = profile.Nome
				payload.AssigneeEmail = profile.Email
			}
		}
		if err := uc.Queue.PublishAssignment(context.Background(), payload); err != nil {
			log.Printf("falha ao publicar atribuição do lead %s: %v", lead.ID, err)
		}
	}()
}
