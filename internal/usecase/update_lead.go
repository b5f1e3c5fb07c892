package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/cache"
	"github.com/xavierca1/ligue-leads/internal/infra/database"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

// UpdateLeadInput carrega só o que veio na requisição; ponteiro nil é
// campo ausente. Atualizar um campo nunca mexe nos demais.
type UpdateLeadInput struct {
	Nome          *string `json:"nome"`
	Sexo          *string `json:"sexo"`
	AnoNascimento *int    `json:"ano_nascimento"`
	Classe        *string `json:"classe"`
	Endereco      *string `json:"endereco"`
	Numero        *string `json:"numero"`
	Complemento   *string `json:"complemento"`
	Bairro        *string `json:"bairro"`
	CEP           *string `json:"cep"`
	Cidade        *string `json:"cidade"`
	UF            *string `json:"uf"`
	Telefone1     *string `json:"telefone_1"`
	Telefone2     *string `json:"telefone_2"`
	Telefone3     *string `json:"telefone_3"`
	Telefone4     *string `json:"telefone_4"`
	Telefone5     *string `json:"telefone_5"`
	Observacoes   *string `json:"observacoes"`
	Origem        *string `json:"origem"`

	StatusID        *int64  `json:"status_id"`
	ClearStatus     bool    `json:"clear_status"`
	AssignedTo      *string `json:"assigned_to"`
	ClearAssignedTo bool    `json:"clear_assigned_to"`
}

type UpdateLeadUseCase struct {
	Repo  LeadRepositoryInterface
	Cache *cache.QueryCache
	Queue QueueProducerInterface
}

func NewUpdateLeadUseCase(repo LeadRepositoryInterface, queryCache *cache.QueryCache, producer QueueProducerInterface) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{Repo: repo, Cache: queryCache, Queue: producer}
}

func (uc *UpdateLeadUseCase) Execute(ctx context.Context, actor Actor, id string, input UpdateLeadInput) (*entity.LeadWithRelations, error) {
	if errs := validateUpdateLeadInput(input); len(errs) > 0 {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: joinValidationErrors(errs),
		}
	}

	// Reatribuir para terceiros é privilégio de admin
	if input.AssignedTo != nil && *input.AssignedTo != actor.ID && !actor.IsAdmin() {
		return nil, ErrForbidden("atribuir leads a outros usuários")
	}

	update := database.LeadUpdate{
		Nome:            normalizePtr(input.Nome, false),
		Sexo:            normalizePtr(input.Sexo, true),
		AnoNascimento:   input.AnoNascimento,
		Classe:          normalizePtr(input.Classe, true),
		Endereco:        input.Endereco,
		Numero:          input.Numero,
		Complemento:     input.Complemento,
		Bairro:          input.Bairro,
		CEP:             input.CEP,
		Cidade:          input.Cidade,
		UF:              normalizePtr(input.UF, true),
		Telefone1:       input.Telefone1,
		Telefone2:       input.Telefone2,
		Telefone3:       input.Telefone3,
		Telefone4:       input.Telefone4,
		Telefone5:       input.Telefone5,
		Observacoes:     input.Observacoes,
		Origem:          input.Origem,
		StatusID:        input.StatusID,
		ClearStatus:     input.ClearStatus,
		AssignedTo:      input.AssignedTo,
		ClearAssignedTo: input.ClearAssignedTo,
	}

	if update.IsEmpty() {
		return nil, &DomainError{
			Code:    "EMPTY_UPDATE",
			Message: "nenhum campo para atualizar",
		}
	}

	if err := uc.Repo.UpdatePartial(ctx, id, update); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Code: "NOT_FOUND", Message: err.Error()}
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao atualizar lead: " + err.Error(),
		}
	}

	// Os novos valores podem mudar filtro e ordenação de qualquer
	// página, então caem as listas inteiras além do lead específico.
	uc.Cache.Invalidate(cache.EntityLead, cache.EntityLeads)

	updated, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao recarregar lead: " + err.Error(),
		}
	}

	if input.AssignedTo != nil && uc.Queue != nil {
		payload := queue.AssignmentPayload{
			LeadID:     updated.ID,
			LeadNome:   updated.Nome,
			AssigneeID: *input.AssignedTo,
			AssignedBy: actor.ID,
		}
		if updated.Assignee != nil {
			payload.AssigneeNome = updated.Assignee.Nome
			payload.AssigneeEmail = updated.Assignee.Email
		}
		go func() {
			if err := uc.Queue.PublishAssignment(context.Background(), payload); err != nil {
				log.Printf("falha ao publicar atribuição do lead %s: %v", updated.ID, err)
			}
		}()
	}

	return updated, nil
}

func validateUpdateLeadInput(input UpdateLeadInput) []ValidationError {
	var errs []ValidationError

	if input.Nome != nil && strings.TrimSpace(*input.Nome) == "" {
		errs = append(errs, ValidationError{"nome", "must not be empty"})
	}
	if input.Sexo != nil && *input.Sexo != "" && !isValidSexo(*input.Sexo) {
		errs = append(errs, ValidationError{"sexo", "must be M, F or I"})
	}
	if input.Classe != nil && *input.Classe != "" && !isValidClasse(*input.Classe) {
		errs = append(errs, ValidationError{"classe", "must be A, B, C, D or E"})
	}
	if input.AnoNascimento != nil && !isValidAnoNascimento(*input.AnoNascimento) {
		errs = append(errs, ValidationError{"ano_nascimento", "must be a plausible year"})
	}

	return errs
}

func normalizePtr(value *string, upper bool) *string {
	if value == nil {
		return nil
	}
	normalized := strings.TrimSpace(*value)
	if upper {
		normalized = strings.ToUpper(normalized)
	}
	return &normalized
}
