package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sexo e classe aceitam apenas os valores fixos da base legada.
var (
	ValidSexos   = []string{"M", "F", "I"}
	ValidClasses = []string{"A", "B", "C", "D", "E"}
)

type Lead struct {
	ID            string    `json:"id"`
	Nome          string    `json:"nome"`
	Sexo          string    `json:"sexo,omitempty"`
	AnoNascimento *int      `json:"ano_nascimento,omitempty"`
	Classe        string    `json:"classe,omitempty"`
	Endereco      string    `json:"endereco,omitempty"`
	Numero        string    `json:"numero,omitempty"`
	Complemento   string    `json:"complemento,omitempty"`
	Bairro        string    `json:"bairro,omitempty"`
	CEP           string    `json:"cep,omitempty"`
	Cidade        string    `json:"cidade,omitempty"`
	UF            string    `json:"uf,omitempty"`
	StatusID      *int64    `json:"status_id"`
	Telefone1     string    `json:"telefone_1,omitempty"`
	Telefone2     string    `json:"telefone_2,omitempty"`
	Telefone3     string    `json:"telefone_3,omitempty"`
	Telefone4     string    `json:"telefone_4,omitempty"`
	Telefone5     string    `json:"telefone_5,omitempty"`
	Observacoes   string    `json:"observacoes,omitempty"`
	Origem        string    `json:"origem"`
	AssignedTo    *string   `json:"assigned_to"`
	CreatedAt     time.Time `json:"created_at"`
}

// LeadWithRelations é o lead expandido com o status e o responsável,
// no formato que as listagens e o dashboard consomem.
type LeadWithRelations struct {
	Lead
	Status   *StatusOption `json:"status_opcoes"`
	Assignee *Profile      `json:"profiles"`
}

// Factory
func NewLead(nome, origem string) (*Lead, error) {
	lead := &Lead{
		ID:        uuid.New().String(),
		Nome:      strings.TrimSpace(nome),
		Origem:    strings.TrimSpace(origem),
		CreatedAt: time.Now(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if strings.TrimSpace(l.Nome) == "" {
		return errors.New("nome is required")
	}
	if strings.TrimSpace(l.Origem) == "" {
		return errors.New("origem is required")
	}
	if l.Sexo != "" && !contains(ValidSexos, l.Sexo) {
		return errors.New("sexo must be M, F or I")
	}
	if l.Classe != "" && !contains(ValidClasses, l.Classe) {
		return errors.New("classe must be A, B, C, D or E")
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
