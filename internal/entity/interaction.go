package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ValidTiposInteracao = []string{"ligacao", "mensagem", "reuniao", "nota", "email"}

// LeadInteracao é imutável depois de criada: não existe update, só
// delete (restrito a admin).
type LeadInteracao struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	UserID    string    `json:"user_id"`
	Tipo      string    `json:"tipo"`
	Descricao string    `json:"descricao"`
	CreatedAt time.Time `json:"created_at"`
}

type LeadInteracaoWithAuthor struct {
	LeadInteracao
	Author *Profile `json:"profiles"`
}

func NewLeadInteracao(leadID, userID, tipo, descricao string) (*LeadInteracao, error) {
	interacao := &LeadInteracao{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		UserID:    userID,
		Tipo:      tipo,
		Descricao: strings.TrimSpace(descricao),
		CreatedAt: time.Now(),
	}

	if err := interacao.Validate(); err != nil {
		return nil, err
	}

	return interacao, nil
}

func (i *LeadInteracao) Validate() error {
	if i.LeadID == "" {
		return errors.New("lead_id is required")
	}
	if i.UserID == "" {
		return errors.New("user_id is required")
	}
	if i.Descricao == "" {
		return errors.New("descricao is required")
	}
	if !contains(ValidTiposInteracao, i.Tipo) {
		return errors.New("tipo must be ligacao, mensagem, reuniao, nota or email")
	}
	return nil
}
