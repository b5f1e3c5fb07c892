package entity

import (
	"errors"
	"strings"
)

// StatusOption é uma etapa do funil (SEM CONTATO, AGENDADO, ...).
// A descrição é sempre armazenada em caixa alta.
type StatusOption struct {
	ID        int64  `json:"id"`
	Descricao string `json:"descricao"`
}

// Descrições usadas pelas classificações do dashboard. O vínculo é
// textual: renomear um desses status quebra a classificação (limitação
// conhecida, herdada do modelo de dados).
const (
	StatusSemContato    = "SEM CONTATO"
	StatusRetornar      = "RETORNAR"
	StatusTemInteresse  = "TEM INTERESSE"
	StatusAgendado      = "AGENDADO"
	StatusContatoErrado = "CONTATO ERRADO"
	StatusSemInteresse  = "SEM INTERESSE"
)

func NormalizeDescricao(descricao string) string {
	return strings.ToUpper(strings.TrimSpace(descricao))
}

func (s *StatusOption) Validate() error {
	if NormalizeDescricao(s.Descricao) == "" {
		return errors.New("descricao is required")
	}
	return nil
}
