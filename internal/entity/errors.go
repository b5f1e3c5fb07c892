package entity

import "errors"

var (
	ErrLeadNotFound       = errors.New("lead não encontrado")
	ErrStatusNotFound     = errors.New("status não encontrado")
	ErrStatusInUse        = errors.New("status em uso por leads existentes")
	ErrInteracaoNotFound  = errors.New("interação não encontrada")
	ErrProfileNotFound    = errors.New("perfil não encontrado")
	ErrDescricaoDuplicada = errors.New("já existe um status com essa descrição")
)
