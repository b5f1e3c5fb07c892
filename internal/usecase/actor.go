package usecase

import "github.com/xavierca1/ligue-leads/internal/entity"

// Actor é quem está executando a operação, extraído do token pela
// camada HTTP. Todo caso de uso que muda estado recebe um Actor e
// decide a autorização aqui, não na apresentação.
type Actor struct {
	ID    string
	Role  entity.AppRole
	Token string // bearer da sessão, repassado ao endpoint administrativo
}

func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}
