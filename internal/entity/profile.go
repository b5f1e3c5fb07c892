package entity

import "time"

type AppRole string

const (
	RoleAdmin AppRole = "admin"
	RoleUser  AppRole = "user"
)

// Profile espelha a identidade criada no serviço de autenticação.
// O ID é o mesmo id da conta; o registro nasce no provisionamento.
type Profile struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type UserRole struct {
	ID     string  `json:"id"`
	UserID string  `json:"user_id"`
	Role   AppRole `json:"role"`
}

// UserWithRole é o join de profile + role. Quem não tem linha em
// user_roles aparece como "user".
type UserWithRole struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      AppRole   `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
