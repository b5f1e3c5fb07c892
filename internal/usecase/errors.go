package usecase

// DomainError é falha de regra de negócio: volta para o usuário como
// notificação, nunca derruba o processo.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError é falha de infraestrutura (banco, rede, broker).
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

// ErrForbidden padroniza a recusa de ação privilegiada. A UI esconde
// os botões, mas a regra vale aqui no servidor.
func ErrForbidden(action string) *DomainError {
	return &DomainError{
		Code:    "FORBIDDEN",
		Message: "apenas administradores podem " + action,
	}
}
