package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendAssignment avisa o responsável que um lead caiu na carteira dele.
func (s *EmailSender) SendAssignment(to, assigneeNome, leadNome string) error {
	if assigneeNome == "" {
		assigneeNome = to
	}

	body := fmt.Sprintf(
		"<p>Olá, %s!</p><p>O lead <strong>%s</strong> foi atribuído a você. Acesse o painel para dar o próximo passo.</p>",
		assigneeNome, leadNome,
	)

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Novo lead atribuído: %s", leadNome))
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}

// SendWelcome dá boas-vindas a um usuário recém-criado pelo admin.
func (s *EmailSender) SendWelcome(to, nome string) error {
	if nome == "" {
		nome = to
	}

	body := fmt.Sprintf(
		"<p>Olá, %s!</p><p>Sua conta no painel de leads foi criada. Bom trabalho!</p>",
		nome,
	)

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Bem-vindo ao painel de leads")
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
