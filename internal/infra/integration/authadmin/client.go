package authadmin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fala com o endpoint administrativo do serviço de
// autenticação. Criar e excluir usuário mexem na identidade em si, por
// isso não são escrita direta na tabela: passam por aqui, sempre com o
// bearer da sessão do admin que está agindo.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) CreateUser(ctx context.Context, bearer string, input CreateUserInput) (*User, error) {
	url := fmt.Sprintf("%s/admin/users", c.baseURL)

	payload := createUserRequest{
		Email:    input.Email,
		Password: input.Password,
		Nome:     input.Nome,
		Role:     input.Role,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao marshal usuário: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, bearer)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro request admin: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("erro criar usuário: %s", readErrorMessage(resp))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("erro decode admin: %w", err)
	}

	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, bearer string, userID string) error {
	url := fmt.Sprintf("%s/admin/users/delete", c.baseURL)

	jsonBody, err := json.Marshal(deleteUserRequest{UserID: userID})
	if err != nil {
		return fmt.Errorf("erro ao marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	c.setHeaders(req, bearer)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro request admin: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("erro excluir usuário: %s", readErrorMessage(resp))
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request, bearer string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)
}

func readErrorMessage(resp *http.Response) string {
	body, _ := io.ReadAll(resp.Body)

	var errResp errorResponse
	if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
		return errResp.Message
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}
