package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type InteractionRepository struct {
	DB *sql.DB
}

func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

// ListByLead devolve o histórico do lead, mais recente primeiro, com o
// autor de cada interação.
func (r *InteractionRepository) ListByLead(ctx context.Context, leadID string) ([]entity.LeadInteracaoWithAuthor, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT i.id, i.lead_id, i.user_id, i.tipo, i.descricao, i.created_at,
			p.id, COALESCE(p.nome, ''), COALESCE(p.email, '')
		FROM lead_interacoes i
		LEFT JOIN profiles p ON p.id = i.user_id
		WHERE i.lead_id = $1
		ORDER BY i.created_at DESC
	`, leadID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar interações: %w", err)
	}
	defer rows.Close()

	interacoes := []entity.LeadInteracaoWithAuthor{}
	for rows.Next() {
		var interacao entity.LeadInteracaoWithAuthor
		var authorID, authorNome, authorEmail sql.NullString

		err := rows.Scan(
			&interacao.ID, &interacao.LeadID, &interacao.UserID,
			&interacao.Tipo, &interacao.Descricao, &interacao.CreatedAt,
			&authorID, &authorNome, &authorEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler interação: %w", err)
		}

		if authorID.Valid {
			interacao.Author = &entity.Profile{
				ID:    authorID.String,
				Nome:  authorNome.String,
				Email: authorEmail.String,
			}
		}

		interacoes = append(interacoes, interacao)
	}
	return interacoes, rows.Err()
}

func (r *InteractionRepository) Create(ctx context.Context, interacao *entity.LeadInteracao) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO lead_interacoes (id, lead_id, user_id, tipo, descricao, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, interacao.ID, interacao.LeadID, interacao.UserID,
		interacao.Tipo, interacao.Descricao, interacao.CreatedAt)
	if err != nil {
		return fmt.Errorf("falha ao gravar interação: %w", err)
	}
	return nil
}

func (r *InteractionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx,
		"DELETE FROM lead_interacoes WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("falha ao excluir interação: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return entity.ErrInteracaoNotFound
	}
	return nil
}
