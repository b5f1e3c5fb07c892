package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xavierca1/ligue-leads/internal/entity"
)

type StatusRepository struct {
	DB *sql.DB
}

func NewStatusRepository(db *sql.DB) *StatusRepository {
	return &StatusRepository{DB: db}
}

func (r *StatusRepository) ListAll(ctx context.Context) ([]entity.StatusOption, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, descricao FROM status_opcoes ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("falha ao listar status: %w", err)
	}
	defer rows.Close()

	statuses := []entity.StatusOption{}
	for rows.Next() {
		var status entity.StatusOption
		if err := rows.Scan(&status.ID, &status.Descricao); err != nil {
			return nil, fmt.Errorf("falha ao ler status: %w", err)
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}

func (r *StatusRepository) Create(ctx context.Context, status *entity.StatusOption) error {
	err := r.DB.QueryRowContext(ctx,
		"INSERT INTO status_opcoes (descricao) VALUES ($1) RETURNING id",
		status.Descricao).Scan(&status.ID)
	if err != nil {
		return wrapStatusWriteError(err)
	}
	return nil
}

func (r *StatusRepository) Update(ctx context.Context, id int64, descricao string) error {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE status_opcoes SET descricao = $1 WHERE id = $2", descricao, id)
	if err != nil {
		return wrapStatusWriteError(err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return entity.ErrStatusNotFound
	}
	return nil
}

// Delete conta com o ON DELETE RESTRICT do schema: se algum lead ainda
// aponta para o status, o banco devolve 23503 e mapeamos para
// ErrStatusInUse. Isso fecha a janela entre a pré-contagem do caso de
// uso e o delete.
func (r *StatusRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx,
		"DELETE FROM status_opcoes WHERE id = $1", id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return entity.ErrStatusInUse
		}
		return fmt.Errorf("falha ao excluir status: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return entity.ErrStatusNotFound
	}
	return nil
}

// 23505 = descricao duplicada (unique)
func wrapStatusWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return entity.ErrDescricaoDuplicada
	}
	return fmt.Errorf("falha ao gravar status: %w", err)
}
