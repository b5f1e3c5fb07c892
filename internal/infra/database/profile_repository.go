package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) ListAll(ctx context.Context) ([]entity.Profile, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, COALESCE(nome, ''), COALESCE(email, ''), created_at
		FROM profiles
		ORDER BY nome
	`)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar perfis: %w", err)
	}
	defer rows.Close()

	profiles := []entity.Profile{}
	for rows.Next() {
		var profile entity.Profile
		if err := rows.Scan(&profile.ID, &profile.Nome, &profile.Email, &profile.CreatedAt); err != nil {
			return nil, fmt.Errorf("falha ao ler perfil: %w", err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	var profile entity.Profile
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, COALESCE(nome, ''), COALESCE(email, ''), created_at
		FROM profiles
		WHERE id = $1
	`, id).Scan(&profile.ID, &profile.Nome, &profile.Email, &profile.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, entity.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar perfil: %w", err)
	}
	return &profile, nil
}

func (r *ProfileRepository) UpdateNome(ctx context.Context, id, nome string) error {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE profiles SET nome = $1 WHERE id = $2", nullString(nome), id)
	if err != nil {
		return fmt.Errorf("falha ao atualizar perfil: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return entity.ErrProfileNotFound
	}
	return nil
}

// ListWithRoles faz o join de profiles + user_roles; quem não tem
// linha de role aparece como "user".
func (r *ProfileRepository) ListWithRoles(ctx context.Context) ([]entity.UserWithRole, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT p.id, COALESCE(p.nome, ''), COALESCE(p.email, ''),
			COALESCE(ur.role, 'user'), p.created_at
		FROM profiles p
		LEFT JOIN user_roles ur ON ur.user_id = p.id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar usuários: %w", err)
	}
	defer rows.Close()

	users := []entity.UserWithRole{}
	for rows.Next() {
		var user entity.UserWithRole
		if err := rows.Scan(&user.ID, &user.Nome, &user.Email, &user.Role, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("falha ao ler usuário: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpsertRole grava a role do usuário (cria a linha se ainda não
// existir, caso de contas antigas sem role explícita).
func (r *ProfileRepository) UpsertRole(ctx context.Context, userID string, role entity.AppRole) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET role = EXCLUDED.role
	`, userID, role)
	if err != nil {
		return fmt.Errorf("falha ao atualizar role: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindRole(ctx context.Context, userID string) (entity.AppRole, error) {
	var role entity.AppRole
	err := r.DB.QueryRowContext(ctx,
		"SELECT role FROM user_roles WHERE user_id = $1", userID).Scan(&role)
	if err == sql.ErrNoRows {
		return entity.RoleUser, nil
	}
	if err != nil {
		return "", fmt.Errorf("falha ao buscar role: %w", err)
	}
	return role, nil
}
