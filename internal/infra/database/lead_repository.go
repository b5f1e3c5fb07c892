package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xavierca1/ligue-leads/internal/entity"
)

// Campos de ordenação aceitos pela listagem. Qualquer outro valor cai
// no default (created_at desc).
var leadSortColumns = map[string]string{
	"nome":       "l.nome",
	"created_at": "l.created_at",
	"status_id":  "l.status_id",
}

type ListLeadsParams struct {
	StatusID      *int64
	Search        string
	Page          int // 1-based
	PageSize      int
	SortField     string
	SortDirection string // "asc" ou "desc"
}

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadSelectColumns = `
	l.id, l.nome,
	COALESCE(l.sexo, ''), l.ano_nascimento, COALESCE(l.classe, ''),
	COALESCE(l.endereco, ''), COALESCE(l.numero, ''), COALESCE(l.complemento, ''),
	COALESCE(l.bairro, ''), COALESCE(l.cep, ''), COALESCE(l.cidade, ''), COALESCE(l.uf, ''),
	l.status_id,
	COALESCE(l.telefone_1, ''), COALESCE(l.telefone_2, ''), COALESCE(l.telefone_3, ''),
	COALESCE(l.telefone_4, ''), COALESCE(l.telefone_5, ''),
	COALESCE(l.observacoes, ''), COALESCE(l.origem, ''),
	l.assigned_to, l.created_at,
	s.id, s.descricao,
	p.id, p.nome, p.email`

const leadFromJoins = `
	FROM leads l
	LEFT JOIN status_opcoes s ON s.id = l.status_id
	LEFT JOIN profiles p ON p.id = l.assigned_to`

// List devolve uma página de leads com status e responsável, mais o
// total exato de linhas que casam com o filtro (para a paginação).
func (r *LeadRepository) List(ctx context.Context, params ListLeadsParams) ([]entity.LeadWithRelations, int, error) {
	where, args := buildLeadFilter(params)

	var total int
	countQuery := "SELECT COUNT(*) FROM leads l" + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("falha ao contar leads: %w", err)
	}

	column, ok := leadSortColumns[params.SortField]
	direction := "ASC"
	if !ok {
		column = "l.created_at"
		direction = "DESC"
	} else if strings.EqualFold(params.SortDirection, "desc") {
		direction = "DESC"
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	// Desempate por id para a ordem ser estável entre páginas
	query := "SELECT" + leadSelectColumns + leadFromJoins + where +
		fmt.Sprintf(" ORDER BY %s %s, l.id LIMIT $%d OFFSET $%d",
			column, direction, len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("falha ao listar leads: %w", err)
	}
	defer rows.Close()

	leads, err := scanLeadRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

// ListAll devolve o conjunto inteiro (com joins) para o dashboard.
func (r *LeadRepository) ListAll(ctx context.Context) ([]entity.LeadWithRelations, error) {
	query := "SELECT" + leadSelectColumns + leadFromJoins + " ORDER BY l.created_at DESC, l.id"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar leads: %w", err)
	}
	defer rows.Close()

	return scanLeadRows(rows)
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.LeadWithRelations, error) {
	query := "SELECT" + leadSelectColumns + leadFromJoins + " WHERE l.id = $1"

	lead, err := scanLeadRow(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			id, nome, sexo, ano_nascimento, classe,
			endereco, numero, complemento, bairro, cep, cidade, uf,
			status_id, telefone_1, telefone_2, telefone_3, telefone_4, telefone_5,
			observacoes, origem, assigned_to, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`

	_, err := r.DB.ExecContext(ctx, query, leadInsertArgs(lead)...)
	if err != nil {
		return wrapLeadWriteError(err)
	}
	return nil
}

// CreateBatch insere um lote de leads num único INSERT multi-linha.
// É assim que a importação de CSV persiste cada batch.
func (r *LeadRepository) CreateBatch(ctx context.Context, leads []*entity.Lead) error {
	if len(leads) == 0 {
		return nil
	}

	const fields = 22
	placeholders := make([]string, 0, len(leads))
	args := make([]any, 0, len(leads)*fields)

	for i, lead := range leads {
		base := i * fields
		marks := make([]string, fields)
		for j := range marks {
			marks[j] = fmt.Sprintf("$%d", base+j+1)
		}
		placeholders = append(placeholders, "("+strings.Join(marks, ", ")+")")
		args = append(args, leadInsertArgs(lead)...)
	}

	query := `
		INSERT INTO leads (
			id, nome, sexo, ano_nascimento, classe,
			endereco, numero, complemento, bairro, cep, cidade, uf,
			status_id, telefone_1, telefone_2, telefone_3, telefone_4, telefone_5,
			observacoes, origem, assigned_to, created_at
		) VALUES ` + strings.Join(placeholders, ", ")

	_, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapLeadWriteError(err)
	}
	return nil
}

// LeadUpdate carrega só os campos presentes na requisição. Ponteiro
// nil significa "não mexer"; ClearStatus/ClearAssignedTo gravam NULL.
type LeadUpdate struct {
	Nome          *string
	Sexo          *string
	AnoNascimento *int
	Classe        *string
	Endereco      *string
	Numero        *string
	Complemento   *string
	Bairro        *string
	CEP           *string
	Cidade        *string
	UF            *string
	Telefone1     *string
	Telefone2     *string
	Telefone3     *string
	Telefone4     *string
	Telefone5     *string
	Observacoes   *string
	Origem        *string

	StatusID        *int64
	ClearStatus     bool
	AssignedTo      *string
	ClearAssignedTo bool
}

func (u *LeadUpdate) IsEmpty() bool {
	return u.Nome == nil && u.Sexo == nil && u.AnoNascimento == nil && u.Classe == nil &&
		u.Endereco == nil && u.Numero == nil && u.Complemento == nil && u.Bairro == nil &&
		u.CEP == nil && u.Cidade == nil && u.UF == nil &&
		u.Telefone1 == nil && u.Telefone2 == nil && u.Telefone3 == nil &&
		u.Telefone4 == nil && u.Telefone5 == nil &&
		u.Observacoes == nil && u.Origem == nil &&
		u.StatusID == nil && !u.ClearStatus &&
		u.AssignedTo == nil && !u.ClearAssignedTo
}

// UpdatePartial grava apenas os campos presentes; os demais ficam
// intactos (atualizar observacoes nunca toca em status_id).
func (r *LeadRepository) UpdatePartial(ctx context.Context, id string, update LeadUpdate) error {
	sets := []string{}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	textFields := []struct {
		column string
		value  *string
	}{
		{"nome", update.Nome}, {"sexo", update.Sexo}, {"classe", update.Classe},
		{"endereco", update.Endereco}, {"numero", update.Numero},
		{"complemento", update.Complemento}, {"bairro", update.Bairro},
		{"cep", update.CEP}, {"cidade", update.Cidade}, {"uf", update.UF},
		{"telefone_1", update.Telefone1}, {"telefone_2", update.Telefone2},
		{"telefone_3", update.Telefone3}, {"telefone_4", update.Telefone4},
		{"telefone_5", update.Telefone5},
		{"observacoes", update.Observacoes}, {"origem", update.Origem},
	}
	for _, f := range textFields {
		if f.value != nil {
			addSet(f.column, nullString(*f.value))
		}
	}

	if update.AnoNascimento != nil {
		addSet("ano_nascimento", *update.AnoNascimento)
	}

	switch {
	case update.ClearStatus:
		sets = append(sets, "status_id = NULL")
	case update.StatusID != nil:
		addSet("status_id", *update.StatusID)
	}

	switch {
	case update.ClearAssignedTo:
		sets = append(sets, "assigned_to = NULL")
	case update.AssignedTo != nil:
		addSet("assigned_to", *update.AssignedTo)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE leads SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapLeadWriteError(err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM leads WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("falha ao excluir lead: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

// CountByStatus é a checagem "status em uso" da exclusão de status.
func (r *LeadRepository) CountByStatus(ctx context.Context, statusID int64) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM leads WHERE status_id = $1", statusID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("falha ao contar leads por status: %w", err)
	}
	return count, nil
}

func buildLeadFilter(params ListLeadsParams) (string, []any) {
	conds := []string{}
	args := []any{}

	if params.StatusID != nil {
		args = append(args, *params.StatusID)
		conds = append(conds, fmt.Sprintf("l.status_id = $%d", len(args)))
	}

	if search := strings.TrimSpace(params.Search); search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(l.nome ILIKE $%d OR l.telefone_1 ILIKE $%d OR l.telefone_2 ILIKE $%d)", n, n, n))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func leadInsertArgs(lead *entity.Lead) []any {
	return []any{
		lead.ID,
		lead.Nome,
		nullString(lead.Sexo),
		lead.AnoNascimento,
		nullString(lead.Classe),
		nullString(lead.Endereco),
		nullString(lead.Numero),
		nullString(lead.Complemento),
		nullString(lead.Bairro),
		nullString(lead.CEP),
		nullString(lead.Cidade),
		nullString(lead.UF),
		lead.StatusID,
		nullString(lead.Telefone1),
		nullString(lead.Telefone2),
		nullString(lead.Telefone3),
		nullString(lead.Telefone4),
		nullString(lead.Telefone5),
		nullString(lead.Observacoes),
		nullString(lead.Origem),
		lead.AssignedTo,
		lead.CreatedAt,
	}
}

// 23503 = violação de FK (status_id ou assigned_to apontando para
// registro inexistente)
func wrapLeadWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return fmt.Errorf("referência inválida em status_id ou assigned_to: %w", err)
	}
	return fmt.Errorf("falha ao gravar lead: %w", err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(scanner rowScanner) (*entity.LeadWithRelations, error) {
	var lead entity.LeadWithRelations
	var anoNascimento sql.NullInt64
	var statusID, joinedStatusID sql.NullInt64
	var statusDescricao sql.NullString
	var assignedTo sql.NullString
	var profileID, profileNome, profileEmail sql.NullString

	err := scanner.Scan(
		&lead.ID, &lead.Nome,
		&lead.Sexo, &anoNascimento, &lead.Classe,
		&lead.Endereco, &lead.Numero, &lead.Complemento,
		&lead.Bairro, &lead.CEP, &lead.Cidade, &lead.UF,
		&statusID,
		&lead.Telefone1, &lead.Telefone2, &lead.Telefone3,
		&lead.Telefone4, &lead.Telefone5,
		&lead.Observacoes, &lead.Origem,
		&assignedTo, &lead.CreatedAt,
		&joinedStatusID, &statusDescricao,
		&profileID, &profileNome, &profileEmail,
	)
	if err != nil {
		return nil, err
	}

	if anoNascimento.Valid {
		ano := int(anoNascimento.Int64)
		lead.AnoNascimento = &ano
	}
	if statusID.Valid {
		lead.StatusID = &statusID.Int64
	}
	if assignedTo.Valid {
		lead.AssignedTo = &assignedTo.String
	}
	if joinedStatusID.Valid {
		lead.Status = &entity.StatusOption{
			ID:        joinedStatusID.Int64,
			Descricao: statusDescricao.String,
		}
	}
	if profileID.Valid {
		lead.Assignee = &entity.Profile{
			ID:    profileID.String,
			Nome:  profileNome.String,
			Email: profileEmail.String,
		}
	}

	return &lead, nil
}

func scanLeadRow(row *sql.Row) (*entity.LeadWithRelations, error) {
	return scanLead(row)
}

func scanLeadRows(rows *sql.Rows) ([]entity.LeadWithRelations, error) {
	leads := []entity.LeadWithRelations{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler lead: %w", err)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("falha ao percorrer leads: %w", err)
	}
	return leads, nil
}
