package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/cache"
)

// ImportBatchSize é o tamanho de cada lote enviado ao banco.
const ImportBatchSize = 50

// Tabela fixa de sinônimos de cabeçalho -> campo canônico do lead. As
// planilhas chegam com nomes variados (pt/en, com e sem acento).
var csvColumnAliases = map[string]string{
	"nome":           "nome",
	"name":           "nome",
	"sexo":           "sexo",
	"genero":         "sexo",
	"ano_nascimento": "ano_nascimento",
	"ano":            "ano_nascimento",
	"nascimento":     "ano_nascimento",
	"classe":         "classe",
	"endereco":       "endereco",
	"endereço":       "endereco",
	"address":        "endereco",
	"numero":         "numero",
	"número":         "numero",
	"num":            "numero",
	"complemento":    "complemento",
	"bairro":         "bairro",
	"cep":            "cep",
	"cidade":         "cidade",
	"city":           "cidade",
	"uf":             "uf",
	"estado":         "uf",
	"state":          "uf",
	"telefone_1":     "telefone_1",
	"telefone1":      "telefone_1",
	"telefone":       "telefone_1",
	"phone":          "telefone_1",
	"celular":        "telefone_1",
	"telefone_2":     "telefone_2",
	"telefone2":      "telefone_2",
	"telefone_3":     "telefone_3",
	"telefone3":      "telefone_3",
	"telefone_4":     "telefone_4",
	"telefone4":      "telefone_4",
	"telefone_5":     "telefone_5",
	"telefone5":      "telefone_5",
	"observacoes":    "observacoes",
	"observações":    "observacoes",
	"obs":            "observacoes",
	"notes":          "observacoes",
}

type CSVRow map[string]string

// ParseCSV quebra o texto no formato das planilhas exportadas: sem
// escaping além de aspas soltas, delimitador ';' se o cabeçalho tiver
// um, senão ','.
func ParseCSV(text string) (headers []string, rows []CSVRow) {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, nil
	}

	delimiter := ","
	if strings.Contains(lines[0], ";") {
		delimiter = ";"
	}

	for _, h := range strings.Split(lines[0], delimiter) {
		headers = append(headers, strings.ToLower(stripQuotes(h)))
	}

	for _, line := range lines[1:] {
		values := strings.Split(line, delimiter)
		row := CSVRow{}
		for i, header := range headers {
			if i < len(values) {
				row[header] = stripQuotes(values[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return headers, rows
}

// MapRowToLead aplica a tabela de sinônimos e as normalizações por
// campo. Valor inválido em sexo/classe/ano é descartado em silêncio
// (cai só o campo, não a linha). Devolve nil quando não há nome.
func MapRowToLead(row CSVRow, statusID *int64, assignedTo *string, origem string) *entity.Lead {
	lead := &entity.Lead{
		ID:         uuid.New().String(),
		StatusID:   statusID,
		AssignedTo: assignedTo,
		Origem:     origem,
		CreatedAt:  time.Now(),
	}

	for key, value := range row {
		field, ok := csvColumnAliases[strings.ToLower(key)]
		if !ok || value == "" {
			continue
		}

		switch field {
		case "nome":
			lead.Nome = value
		case "sexo":
			normalized := strings.ToUpper(value[:1])
			if normalized == "M" || normalized == "F" || normalized == "I" {
				lead.Sexo = normalized
			}
		case "ano_nascimento":
			if ano, err := strconv.Atoi(value); err == nil {
				lead.AnoNascimento = &ano
			}
		case "classe":
			normalized := strings.ToUpper(value[:1])
			if strings.Contains("ABCDE", normalized) {
				lead.Classe = normalized
			}
		case "endereco":
			lead.Endereco = value
		case "numero":
			lead.Numero = value
		case "complemento":
			lead.Complemento = value
		case "bairro":
			lead.Bairro = value
		case "cep":
			lead.CEP = value
		case "cidade":
			lead.Cidade = value
		case "uf":
			// Corta por caractere, não por byte: "São Paulo" vira
			// "SÃ", nunca UTF-8 inválido que o banco recusaria
			uf := strings.ToUpper(value)
			if runes := []rune(uf); len(runes) > 2 {
				uf = string(runes[:2])
			}
			lead.UF = uf
		case "telefone_1":
			lead.Telefone1 = value
		case "telefone_2":
			lead.Telefone2 = value
		case "telefone_3":
			lead.Telefone3 = value
		case "telefone_4":
			lead.Telefone4 = value
		case "telefone_5":
			lead.Telefone5 = value
		case "observacoes":
			lead.Observacoes = value
		}
	}

	if strings.TrimSpace(lead.Nome) == "" {
		return nil
	}
	return lead
}

type ImportLeadsInput struct {
	CSV        string
	StatusID   *int64
	AssignedTo *string
	Origem     string
}

type ImportResult struct {
	TotalRows   int `json:"total_rows"`
	ValidRows   int `json:"valid_rows"`
	SkippedRows int `json:"skipped_rows"`
	Imported    int `json:"imported"`
	Batches     int `json:"batches"`
}

type ImportLeadsUseCase struct {
	Repo  LeadRepositoryInterface
	Cache *cache.QueryCache
}

func NewImportLeadsUseCase(repo LeadRepositoryInterface, queryCache *cache.QueryCache) *ImportLeadsUseCase {
	return &ImportLeadsUseCase{Repo: repo, Cache: queryCache}
}

// Execute importa em lotes de 50, sequencialmente, chamando progress
// com a fração acumulada depois de cada lote persistido. Lote que
// falha aborta o resto; os lotes já gravados ficam (importação parcial
// é o modo de falha aceito).
func (uc *ImportLeadsUseCase) Execute(ctx context.Context, actor Actor, input ImportLeadsInput, progress func(float64)) (*ImportResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden("importar leads")
	}

	origem := strings.TrimSpace(input.Origem)
	if origem == "" {
		origem = "importacao"
	}

	_, rows := ParseCSV(input.CSV)

	result := &ImportResult{TotalRows: len(rows)}

	leads := []*entity.Lead{}
	for _, row := range rows {
		if lead := MapRowToLead(row, input.StatusID, input.AssignedTo, origem); lead != nil {
			leads = append(leads, lead)
		}
	}
	result.ValidRows = len(leads)
	result.SkippedRows = result.TotalRows - result.ValidRows

	if len(leads) == 0 {
		return nil, &DomainError{
			Code:    "NO_VALID_ROWS",
			Message: "Não foram encontrados leads com nome preenchido.",
		}
	}

	batches := [][]*entity.Lead{}
	for i := 0; i < len(leads); i += ImportBatchSize {
		end := i + ImportBatchSize
		if end > len(leads) {
			end = len(leads)
		}
		batches = append(batches, leads[i:end])
	}
	result.Batches = len(batches)

	defer func() {
		if result.Imported > 0 {
			uc.Cache.Invalidate(cache.EntityLeads)
		}
	}()

	for i, batch := range batches {
		if err := uc.Repo.CreateBatch(ctx, batch); err != nil {
			return result, &TechnicalError{
				Code:    "IMPORT_FAILED",
				Message: "falha no lote " + strconv.Itoa(i+1) + ": " + err.Error(),
			}
		}
		result.Imported += len(batch)
		if progress != nil {
			progress(float64(i+1) / float64(len(batches)))
		}
	}

	return result, nil
}

func stripQuotes(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
