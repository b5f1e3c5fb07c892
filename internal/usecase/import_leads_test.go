package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/cache"
)

func adminActor() Actor {
	return Actor{ID: "admin-1", Role: entity.RoleAdmin}
}

func userActor() Actor {
	return Actor{ID: "user-1", Role: entity.RoleUser}
}

func buildCSV(rows int) string {
	var sb strings.Builder
	sb.WriteString("nome,telefone\n")
	for i := 0; i < rows; i++ {
		sb.WriteString(fmt.Sprintf("Lead %03d,1199999%04d\n", i, i))
	}
	return sb.String()
}

// TestParseCSVDetectaDelimitador - ';' no cabeçalho muda o delimitador
func TestParseCSVDetectaDelimitador(t *testing.T) {
	headers, rows := ParseCSV("nome;telefone\nMaria;11988887777\n")

	assert.Equal(t, []string{"nome", "telefone"}, headers)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Maria", rows[0]["nome"])
	assert.Equal(t, "11988887777", rows[0]["telefone"])
}

func TestParseCSVIgnoraLinhasVaziasERemoveAspas(t *testing.T) {
	_, rows := ParseCSV("nome,cidade\n\n\"João\",\"São Paulo\"\n\n")

	assert.Len(t, rows, 1)
	assert.Equal(t, "João", rows[0]["nome"])
	assert.Equal(t, "São Paulo", rows[0]["cidade"])
}

func TestParseCSVLinhaCurtaPreencheVazio(t *testing.T) {
	_, rows := ParseCSV("nome,telefone,cidade\nAna,1197776666\n")

	assert.Len(t, rows, 1)
	assert.Equal(t, "", rows[0]["cidade"])
}

// TestMapRowToLeadAliases - cabeçalhos em inglês e sinônimos caem nos
// campos canônicos
func TestMapRowToLeadAliases(t *testing.T) {
	row := CSVRow{
		"name":    "Carlos",
		"celular": "11955554444",
		"estado":  "sp",
		"obs":     "retornar à tarde",
	}

	lead := MapRowToLead(row, nil, nil, "importacao")

	assert.NotNil(t, lead)
	assert.Equal(t, "Carlos", lead.Nome)
	assert.Equal(t, "11955554444", lead.Telefone1)
	assert.Equal(t, "SP", lead.UF)
	assert.Equal(t, "retornar à tarde", lead.Observacoes)
	assert.Equal(t, "importacao", lead.Origem)
	assert.NotEmpty(t, lead.ID)
}

func TestMapRowToLeadDescartaCampoInvalidoMasNaoALinha(t *testing.T) {
	row := CSVRow{
		"nome": "Paula",
		"sexo": "X",
		"ano":  "mil novecentos",
	}

	lead := MapRowToLead(row, nil, nil, "importacao")

	assert.NotNil(t, lead)
	assert.Equal(t, "Paula", lead.Nome)
	assert.Empty(t, lead.Sexo)
	assert.Nil(t, lead.AnoNascimento)
}

// TestMapRowToLeadTruncaUFPorCaractere - estado por extenso com acento
// corta em dois caracteres, sem quebrar a codificação no meio
func TestMapRowToLeadTruncaUFPorCaractere(t *testing.T) {
	lead := MapRowToLead(CSVRow{"nome": "Ana", "estado": "São Paulo"}, nil, nil, "importacao")

	assert.NotNil(t, lead)
	assert.Equal(t, "SÃ", lead.UF)
	assert.True(t, utf8.ValidString(lead.UF))
}

func TestMapRowToLeadSemNomeDevolveNil(t *testing.T) {
	row := CSVRow{"telefone": "11933332222"}

	assert.Nil(t, MapRowToLead(row, nil, nil, "importacao"))
}

func TestMapRowToLeadAplicaStatusEResponsavel(t *testing.T) {
	statusID := int64(4)
	assignee := "user-7"

	lead := MapRowToLead(CSVRow{"nome": "Rita"}, &statusID, &assignee, "planilha-2026")

	assert.Equal(t, &statusID, lead.StatusID)
	assert.Equal(t, &assignee, lead.AssignedTo)
	assert.Equal(t, "planilha-2026", lead.Origem)
}

// TestImportLeads120LinhasEm3Lotes - 120 linhas válidas viram 3 lotes
// de 50/50/20 com progresso monotônico terminando em 100%
func TestImportLeads120LinhasEm3Lotes(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)
	mockRepo.On("CreateBatch", ctx, mock.Anything).Return(nil)

	uc := NewImportLeadsUseCase(mockRepo, cache.New())

	var progresso []float64
	result, err := uc.Execute(ctx, adminActor(), ImportLeadsInput{CSV: buildCSV(120)}, func(f float64) {
		progresso = append(progresso, f)
	})

	assert.NoError(t, err)
	assert.Equal(t, 120, result.TotalRows)
	assert.Equal(t, 120, result.ValidRows)
	assert.Equal(t, 120, result.Imported)
	assert.Equal(t, 3, result.Batches)

	assert.Len(t, progresso, 3)
	for i := 1; i < len(progresso); i++ {
		assert.Greater(t, progresso[i], progresso[i-1])
	}
	assert.Equal(t, 1.0, progresso[len(progresso)-1])

	mockRepo.AssertNumberOfCalls(t, "CreateBatch", 3)
}

// TestImportLeadsFalhaNoSegundoLoteMantemOPrimeiro - lote que falha
// aborta o resto, mas o que já foi gravado fica
func TestImportLeadsFalhaNoSegundoLoteMantemOPrimeiro(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)
	mockRepo.On("CreateBatch", ctx, mock.Anything).Return(nil).Once()
	mockRepo.On("CreateBatch", ctx, mock.Anything).Return(errors.New("deadlock detected")).Once()

	uc := NewImportLeadsUseCase(mockRepo, cache.New())

	result, err := uc.Execute(ctx, adminActor(), ImportLeadsInput{CSV: buildCSV(120)}, nil)

	assert.Error(t, err)
	assert.True(t, IsTechnicalError(err))
	assert.Equal(t, 50, result.Imported)
	mockRepo.AssertNumberOfCalls(t, "CreateBatch", 2)
}

func TestImportLeadsRecusaNaoAdmin(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	uc := NewImportLeadsUseCase(mockRepo, cache.New())

	result, err := uc.Execute(context.Background(), userActor(), ImportLeadsInput{CSV: buildCSV(5)}, nil)

	assert.Error(t, err)
	assert.True(t, IsDomainError(err))
	assert.Nil(t, result)
	mockRepo.AssertNotCalled(t, "CreateBatch")
}

func TestImportLeadsSemLinhasValidas(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	uc := NewImportLeadsUseCase(mockRepo, cache.New())

	// Só cabeçalho e linhas sem nome
	csv := "nome,telefone\n,11911110000\n,11922221111\n"
	result, err := uc.Execute(context.Background(), adminActor(), ImportLeadsInput{CSV: csv}, nil)

	assert.Error(t, err)
	assert.True(t, IsDomainError(err))
	assert.Nil(t, result)
	mockRepo.AssertNotCalled(t, "CreateBatch")
}

func TestImportLeadsLinhasSemNomeSaoDescartadas(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadRepository)
	mockRepo.On("CreateBatch", ctx, mock.Anything).Return(nil)

	uc := NewImportLeadsUseCase(mockRepo, cache.New())

	csv := "nome,telefone\nMaria,1191110000\n,1192220000\nJosé,1193330000\n"
	result, err := uc.Execute(ctx, adminActor(), ImportLeadsInput{CSV: csv}, nil)

	assert.NoError(t, err)
	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 2, result.ValidRows)
	assert.Equal(t, 1, result.SkippedRows)
	assert.Equal(t, 2, result.Imported)
}
