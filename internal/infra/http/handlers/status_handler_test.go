package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/cache"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// MockStatusRepository
type MockStatusRepository struct {
	mock.Mock
}

func (m *MockStatusRepository) ListAll(ctx context.Context) ([]entity.StatusOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.StatusOption), args.Error(1)
}

func (m *MockStatusRepository) Create(ctx context.Context, status *entity.StatusOption) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockStatusRepository) Update(ctx context.Context, id int64, descricao string) error {
	args := m.Called(ctx, id, descricao)
	return args.Error(0)
}

func (m *MockStatusRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newStatusHandler(statusRepo *MockStatusRepository, leadRepo *MockLeadRepository) *StatusHandler {
	return NewStatusHandler(usecase.NewStatusUseCase(statusRepo, leadRepo, cache.New()))
}

func TestHandleListStatus(t *testing.T) {
	statusRepo := new(MockStatusRepository)
	statusRepo.On("ListAll", mock.Anything).Return([]entity.StatusOption{
		{ID: 1, Descricao: "SEM CONTATO"},
		{ID: 4, Descricao: "AGENDADO"},
	}, nil)

	handler := newStatusHandler(statusRepo, new(MockLeadRepository))

	req := asUser(httptest.NewRequest("GET", "/status", nil))
	rec := httptest.NewRecorder()
	handler.HandleList(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var statuses []entity.StatusOption
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &statuses))
	assert.Len(t, statuses, 2)
}

// TestHandleDeleteStatusEmUsoDa409
func TestHandleDeleteStatusEmUsoDa409(t *testing.T) {
	statusRepo := new(MockStatusRepository)
	leadRepo := new(MockLeadRepository)
	leadRepo.On("CountByStatus", mock.Anything, int64(4)).Return(7, nil)

	handler := newStatusHandler(statusRepo, leadRepo)

	req := asAdmin(withURLParam(httptest.NewRequest("DELETE", "/status/4", nil), "id", "4"))
	rec := httptest.NewRecorder()
	handler.HandleDelete(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "STATUS_IN_USE")
	statusRepo.AssertNotCalled(t, "Delete")
}

func TestHandleCreateStatusRecusaNaoAdmin(t *testing.T) {
	statusRepo := new(MockStatusRepository)
	handler := newStatusHandler(statusRepo, new(MockLeadRepository))

	req := asUser(httptest.NewRequest("POST", "/status", strings.NewReader(`{"descricao": "NOVO"}`)))
	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	statusRepo.AssertNotCalled(t, "Create")
}

func TestHandleCreateStatusDuplicadoDa409(t *testing.T) {
	statusRepo := new(MockStatusRepository)
	statusRepo.On("Create", mock.Anything, mock.Anything).Return(entity.ErrDescricaoDuplicada)

	handler := newStatusHandler(statusRepo, new(MockLeadRepository))

	req := asAdmin(httptest.NewRequest("POST", "/status", strings.NewReader(`{"descricao": "AGENDADO"}`)))
	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleUpdateStatusIDInvalido(t *testing.T) {
	handler := newStatusHandler(new(MockStatusRepository), new(MockLeadRepository))

	req := asAdmin(withURLParam(httptest.NewRequest("PUT", "/status/abc", strings.NewReader(`{"descricao": "X"}`)), "id", "abc"))
	rec := httptest.NewRecorder()
	handler.HandleUpdate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
