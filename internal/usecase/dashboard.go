package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type StatusCount struct {
	ID         int64   `json:"id"`
	Descricao  string  `json:"descricao"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type MonthCount struct {
	Month string `json:"month"` // "2006-01"
	Count int    `json:"count"`
}

type AssigneePerformance struct {
	UserID    string `json:"user_id"`
	Nome      string `json:"nome"`
	Leads     int    `json:"leads"`
	Agendados int    `json:"agendados"`
}

type DashboardMetrics struct {
	TotalLeads   int           `json:"total_leads"`
	ComTelefone  int           `json:"com_telefone"`
	SemContato   int           `json:"sem_contato"`
	Agendados    int           `json:"agendados"`
	TemInteresse int           `json:"tem_interesse"`
	Perdidos     int           `json:"perdidos"`
	StatusCounts []StatusCount `json:"status_counts"`

	// Taxa de conversão = agendados / total. Zero leads -> 0, sem
	// divisão por zero.
	ConversionRate  float64 `json:"conversion_rate"`
	ConversionLabel string  `json:"conversion_label"`

	MonthlyCounts []MonthCount `json:"monthly_counts"`

	// Só preenchido para admin
	Leaderboard []AssigneePerformance `json:"leaderboard,omitempty"`
}

// ComputeDashboard agrega o conjunto inteiro de leads em memória.
// As classificações (agendado, interesse, perdas) casam pela DESCRIÇÃO
// do status, não pelo id: renomear um status muda a classificação.
func ComputeDashboard(
	leads []entity.LeadWithRelations,
	statuses []entity.StatusOption,
	profiles []entity.Profile,
	isAdmin bool,
	now time.Time,
) DashboardMetrics {
	metrics := DashboardMetrics{TotalLeads: len(leads)}

	counts := map[int64]int{}
	perAssignee := map[string]*AssigneePerformance{}

	for _, lead := range leads {
		if lead.StatusID != nil {
			counts[*lead.StatusID]++
		}
		if lead.Telefone1 != "" {
			metrics.ComTelefone++
		}

		descricao := ""
		if lead.Status != nil {
			descricao = lead.Status.Descricao
		}
		switch descricao {
		case entity.StatusSemContato:
			metrics.SemContato++
		case entity.StatusAgendado:
			metrics.Agendados++
		case entity.StatusTemInteresse:
			metrics.TemInteresse++
		case entity.StatusContatoErrado, entity.StatusSemInteresse:
			metrics.Perdidos++
		}

		if isAdmin && lead.AssignedTo != nil {
			perf := perAssignee[*lead.AssignedTo]
			if perf == nil {
				perf = &AssigneePerformance{UserID: *lead.AssignedTo}
				perAssignee[*lead.AssignedTo] = perf
			}
			perf.Leads++
			if descricao == entity.StatusAgendado {
				perf.Agendados++
			}
		}
	}

	for _, status := range statuses {
		count := counts[status.ID]
		percentage := 0.0
		if metrics.TotalLeads > 0 {
			percentage = float64(count) / float64(metrics.TotalLeads) * 100
		}
		metrics.StatusCounts = append(metrics.StatusCounts, StatusCount{
			ID:         status.ID,
			Descricao:  status.Descricao,
			Count:      count,
			Percentage: percentage,
		})
	}

	if metrics.TotalLeads > 0 {
		metrics.ConversionRate = float64(metrics.Agendados) / float64(metrics.TotalLeads)
	}
	metrics.ConversionLabel = fmt.Sprintf("%.1f%%", metrics.ConversionRate*100)

	metrics.MonthlyCounts = trailingMonths(leads, now)

	if isAdmin {
		metrics.Leaderboard = topAssignees(perAssignee, profiles)
	}

	return metrics
}

// trailingMonths conta leads por mês de criação nos últimos 6 meses
// (mês corrente incluso).
func trailingMonths(leads []entity.LeadWithRelations, now time.Time) []MonthCount {
	months := make([]MonthCount, 0, 6)
	index := map[string]int{}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 5; i >= 0; i-- {
		key := first.AddDate(0, -i, 0).Format("2006-01")
		index[key] = len(months)
		months = append(months, MonthCount{Month: key})
	}

	for _, lead := range leads {
		key := lead.CreatedAt.Format("2006-01")
		if i, ok := index[key]; ok {
			months[i].Count++
		}
	}

	return months
}

// topAssignees ordena por total de leads, decrescente, e corta no top
// 5.
func topAssignees(perAssignee map[string]*AssigneePerformance, profiles []entity.Profile) []AssigneePerformance {
	nomes := map[string]string{}
	for _, profile := range profiles {
		nome := profile.Nome
		if nome == "" {
			nome = profile.Email
		}
		nomes[profile.ID] = nome
	}

	board := make([]AssigneePerformance, 0, len(perAssignee))
	for _, perf := range perAssignee {
		perf.Nome = nomes[perf.UserID]
		board = append(board, *perf)
	}

	sort.Slice(board, func(i, j int) bool {
		if board[i].Leads != board[j].Leads {
			return board[i].Leads > board[j].Leads
		}
		return board[i].Nome < board[j].Nome
	})

	if len(board) > 5 {
		board = board[:5]
	}
	return board
}

type DashboardUseCase struct {
	Leads    *ListLeadsUseCase
	Statuses *StatusUseCase
	Users    *UsersUseCase
}

func NewDashboardUseCase(leads *ListLeadsUseCase, statuses *StatusUseCase, users *UsersUseCase) *DashboardUseCase {
	return &DashboardUseCase{Leads: leads, Statuses: statuses, Users: users}
}

func (uc *DashboardUseCase) Execute(ctx context.Context, actor Actor) (*DashboardMetrics, error) {
	leads, err := uc.Leads.ExecuteAll(ctx)
	if err != nil {
		return nil, err
	}

	statuses, err := uc.Statuses.List(ctx)
	if err != nil {
		return nil, err
	}

	profiles, err := uc.Users.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	metrics := ComputeDashboard(leads, statuses, profiles, actor.IsAdmin(), time.Now())
	return &metrics, nil
}
