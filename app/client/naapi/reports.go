package naapi

import (
	"context"
	"naapi/app/dto"
	"net/http"
	"net/url"
	"strconv"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/oops"
)

const reportsPath = "/relatorios"

func (c *Client) StudentsPerCourse(ctx context.Context) ([]dto.StudentsPerCourse, error) {
	var res []dto.StudentsPerCourse
	if err := c.call(ctx, call{method: http.MethodGet, path: reportsPath + "/alunos-por-curso"}, &res); err != nil {
		return nil, oops.Errorf("students per course: %w", err)
	}

	return res, nil
}

func (c *Client) StudentsPerDiagnosis(ctx context.Context) ([]dto.StudentsPerDiagnosis, error) {
	var res []dto.StudentsPerDiagnosis
	if err := c.call(ctx, call{method: http.MethodGet, path: reportsPath + "/alunos-por-diagnostico"}, &res); err != nil {
		return nil, oops.Errorf("students per diagnosis: %w", err)
	}

	return res, nil
}

// TotalAppointments counts appointments, optionally filtered by status.
func (c *Client) TotalAppointments(ctx context.Context, status string) (dto.Kpi, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}

	var res dto.Kpi
	if err := c.call(ctx, call{method: http.MethodGet, path: reportsPath + "/total-atendimentos", query: query}, &res); err != nil {
		return res, oops.Errorf("total appointments: %w", err)
	}

	return res, nil
}

// ReportCSV relays the CSV export of a named report.
func (c *Client) ReportCSV(ctx context.Context, name string, query url.Values) (*RawResponse, error) {
	if !pie.Contains(dto.CSVReports, name) {
		return nil, oops.
			With("status_code", http.StatusNotFound).
			Public("Unknown report").
			Errorf("unknown csv report: %s", name)
	}

	return c.Raw(ctx, reportsPath+"/"+name+"/csv", query)
}

func (c *Client) StudentHistoryPDF(ctx context.Context, studentID int64) (*RawResponse, error) {
	return c.Raw(ctx, reportsPath+"/historico-aluno/"+strconv.FormatInt(studentID, 10)+"/pdf", nil)
}

// Breakdown relays one of dto.BreakdownReports as-is.
func (c *Client) Breakdown(ctx context.Context, name string) (*RawResponse, error) {
	if !pie.Contains(dto.BreakdownReports, name) {
		return nil, oops.
			With("status_code", http.StatusNotFound).
			Public("Unknown report").
			Errorf("unknown breakdown report: %s", name)
	}

	return c.Raw(ctx, reportsPath+"/"+name, nil)
}
