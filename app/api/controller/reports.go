package controller

import (
	"naapi/app/client/naapi"
	"naapi/app/dto"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/rofleksey/meg"
	"github.com/samber/oops"
)

func sendRaw(c *fiber.Ctx, raw *naapi.RawResponse) error {
	if raw.ContentType != "" {
		c.Set(fiber.HeaderContentType, raw.ContentType)
	}
	if raw.ContentDisposition != "" {
		c.Set(fiber.HeaderContentDisposition, raw.ContentDisposition)
	}

	return c.Send(raw.Body)
}

func (s *Server) StudentsPerCourse(c *fiber.Ctx) error {
	rows, err := s.client.StudentsPerCourse(c.UserContext())
	if err != nil {
		return oops.Errorf("StudentsPerCourse: %w", err)
	}

	return c.JSON(meg.NonNilSlice(rows))
}

func (s *Server) StudentsPerDiagnosis(c *fiber.Ctx) error {
	rows, err := s.client.StudentsPerDiagnosis(c.UserContext())
	if err != nil {
		return oops.Errorf("StudentsPerDiagnosis: %w", err)
	}

	return c.JSON(meg.NonNilSlice(rows))
}

func (s *Server) TotalAppointments(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && status != dto.AppointmentStatusScheduled && status != dto.AppointmentStatusDone {
		return oops.
			With("status_code", http.StatusBadRequest).
			Public("Invalid status").
			Errorf("invalid appointment status %q", status)
	}

	kpi, err := s.client.TotalAppointments(c.UserContext(), status)
	if err != nil {
		return oops.Errorf("TotalAppointments: %w", err)
	}

	return c.JSON(kpi)
}

func (s *Server) ReportCSV(c *fiber.Ctx) error {
	raw, err := s.client.ReportCSV(c.UserContext(), c.Params("name"), queryValues(c, "status"))
	if err != nil {
		return oops.Errorf("ReportCSV: %w", err)
	}

	return sendRaw(c, raw)
}

func (s *Server) StudentHistoryPDF(c *fiber.Ctx) error {
	studentID, err := paramID(c, "studentId")
	if err != nil {
		return err
	}

	raw, err := s.client.StudentHistoryPDF(c.UserContext(), studentID)
	if err != nil {
		return oops.Errorf("StudentHistoryPDF: %w", err)
	}

	return sendRaw(c, raw)
}

func (s *Server) Breakdown(c *fiber.Ctx) error {
	raw, err := s.client.Breakdown(c.UserContext(), c.Params("name"))
	if err != nil {
		return oops.Errorf("Breakdown: %w", err)
	}

	return sendRaw(c, raw)
}
