package controller

import (
	"bytes"
	"naapi/app/client/naapi"
	"naapi/app/dto"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rofleksey/meg"
	"github.com/samber/oops"
)

var studentFilters = []string{"nome", "matricula", "cursoId", "turmaId", "diagnosticoId"}

func queryValues(c *fiber.Ctx, keys ...string) url.Values {
	query := url.Values{}
	for _, key := range keys {
		if value := c.Query(key); value != "" {
			query.Set(key, value)
		}
	}

	return query
}

func list[T any](res naapi.Resource[T], filters ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := res.List(c.UserContext(), queryValues(c, filters...))
		if err != nil {
			return oops.Errorf("List: %w", err)
		}

		return c.JSON(meg.NonNilSlice(items))
	}
}

func listByStudent[T any](res naapi.Resource[T], filters ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		studentID, err := paramID(c, "studentId")
		if err != nil {
			return err
		}

		items, err := res.ListByStudent(c.UserContext(), studentID, queryValues(c, filters...))
		if err != nil {
			return oops.Errorf("ListByStudent: %w", err)
		}

		return c.JSON(meg.NonNilSlice(items))
	}
}

func get[T any](res naapi.Resource[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		item, err := res.Get(c.UserContext(), id)
		if err != nil {
			return oops.Errorf("Get: %w", err)
		}

		return c.JSON(item)
	}
}

func create[T, I any](s *Server, res naapi.Resource[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req I
		if err := s.bind(c, &req); err != nil {
			return err
		}

		item, err := res.Create(c.UserContext(), req)
		if err != nil {
			return oops.Errorf("Create: %w", err)
		}

		return c.Status(http.StatusCreated).JSON(item)
	}
}

func update[T, I any](s *Server, res naapi.Resource[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		var req I
		if err = s.bind(c, &req); err != nil {
			return err
		}

		item, err := res.Update(c.UserContext(), id, req)
		if err != nil {
			return oops.Errorf("Update: %w", err)
		}

		return c.JSON(item)
	}
}

func remove[T any](res naapi.Resource[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		if err = res.Delete(c.UserContext(), id); err != nil {
			return oops.Errorf("Delete: %w", err)
		}

		return c.SendStatus(http.StatusNoContent)
	}
}

func (s *Server) ListStudents() fiber.Handler {
	return list(s.client.Students, studentFilters...)
}

func (s *Server) GetStudent() fiber.Handler {
	return get(s.client.Students)
}

func (s *Server) CreateStudent() fiber.Handler {
	return create[dto.Student, dto.StudentInsert](s, s.client.Students)
}

func (s *Server) EditStudent() fiber.Handler {
	return update[dto.Student, dto.StudentInsert](s, s.client.Students)
}

func (s *Server) DeleteStudent() fiber.Handler {
	return remove(s.client.Students)
}

func (s *Server) ListAppointmentsByStudent() fiber.Handler {
	return listByStudent(s.client.Appointments, "status")
}

func (s *Server) GetAppointment() fiber.Handler {
	return get(s.client.Appointments)
}

func (s *Server) CreateAppointment() fiber.Handler {
	return create[dto.Appointment, dto.AppointmentInsert](s, s.client.Appointments)
}

func (s *Server) EditAppointment() fiber.Handler {
	return update[dto.Appointment, dto.AppointmentInsert](s, s.client.Appointments)
}

func (s *Server) ListMyAppointments(c *fiber.Ctx) error {
	items, err := s.client.MyAppointments(c.UserContext(), c.Query("alunoNome"))
	if err != nil {
		return oops.Errorf("MyAppointments: %w", err)
	}

	return c.JSON(meg.NonNilSlice(items))
}

func (s *Server) ConcludeAppointment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req dto.AppointmentConclusion
	if err = s.bind(c, &req); err != nil {
		return err
	}

	item, err := s.client.ConcludeAppointment(c.UserContext(), id, req)
	if err != nil {
		return oops.Errorf("ConcludeAppointment: %w", err)
	}

	return c.JSON(item)
}

func (s *Server) ListMedicalReportsByStudent() fiber.Handler {
	return listByStudent(s.client.MedicalReports)
}

// UploadMedicalReport forwards the multipart body untouched.
func (s *Server) UploadMedicalReport(c *fiber.Ctx) error {
	contentType := c.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		return oops.
			With("status_code", http.StatusUnsupportedMediaType).
			Public("Expected a multipart upload").
			Errorf("unexpected content type %q", contentType)
	}

	item, err := s.client.MedicalReports.CreateRaw(c.UserContext(), contentType, bytes.NewReader(c.Body()))
	if err != nil {
		return oops.Errorf("MedicalReports.CreateRaw: %w", err)
	}

	return c.Status(http.StatusCreated).JSON(item)
}

func (s *Server) DeleteMedicalReport() fiber.Handler {
	return remove(s.client.MedicalReports)
}

func (s *Server) ListPEIsByStudent() fiber.Handler {
	return listByStudent(s.client.PEIs)
}

func (s *Server) CreatePEI() fiber.Handler {
	return create[dto.PEI, dto.PEIInsert](s, s.client.PEIs)
}

func (s *Server) ListHistoryByStudent() fiber.Handler {
	return listByStudent(s.client.History)
}

func (s *Server) CreateHistory() fiber.Handler {
	return create[dto.AcademicHistory, dto.AcademicHistoryInsert](s, s.client.History)
}

func (s *Server) EditHistory() fiber.Handler {
	return update[dto.AcademicHistory, dto.AcademicHistoryInsert](s, s.client.History)
}

func (s *Server) DeleteHistory() fiber.Handler {
	return remove(s.client.History)
}

// Registry bundles the handlers of one simple lookup table.
type Registry struct {
	List   fiber.Handler
	Create fiber.Handler
	Edit   fiber.Handler
	Delete fiber.Handler
}

func registry[T, I any](s *Server, res naapi.Resource[T]) Registry {
	return Registry{
		List:   list(res),
		Create: create[T, I](s, res),
		Edit:   update[T, I](s, res),
		Delete: remove(res),
	}
}

func (s *Server) Courses() Registry {
	return registry[dto.Course, dto.NamedInsert](s, s.client.Courses)
}

func (s *Server) Classes() Registry {
	return registry[dto.Class, dto.NamedInsert](s, s.client.Classes)
}

func (s *Server) Diagnoses() Registry {
	return registry[dto.Diagnosis, dto.DiagnosisInsert](s, s.client.Diagnoses)
}

func (s *Server) AppointmentTypes() Registry {
	return registry[dto.AppointmentType, dto.NamedInsert](s, s.client.AppointmentTypes)
}
