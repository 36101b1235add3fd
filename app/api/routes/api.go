package routes

import (
	"naapi/app/api/controller"
	"naapi/app/api/middleware"
	"naapi/app/dto"
	"naapi/app/service/auth"
	"slices"

	"github.com/gofiber/fiber/v2"
)

type Options struct {
	LoginPath   string
	Guard       fiber.Handler
	AuthService *auth.Service
}

func PublicRoutes(app *fiber.App, opts Options, server *controller.Server) {
	app.Get(opts.LoginPath, server.LoginView)

	v1 := app.Group("/v1")
	v1.Get("/healthz", server.HealthCheck)
	v1.Get("/session", server.GetSession)
	v1.Post("/auth/login", server.Login)
	v1.Post("/auth/logout", server.Logout)
}

// ProtectedRoutes attaches the guard and capability gates to each route rather
// than to a prefix, so unmatched paths still reach NotFoundRoute.
func ProtectedRoutes(app *fiber.App, opts Options, server *controller.Server) {
	can := func(capability dto.Capability) fiber.Handler {
		return middleware.RequireCapability(opts.AuthService, capability)
	}

	v1 := protected{router: app.Group("/v1"), gates: []fiber.Handler{opts.Guard}}

	v1.Get("/me", server.GetMyself)
	v1.Get("/me/capabilities", server.GetMyCapabilities)
	v1.Put("/me/details", server.UpdateMyDetails)
	v1.Put("/me/password", server.UpdateMyPassword)

	students := v1.group("/students")
	students.Get("/", server.ListStudents())
	students.Get("/:id", server.GetStudent())
	students.Post("/", can(dto.CapabilityEditStudents), server.CreateStudent())
	students.Put("/:id", can(dto.CapabilityEditStudents), server.EditStudent())
	students.Delete("/:id", can(dto.CapabilityEditStudents), server.DeleteStudent())
	students.Get("/:studentId/appointments", server.ListAppointmentsByStudent())
	students.Get("/:studentId/medical-reports", server.ListMedicalReportsByStudent())
	students.Get("/:studentId/peis", server.ListPEIsByStudent())
	students.Get("/:studentId/history", server.ListHistoryByStudent())
	students.Get("/:studentId/history/pdf", can(dto.CapabilityViewReports), server.StudentHistoryPDF)

	appointments := v1.group("/appointments")
	appointments.Get("/mine", server.ListMyAppointments)
	appointments.Get("/:id", server.GetAppointment())
	appointments.Post("/", server.CreateAppointment())
	appointments.Put("/:id", server.EditAppointment())
	appointments.Patch("/:id/status", server.ConcludeAppointment)

	v1.Post("/medical-reports", can(dto.CapabilityEditStudents), server.UploadMedicalReport)
	v1.Delete("/medical-reports/:id", can(dto.CapabilityEditStudents), server.DeleteMedicalReport())

	v1.Post("/peis", can(dto.CapabilityEditPEIs), server.CreatePEI())

	v1.Post("/history", can(dto.CapabilityEditStudents), server.CreateHistory())
	v1.Put("/history/:id", can(dto.CapabilityEditStudents), server.EditHistory())
	v1.Delete("/history/:id", can(dto.CapabilityEditStudents), server.DeleteHistory())

	registryRoutes(v1.group("/courses"), can, server.Courses())
	registryRoutes(v1.group("/classes"), can, server.Classes())
	registryRoutes(v1.group("/diagnoses"), can, server.Diagnoses())
	registryRoutes(v1.group("/appointment-types"), can, server.AppointmentTypes())

	users := v1.group("/users", can(dto.CapabilityManageUsers))
	users.Get("/", server.ListUsers)
	users.Post("/", server.CreateUser)
	users.Put("/:id", server.EditUser)
	users.Delete("/:id", server.DeleteUser)
	v1.Get("/roles", can(dto.CapabilityManageUsers), server.ListRoles)

	reports := v1.group("/reports", can(dto.CapabilityViewReports))
	reports.Get("/students-per-course", server.StudentsPerCourse)
	reports.Get("/students-per-diagnosis", server.StudentsPerDiagnosis)
	reports.Get("/total-appointments", server.TotalAppointments)
	reports.Get("/csv/:name", server.ReportCSV)
	reports.Get("/breakdown/:name", server.Breakdown)
}

// registryRoutes serves lookup tables: every user reads them, registries:manage edits.
func registryRoutes(group protected, can func(dto.Capability) fiber.Handler, r controller.Registry) {
	group.Get("/", r.List)
	group.Post("/", can(dto.CapabilityManageRegistries), r.Create)
	group.Put("/:id", can(dto.CapabilityManageRegistries), r.Edit)
	group.Delete("/:id", can(dto.CapabilityManageRegistries), r.Delete)
}

// protected prepends its gates to every route it registers.
type protected struct {
	router fiber.Router
	gates  []fiber.Handler
}

func (p protected) group(prefix string, gates ...fiber.Handler) protected {
	return protected{
		router: p.router.Group(prefix),
		gates:  append(slices.Clone(p.gates), gates...),
	}
}

func (p protected) chain(handlers []fiber.Handler) []fiber.Handler {
	return append(slices.Clone(p.gates), handlers...)
}

func (p protected) Get(path string, handlers ...fiber.Handler) {
	p.router.Get(path, p.chain(handlers)...)
}

func (p protected) Post(path string, handlers ...fiber.Handler) {
	p.router.Post(path, p.chain(handlers)...)
}

func (p protected) Put(path string, handlers ...fiber.Handler) {
	p.router.Put(path, p.chain(handlers)...)
}

func (p protected) Patch(path string, handlers ...fiber.Handler) {
	p.router.Patch(path, p.chain(handlers)...)
}

func (p protected) Delete(path string, handlers ...fiber.Handler) {
	p.router.Delete(path, p.chain(handlers)...)
}
