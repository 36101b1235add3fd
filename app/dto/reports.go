package dto

const (
	AppointmentStatusScheduled = "AGENDADO"
	AppointmentStatusDone      = "REALIZADO"
)

type StudentsPerCourse struct {
	CourseName    string `json:"cursoNome"`
	TotalStudents int    `json:"totalAlunos"`
}

type StudentsPerDiagnosis struct {
	DiagnosisName string `json:"diagnosticoNome"`
	TotalStudents int    `json:"totalAlunos"`
}

type Kpi struct {
	Total int `json:"total"`
}

// Breakdown reports relayed as-is to the caller.
const (
	ReportStudentsPerPriority        = "alunos-por-prioridade"
	ReportAppointmentsPerMonth       = "atendimentos-por-mes"
	ReportAppointmentsPerResponsible = "atendimentos-por-responsavel"
)

var BreakdownReports = []string{
	ReportStudentsPerPriority,
	ReportAppointmentsPerMonth,
	ReportAppointmentsPerResponsible,
}

// CSVReports have a /csv export.
var CSVReports = []string{
	"alunos-por-curso",
	"alunos-por-diagnostico",
	"total-atendimentos",
}
