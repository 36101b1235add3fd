package dto

type Course struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

type Class struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

type Diagnosis struct {
	ID           int64  `json:"id"`
	Name         string `json:"nome"`
	CID          string `json:"cid,omitempty"`
	Abbreviation string `json:"sigla,omitempty"`
}

type AppointmentType struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

// NamedInsert is the payload shared by the simple registries.
type NamedInsert struct {
	Name string `json:"nome" validate:"required"`
}

type DiagnosisInsert struct {
	Name         string `json:"nome" validate:"required"`
	CID          string `json:"cid,omitempty"`
	Abbreviation string `json:"sigla,omitempty"`
}

type Student struct {
	ID         int64       `json:"id"`
	Name       string      `json:"nome"`
	SocialName string      `json:"nomeSocial,omitempty"`
	Enrollment string      `json:"matricula"`
	Photo      string      `json:"foto,omitempty"`
	Priority   bool        `json:"prioridadeAtendimento"`
	Active     bool        `json:"ativo"`
	Course     Course      `json:"curso"`
	Class      Class       `json:"turma"`
	Diagnoses  []Diagnosis `json:"diagnosticos"`
}

type StudentInsert struct {
	Name         string  `json:"nome" validate:"required"`
	SocialName   string  `json:"nomeSocial,omitempty"`
	Enrollment   string  `json:"matricula" validate:"required"`
	Photo        string  `json:"foto,omitempty"`
	Priority     bool    `json:"prioridadeAtendimento"`
	CourseID     int64   `json:"cursoId" validate:"required"`
	ClassID      int64   `json:"turmaId" validate:"required"`
	DiagnosesIDs []int64 `json:"diagnosticosId,omitempty"`
}

type Appointment struct {
	ID                  int64  `json:"id"`
	DateTime            string `json:"dataHora"`
	Description         string `json:"descricao"`
	Status              string `json:"status"`
	StudentID           int64  `json:"alunoId"`
	StudentName         string `json:"alunoNome"`
	ResponsibleID       int64  `json:"responsavelId"`
	ResponsibleName     string `json:"responsavelNome"`
	AppointmentTypeID   int64  `json:"tipoAtendimentoId"`
	AppointmentTypeName string `json:"tipoAtendimentoNome"`
}

type AppointmentInsert struct {
	DateTime          string `json:"dataHora" validate:"required"`
	Description       string `json:"descricao"`
	Status            string `json:"status" validate:"required"`
	StudentID         int64  `json:"alunoId" validate:"required"`
	ResponsibleID     int64  `json:"responsavelId" validate:"required"`
	AppointmentTypeID int64  `json:"tipoAtendimentoId" validate:"required"`
}

type AppointmentConclusion struct {
	Description string `json:"descricao"`
	Status      string `json:"status" validate:"required"`
}

type MedicalReport struct {
	ID          int64  `json:"id"`
	IssuedAt    string `json:"dataEmissao"`
	FileURL     string `json:"urlArquivo"`
	Description string `json:"descricao"`
	StudentID   int64  `json:"alunoId"`
}

type PEI struct {
	ID              int64  `json:"id"`
	StartDate       string `json:"dataInicio"`
	EndDate         string `json:"dataFim,omitempty"`
	Goals           string `json:"metas"`
	Strategies      string `json:"estrategias"`
	Evaluation      string `json:"avaliacao,omitempty"`
	StudentID       int64  `json:"alunoId"`
	StudentName     string `json:"alunoNome"`
	ResponsibleID   int64  `json:"responsavelId"`
	ResponsibleName string `json:"responsavelNome"`
}

type PEIInsert struct {
	StartDate     string `json:"dataInicio" validate:"required"`
	EndDate       string `json:"dataFim,omitempty"`
	Goals         string `json:"metas" validate:"required"`
	Strategies    string `json:"estrategias" validate:"required"`
	Evaluation    string `json:"avaliacao,omitempty"`
	StudentID     int64  `json:"alunoId" validate:"required"`
	ResponsibleID int64  `json:"responsavelId" validate:"required"`
}

type AcademicHistory struct {
	ID        int64  `json:"id"`
	StudentID int64  `json:"alunoId"`
	Course    Course `json:"curso"`
	Class     *Class `json:"turma,omitempty"`
	StartDate string `json:"dataInicio"`
	EndDate   string `json:"dataFim,omitempty"`
}

type AcademicHistoryInsert struct {
	StudentID int64  `json:"alunoId" validate:"required"`
	CourseID  int64  `json:"cursoId" validate:"required"`
	ClassID   *int64 `json:"turmaId,omitempty"`
	StartDate string `json:"dataInicio" validate:"required"`
	EndDate   string `json:"dataFim,omitempty"`
}
