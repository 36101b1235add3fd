package dto

const (
	AuthStorageKey = "naapi_auth_header"
)

// Role is a backend authority string, compared by equality only.
type Role string

const (
	RoleCoordinator       Role = "ROLE_COORDENADOR_NAAPI"
	RoleTechnicalStaff    Role = "ROLE_MEMBRO_TECNICO"
	RoleIntern            Role = "ROLE_ESTAGIARIO_NAAPI"
	RoleCourseCoordinator Role = "ROLE_COORDENADOR_CURSO"
	RoleTeacher           Role = "ROLE_PROFESSOR"
)

var AllRoles = []Role{
	RoleCoordinator, RoleTechnicalStaff, RoleIntern, RoleCourseCoordinator, RoleTeacher,
}

// Capability is a permission derived from the user's role set.
type Capability string

const (
	CapabilityManageUsers      Capability = "users:manage"
	CapabilityManageRegistries Capability = "registries:manage"
	CapabilityViewReports      Capability = "reports:view"
	CapabilityEditStudents     Capability = "students:edit"
	CapabilityEditPEIs         Capability = "peis:edit"
)

var AllCapabilities = []Capability{
	CapabilityManageUsers,
	CapabilityManageRegistries,
	CapabilityViewReports,
	CapabilityEditStudents,
	CapabilityEditPEIs,
}

// DefaultGrants maps every known role to the capabilities it grants.
var DefaultGrants = map[Role][]Capability{
	RoleCoordinator: {
		CapabilityManageUsers, CapabilityManageRegistries, CapabilityViewReports,
		CapabilityEditStudents, CapabilityEditPEIs,
	},
	RoleTechnicalStaff: {
		CapabilityManageRegistries, CapabilityViewReports, CapabilityEditStudents, CapabilityEditPEIs,
	},
	RoleIntern:            {CapabilityViewReports, CapabilityEditStudents},
	RoleCourseCoordinator: {CapabilityViewReports},
	RoleTeacher:           {},
}
