package constants

import "fmt"

// Roles de expediente académico (por EP_SEDE)
const (
	RolEstudiante  = "ESTUDIANTE"
	RolCoordinador = "COORDINADOR"
	RolEncargado   = "ENCARGADO"
)

// Estados de expediente
const (
	EstadoActivo = "ACTIVO"
	EstadoCesado = "CESADO"
)

// Plantillas de error por rol
const (
	ErrOnlyStaffCanAccess = "Solo COORDINADOR o ENCARGADO pueden acceder a %s."
)

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RolEstudiante,
		RolCoordinador,
		RolEncargado,
	}

	StaffRoles = []string{
		RolCoordinador,
		RolEncargado,
	}
)
