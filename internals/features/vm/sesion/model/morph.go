package model

import "strings"

// OwnerKind clasifica al dueño polimórfico de una sesión.
type OwnerKind int

const (
	OwnerDesconocido OwnerKind = iota
	OwnerProceso
	OwnerEvento
)

// Etiquetas canónicas usadas al escribir filas nuevas.
const (
	TagProceso  = "vm_proceso"
	TagEvento   = "vm_evento"
	TagProyecto = "vm_proyecto"
)

// aliasKind mapea todas las formas históricas del discriminador:
// etiqueta canónica, FQCN heredado y PascalCase sin namespace.
var aliasKind = map[string]OwnerKind{
	"vm_proceso":             OwnerProceso,
	"vm_evento":              OwnerEvento,
	"app\\models\\vmproceso": OwnerProceso,
	"app\\models\\vmevento":  OwnerEvento,
	"vmproceso":              OwnerProceso,
	"vmevento":               OwnerEvento,
}

// KindDe resuelve el tipo de dueño de una sesión. Primero por alias exacto
// (insensible a mayúsculas); si no, por substring como último recurso para
// datos legados con discriminadores arbitrarios.
func KindDe(sessionableType string) OwnerKind {
	t := strings.ToLower(strings.TrimSpace(sessionableType))
	if k, ok := aliasKind[t]; ok {
		return k
	}
	switch {
	case strings.Contains(t, "proceso"):
		return OwnerProceso
	case strings.Contains(t, "evento"):
		return OwnerEvento
	}
	return OwnerDesconocido
}

// AliasesProceso y AliasesEvento listan los discriminadores aceptados en
// consultas SQL sobre filas heredadas.
var (
	AliasesProceso  = []string{"vm_proceso", "App\\Models\\VmProceso", "VmProceso"}
	AliasesEvento   = []string{"vm_evento", "App\\Models\\VmEvento", "VmEvento"}
	AliasesProyecto = []string{"vm_proyecto", "App\\Models\\VmProyecto", "VmProyecto"}
)

// AliasesDeTag: discriminadores aceptados para una etiqueta canónica.
func AliasesDeTag(tag string) []string {
	switch tag {
	case TagProceso:
		return AliasesProceso
	case TagEvento:
		return AliasesEvento
	case TagProyecto:
		return AliasesProyecto
	}
	return []string{tag}
}
