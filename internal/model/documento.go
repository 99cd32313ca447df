package model

import (
	"time"

	"gorm.io/datatypes"
)

// Recurso names a document collection. Each lives in its own table with the
// same schema (id, data, updated_at).
type Recurso string

const (
	RecursoCotizaciones Recurso = "quotes"
	RecursoInventario   Recurso = "inventory"
	RecursoClientes     Recurso = "clients"
	RecursoUsuarios     Recurso = "users"
	RecursoAjustes      Recurso = "settings"
	RecursoCategorias   Recurso = "categories"
	RecursoPlantillas   Recurso = "templates"
)

// Recursos lists every known collection.
var Recursos = []Recurso{
	RecursoCotizaciones,
	RecursoInventario,
	RecursoClientes,
	RecursoUsuarios,
	RecursoAjustes,
	RecursoCategorias,
	RecursoPlantillas,
}

// ClaveAjustes is the id of the single branding document in settings.
const ClaveAjustes = "branding"

// ParseRecurso also accepts "branding" as an alias of settings.
func ParseRecurso(s string) (Recurso, bool) {
	if s == ClaveAjustes {
		return RecursoAjustes, true
	}
	for _, r := range Recursos {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// ClavePorDefecto is the key used when the document has neither id nor codigo.
func (r Recurso) ClavePorDefecto() string {
	if r == RecursoAjustes {
		return ClaveAjustes
	}
	return ""
}

// Documento is a row of any collection; the body is stored opaque.
type Documento struct {
	ID        string         `gorm:"primaryKey;type:varchar(191)"`
	Data      datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"index"`
}
