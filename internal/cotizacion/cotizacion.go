// Package cotizacion holds the proposal document model (prototipos, partidas,
// terminos, versiones) and the engine that derives its totals. It does no I/O:
// the service loads a document, edits it through an Editor and persists it.
package cotizacion

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Estado string

const (
	EstadoBorrador  Estado = "BORRADOR"
	EstadoEnviada   Estado = "ENVIADA"
	EstadoAceptada  Estado = "ACEPTADA"
	EstadoRechazada Estado = "RECHAZADA"
)

func (e Estado) Valido() bool {
	switch e {
	case EstadoBorrador, EstadoEnviada, EstadoAceptada, EstadoRechazada:
		return true
	}
	return false
}

type TipoProyecto string

const (
	TipoParticular       TipoProyecto = "PARTICULAR"
	TipoProyectoMultiple TipoProyecto = "PROYECTO"
)

type Moneda string

const (
	MonedaMXN Moneda = "MXN"
	MonedaUSD Moneda = "USD"
	MonedaEUR Moneda = "EUR"
)

// CategoriasProyecto are the categories offered by the UI; the field itself is free text.
var CategoriasProyecto = []string{"COCINAS", "BAÑOS", "CLOSETS", "CLOSETS Y BAÑOS"}

type Cliente struct {
	Nombre    string `json:"name"`
	Email     string `json:"email"`
	Telefono  string `json:"phone"`
	Direccion string `json:"address"`
}

type Proyecto struct {
	Nombre           string `json:"name"`
	Direccion        string `json:"address"`
	Fecha            string `json:"date"`
	NumeroCotizacion string `json:"quoteNumber"`
}

type CategoriaImagen string

const (
	ImagenRender     CategoriaImagen = "Render"
	ImagenPlano      CategoriaImagen = "Plano"
	ImagenAlzado     CategoriaImagen = "Alzado"
	ImagenReferencia CategoriaImagen = "Referencia"
)

type Imagen struct {
	ID          string          `json:"id"`
	URL         string          `json:"url"`
	Categoria   CategoriaImagen `json:"category"`
	Titulo      string          `json:"title,omitempty"`
	Descripcion string          `json:"description,omitempty"`
}

type Nota struct {
	ID          string    `json:"id"`
	Texto       string    `json:"text"`
	AutorID     string    `json:"authorId"`
	AutorNombre string    `json:"authorName"`
	Fecha       time.Time `json:"timestamp"`
}

type EntradaAuditoria struct {
	ID            string    `json:"id"`
	Fecha         time.Time `json:"timestamp"`
	UsuarioID     string    `json:"userId"`
	UsuarioNombre string    `json:"userName"`
	Accion        string    `json:"action"`
}

// PreferenciasVista are the printed blocks the backend understands. The rest
// of the visual theme is kept untouched in Cotizacion.Preferencias.
type PreferenciasVista struct {
	MostrarPortada       bool   `json:"showCover"`
	MostrarGaleria       bool   `json:"showGallery"`
	MostrarMatriz        bool   `json:"showBudget"`
	MostrarTerminos      bool   `json:"showTerms"`
	MostrarDescripciones bool   `json:"showDescriptions"`
	ColorAcento          string `json:"accentColor,omitempty"`
	TextoPie             string `json:"footerText,omitempty"`
}

// PreferenciasPorDefecto shows every block.
func PreferenciasPorDefecto() PreferenciasVista {
	return PreferenciasVista{
		MostrarPortada:       true,
		MostrarGaleria:       true,
		MostrarMatriz:        true,
		MostrarTerminos:      true,
		MostrarDescripciones: true,
	}
}

// Cotizacion is the full proposal document. Totals are never stored here;
// they are derived with CalcularTotales.
type Cotizacion struct {
	ID                 string             `json:"id" validate:"required"`
	Estado             Estado             `json:"status" validate:"estado"`
	Categoria          string             `json:"category"`
	TipoProyecto       TipoProyecto       `json:"projectType"`
	Prototipos         []Prototipo        `json:"prototypes" validate:"min=1,dive"`
	Cliente            Cliente            `json:"client"`
	Proyecto           Proyecto           `json:"project"`
	Galeria            []Imagen           `json:"gallery"`
	Terminos           Terminos           `json:"terms"`
	Moneda             Moneda             `json:"currency"`
	TasaIVA            Tasa               `json:"ivaRate" validate:"min=0,max=1"`
	MostrarIVA         bool               `json:"showIva"`
	Descuento          Porcentaje         `json:"discountValue" validate:"min=0,max=100"`
	MostrarDescuento   bool               `json:"showDiscount"`
	Notas              []Nota             `json:"notes,omitempty"`
	Auditoria          []EntradaAuditoria `json:"auditLog,omitempty"`
	Versiones          []Version          `json:"versions,omitempty"`
	Preferencias       json.RawMessage    `json:"previewSettings,omitempty"`
	UltimaModificacion time.Time          `json:"lastModified"`
	CreadoPor          string             `json:"createdBy,omitempty"`
	EditadoPor         string             `json:"lastEditedBy,omitempty"`
}

// Version is an immutable snapshot of the proposal. Datos carries no versions
// and Total is frozen at capture time.
type Version struct {
	ID    string          `json:"id"`
	Fecha time.Time       `json:"timestamp"`
	Datos Cotizacion      `json:"data"`
	Nota  string          `json:"note"`
	Total decimal.Decimal `json:"total"`
}

// Prototipo looks up a prototype by id.
func (c *Cotizacion) Prototipo(id string) (*Prototipo, bool) {
	for i := range c.Prototipos {
		if c.Prototipos[i].ID == id {
			return &c.Prototipos[i], true
		}
	}
	return nil, false
}

// Partida looks up an item in any prototype.
func (c *Cotizacion) Partida(id string) (*Partida, bool) {
	for i := range c.Prototipos {
		p := &c.Prototipos[i]
		for j := range p.Partidas {
			if p.Partidas[j].ID == id {
				return &p.Partidas[j], true
			}
		}
	}
	return nil, false
}

// Clonar returns a deep copy; no slice is shared with the original.
func (c *Cotizacion) Clonar() *Cotizacion {
	out := *c
	out.Prototipos = copiar(c.Prototipos)
	for i := range out.Prototipos {
		out.Prototipos[i] = out.Prototipos[i].clonar()
	}
	out.Galeria = copiar(c.Galeria)
	out.Notas = copiar(c.Notas)
	out.Auditoria = copiar(c.Auditoria)
	if c.Versiones != nil {
		out.Versiones = make([]Version, len(c.Versiones))
		for i, v := range c.Versiones {
			v.Datos = *v.Datos.Clonar()
			out.Versiones[i] = v
		}
	}
	out.Preferencias = copiar(c.Preferencias)
	return &out
}

// Vista decodes the print preferences. Missing or unreadable preferences show
// every block.
func (c *Cotizacion) Vista() PreferenciasVista {
	v := PreferenciasPorDefecto()
	if len(c.Preferencias) == 0 {
		return v
	}
	if err := json.Unmarshal(c.Preferencias, &v); err != nil {
		return PreferenciasPorDefecto()
	}
	return v
}

// sinVersiones is how a proposal is stored inside a Version.
func (c *Cotizacion) sinVersiones() Cotizacion {
	cp := *c
	cp.Versiones = nil
	return *cp.Clonar()
}

// copiar keeps nil and empty apart so the clone marshals to the same JSON.
func copiar[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
