package cotizacion

import (
	"github.com/shopspring/decimal"
)

const (
	UnidadLote  = "LOTE"
	UnidadPieza = "pza"

	CodigoManual = "MANUAL"
)

// Unidades are the units offered by the UI when entering an item.
var Unidades = []string{"pza", "m²", "ml", "juego", "LOTE"}

// Partida is one budget line of a prototype.
type Partida struct {
	ID             string          `json:"id" validate:"required"`
	Codigo         string          `json:"codigo,omitempty"`
	Seleccionada   bool            `json:"selected"`
	Seccion        Seccion         `json:"category"`
	Concepto       string          `json:"concept"`
	Descripcion    string          `json:"description"`
	Unidad         string          `json:"unit"`
	Cantidad       decimal.Decimal `json:"quantity" validate:"min=0"`
	PrecioUnitario decimal.Decimal `json:"unitPrice"`
	Imagen         string          `json:"image,omitempty"`
}

func (p Partida) Subtotal() decimal.Decimal {
	return p.Cantidad.Mul(p.PrecioUnitario)
}

// Prototipo is a model or area of the proposal, repeated Cantidad times.
type Prototipo struct {
	ID       string    `json:"id" validate:"required"`
	Nombre   string    `json:"name"`
	Cantidad int       `json:"quantity" validate:"min=1"`
	Partidas []Partida `json:"budget" validate:"dive"`
}

func (p Prototipo) clonar() Prototipo {
	p.Partidas = copiar(p.Partidas)
	return p
}

// CatalogoItem is a product catalog article.
type CatalogoItem struct {
	Codigo      string          `json:"codigo"`
	Descripcion string          `json:"descripcion"`
	Unidad      string          `json:"unidad"`
	Precio      decimal.Decimal `json:"precio"`
	Categoria   Seccion         `json:"categoria"`
	Marca       string          `json:"marca,omitempty"`
	Imagen      string          `json:"image,omitempty"`
}

// Partida builds an item from the article.
func (c CatalogoItem) Partida(id string, seccion Seccion) Partida {
	unidad := c.Unidad
	if unidad == "" {
		unidad = UnidadPieza
	}
	return Partida{
		ID:             id,
		Codigo:         c.Codigo,
		Seleccionada:   true,
		Seccion:        seccion,
		Concepto:       c.Descripcion,
		Unidad:         unidad,
		Cantidad:       decimal.NewFromInt(1),
		PrecioUnitario: c.Precio,
		Imagen:         c.Imagen,
	}
}
