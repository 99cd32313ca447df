package dto

import (
	"time"

	"crkitchen/internal/cotizacion"

	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

// CotizacionFilter accepts several comma separated statuses and categories.
type CotizacionFilter struct {
	Estados    []string `form:"estado"`
	Categorias []string `form:"categoria"`
	Q          string   `form:"q"`
}

type CrearCotizacionRequest struct {
	Categoria      string              `json:"category"    validate:"omitempty,max=60"`
	TipoProyecto   string              `json:"projectType" validate:"omitempty,oneof=PARTICULAR PROYECTO"`
	NombreProyecto string              `json:"projectName" validate:"omitempty,max=200"`
	Cliente        *cotizacion.Cliente `json:"client"`
}

type CambiarEstadoRequest struct {
	Estado string `json:"status" validate:"required,oneof=BORRADOR ENVIADA ACEPTADA RECHAZADA"`
}

type ActualizarPrototipoRequest struct {
	Nombre   *string `json:"name"     validate:"omitempty,min=1,max=120"`
	Cantidad *int    `json:"quantity" validate:"omitempty,min=1"`
}

type AgregarPartidaRequest struct {
	Seccion string `json:"category" validate:"required,max=80"`
}

// AgregarCatalogoRequest falls back to the article category when Seccion is empty.
type AgregarCatalogoRequest struct {
	Codigo  string `json:"codigo"   validate:"required"`
	Seccion string `json:"category" validate:"omitempty,max=80"`
}

type ActualizarPartidaRequest struct {
	Codigo         *string          `json:"codigo"`
	Seleccionada   *bool            `json:"selected"`
	Seccion        *string          `json:"category"    validate:"omitempty,min=1,max=80"`
	Concepto       *string          `json:"concept"     validate:"omitempty,max=300"`
	Descripcion    *string          `json:"description" validate:"omitempty,max=4000"`
	Unidad         *string          `json:"unit"        validate:"omitempty,max=20"`
	Cantidad       *decimal.Decimal `json:"quantity"`
	PrecioUnitario *decimal.Decimal `json:"unitPrice"`
	Imagen         *string          `json:"image"`
}

type ReordenarRequest struct {
	Seccion string `json:"category" validate:"required"`
	Desde   *int   `json:"from"     validate:"required,min=0"`
	Hasta   *int   `json:"to"       validate:"required,min=0"`
}

type PrecioLoteRequest struct {
	Monto decimal.Decimal `json:"amount" validate:"min=0"`
}

type GuardarRequest struct {
	Nota string `json:"note" validate:"max=200"`
}

type RevertirRequest struct {
	Confirmar bool `json:"confirmar"`
}

type NotaRequest struct {
	Texto string `json:"text" validate:"required,min=1,max=2000"`
}

type CrearPlantillaRequest struct {
	Nombre      string `json:"name"        validate:"required,min=1,max=120"`
	PrototipoID string `json:"prototypeId"`
}

type NumeroPagosRequest struct {
	Pagos int `json:"paymentCount" validate:"required,oneof=2 3"`
}

type PDFRequest struct {
	Email   string `json:"email"   validate:"omitempty,email"`
	Mensaje string `json:"message" validate:"max=2000"`
}

// RedaccionRequest: Aplicar copies the generated text into the terms.
type RedaccionRequest struct {
	Estilo  string `json:"style" validate:"omitempty,oneof=resumido detallado"`
	Aplicar bool   `json:"apply"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CotizacionResumen struct {
	ID                 string            `json:"id"`
	Estado             cotizacion.Estado `json:"status"`
	Categoria          string            `json:"category"`
	NumeroCotizacion   string            `json:"quoteNumber"`
	Cliente            string            `json:"clientName"`
	Proyecto           string            `json:"projectName"`
	Moneda             cotizacion.Moneda `json:"currency"`
	Total              decimal.Decimal   `json:"total"`
	Prototipos         int               `json:"prototypes"`
	Versiones          int               `json:"versions"`
	UltimaModificacion time.Time         `json:"lastModified"`
}

type EstadisticasResponse struct {
	TotalCotizaciones int                       `json:"totalCount"`
	PorEstado         map[cotizacion.Estado]int `json:"statusCounts"`
	ValorAceptado     decimal.Decimal           `json:"acceptedValue"`
	TasaConversion    decimal.Decimal           `json:"conversionRate"` // percent
}

// OpcionesResponse holds the values the UI offers in its pickers.
type OpcionesResponse struct {
	Categorias []string             `json:"categories"`
	Unidades   []string             `json:"units"`
	Secciones  []cotizacion.Seccion `json:"sections"`
}

type GuardarResponse struct {
	Version    cotizacion.Version     `json:"version"`
	Cotizacion *cotizacion.Cotizacion `json:"quote"`
}

type PDFResponse struct {
	Encolado bool   `json:"queued"`
	Mensaje  string `json:"message"`
}

type RedaccionResponse struct {
	Texto string `json:"text"`
}

type TotalesResponse struct {
	cotizacion.Totales
	Moneda    cotizacion.Moneda `json:"moneda"`
	PlanPagos []cotizacion.Pago `json:"plan_pagos"`
}
