package cotizacion

import (
	"github.com/shopspring/decimal"
)

type TotalPrototipoLinea struct {
	ID       string          `json:"id"`
	Nombre   string          `json:"nombre"`
	Unitario decimal.Decimal `json:"unitario"`
	Cantidad int             `json:"cantidad"`
	Importe  decimal.Decimal `json:"importe"`
}

// Totales is the derived breakdown of a proposal. Amounts are not rounded;
// rounding belongs to presentation.
type Totales struct {
	PorPrototipo []TotalPrototipoLinea `json:"por_prototipo"`
	Subtotal     decimal.Decimal       `json:"subtotal"`
	Descuento    decimal.Decimal       `json:"descuento"`
	SubtotalNeto decimal.Decimal       `json:"subtotal_neto"`
	IVA          decimal.Decimal       `json:"iva"`
	Total        decimal.Decimal       `json:"total"`
}

// TotalPrototipo sums quantity times price over all items of one unit of the
// prototype. The selected flag plays no part.
func TotalPrototipo(p Prototipo) decimal.Decimal {
	total := decimal.Zero
	for _, it := range p.Partidas {
		total = total.Add(it.Subtotal())
	}
	return total
}

// CalcularTotales derives subtotal, discount, IVA and total. The discount
// comes off before tax, which is computed on the net amount.
func CalcularTotales(c *Cotizacion) Totales {
	t := Totales{PorPrototipo: make([]TotalPrototipoLinea, 0, len(c.Prototipos))}

	subtotal := decimal.Zero
	for _, p := range c.Prototipos {
		unitario := TotalPrototipo(p)
		importe := unitario.Mul(decimal.NewFromInt(int64(p.Cantidad)))
		subtotal = subtotal.Add(importe)
		t.PorPrototipo = append(t.PorPrototipo, TotalPrototipoLinea{
			ID:       p.ID,
			Nombre:   p.Nombre,
			Unitario: unitario,
			Cantidad: p.Cantidad,
			Importe:  importe,
		})
	}

	t.Subtotal = subtotal
	t.Descuento = decimal.Zero
	if c.MostrarDescuento {
		t.Descuento = c.Descuento.Aplicar(subtotal)
	}
	t.SubtotalNeto = subtotal.Sub(t.Descuento)
	t.IVA = decimal.Zero
	if c.MostrarIVA {
		t.IVA = c.TasaIVA.Aplicar(t.SubtotalNeto)
	}
	t.Total = t.SubtotalNeto.Add(t.IVA)
	return t
}
