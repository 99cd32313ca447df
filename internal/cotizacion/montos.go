package cotizacion

import (
	"github.com/shopspring/decimal"
)

var cien = decimal.NewFromInt(100)

// Porcentaje is a value on the 0-100 scale (commercial discount).
type Porcentaje struct {
	v decimal.Decimal
}

// Tasa is a fraction on the 0-1 scale (IVA). It never mixes with Porcentaje.
type Tasa struct {
	v decimal.Decimal
}

func NuevoPorcentaje(v decimal.Decimal) Porcentaje { return Porcentaje{v: v} }
func NuevaTasa(v decimal.Decimal) Tasa             { return Tasa{v: v} }

func (p Porcentaje) Decimal() decimal.Decimal { return p.v }

// Aplicar returns the percentage of base.
func (p Porcentaje) Aplicar(base decimal.Decimal) decimal.Decimal {
	return base.Mul(p.v).Div(cien)
}

func (p Porcentaje) Valido() bool {
	return !p.v.IsNegative() && p.v.LessThanOrEqual(cien)
}

func (p Porcentaje) MarshalJSON() ([]byte, error)  { return p.v.MarshalJSON() }
func (p *Porcentaje) UnmarshalJSON(b []byte) error { return p.v.UnmarshalJSON(b) }

func (t Tasa) Decimal() decimal.Decimal { return t.v }

func (t Tasa) Aplicar(base decimal.Decimal) decimal.Decimal {
	return base.Mul(t.v)
}

func (t Tasa) Valido() bool {
	return !t.v.IsNegative() && t.v.LessThanOrEqual(decimal.NewFromInt(1))
}

func (t Tasa) MarshalJSON() ([]byte, error)  { return t.v.MarshalJSON() }
func (t *Tasa) UnmarshalJSON(b []byte) error { return t.v.UnmarshalJSON(b) }
