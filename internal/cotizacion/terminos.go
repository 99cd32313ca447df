package cotizacion

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNumeroPagos = errors.New("el número de pagos debe ser 2 o 3")

// Terminos are the commercial conditions of the proposal.
type Terminos struct {
	Texto          string     `json:"text"`
	Garantia       string     `json:"warranty"`
	TiempoEntrega  string     `json:"deliveryTime"`
	NumeroPagos    int        `json:"paymentCount"`
	Anticipo       Porcentaje `json:"advancePercent"`
	PagoIntermedio Porcentaje `json:"midPaymentPercent"`
	Finiquito      Porcentaje `json:"finalPaymentPercent"`
}

func TerminosPorDefecto() Terminos {
	return Terminos{
		Garantia:       "1 año en mano de obra y herrajes.",
		TiempoEntrega:  "35 a 45 días hábiles.",
		NumeroPagos:    3,
		Anticipo:       NuevoPorcentaje(decimal.NewFromInt(70)),
		PagoIntermedio: NuevoPorcentaje(decimal.NewFromInt(25)),
		Finiquito:      NuevoPorcentaje(decimal.NewFromInt(5)),
	}
}

func (t Terminos) pagos() int {
	if t.NumeroPagos == 2 {
		return 2
	}
	return 3
}

// CambiarNumeroPagos switches between 2 and 3 payment schemes. With 2
// payments the final payment folds into the middle one; going back to 3 with
// a zero final payment restores the 25/5 split.
func (t *Terminos) CambiarNumeroPagos(n int) error {
	switch n {
	case 2:
		t.PagoIntermedio = NuevoPorcentaje(t.PagoIntermedio.v.Add(t.Finiquito.v))
		t.Finiquito = NuevoPorcentaje(decimal.Zero)
	case 3:
		if t.Finiquito.v.IsZero() {
			t.PagoIntermedio = NuevoPorcentaje(decimal.NewFromInt(25))
			t.Finiquito = NuevoPorcentaje(decimal.NewFromInt(5))
		}
	default:
		return ErrNumeroPagos
	}
	t.NumeroPagos = n
	return nil
}

// SumaPorcentajes adds the active payments; the UI warns when it is not 100.
func (t Terminos) SumaPorcentajes() decimal.Decimal {
	suma := t.Anticipo.v.Add(t.PagoIntermedio.v)
	if t.pagos() == 3 {
		suma = suma.Add(t.Finiquito.v)
	}
	return suma
}

type Pago struct {
	Concepto   string          `json:"concepto"`
	Porcentaje decimal.Decimal `json:"porcentaje"`
	Monto      decimal.Decimal `json:"monto"`
}

// PlanPagos splits total across the active payments.
func PlanPagos(total decimal.Decimal, t Terminos) []Pago {
	pagos := []Pago{{Concepto: "Anticipo", Porcentaje: t.Anticipo.v}}
	if t.pagos() == 2 {
		pagos = append(pagos, Pago{Concepto: "Finiquito", Porcentaje: t.PagoIntermedio.v})
	} else {
		pagos = append(pagos,
			Pago{Concepto: "2do Pago", Porcentaje: t.PagoIntermedio.v},
			Pago{Concepto: "Finiquito", Porcentaje: t.Finiquito.v},
		)
	}
	for i := range pagos {
		pagos[i].Monto = total.Mul(pagos[i].Porcentaje).Div(cien)
	}
	return pagos
}
