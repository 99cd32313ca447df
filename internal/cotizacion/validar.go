package cotizacion

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrValidacion collects the invalid fields of a document.
type ErrValidacion struct {
	Campos map[string]string
}

func (e *ErrValidacion) Error() string {
	claves := make([]string, 0, len(e.Campos))
	for k := range e.Campos {
		claves = append(claves, k)
	}
	sort.Strings(claves)
	partes := make([]string, len(claves))
	for i, k := range claves {
		partes[i] = k + ": " + e.Campos[k]
	}
	return "cotización inválida (" + strings.Join(partes, "; ") + ")"
}

var validate = nuevoValidador()

func nuevoValidador() *validator.Validate {
	v := validator.New()

	// Error keys follow the document's JSON path.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		nombre := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if nombre == "-" {
			return ""
		}
		return nombre
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		var d decimal.Decimal
		switch x := field.Interface().(type) {
		case decimal.Decimal:
			d = x
		case Porcentaje:
			d = x.Decimal()
		case Tasa:
			d = x.Decimal()
		default:
			return nil
		}
		f, _ := d.Float64()
		return f
	}, decimal.Decimal{}, Porcentaje{}, Tasa{})

	_ = v.RegisterValidation("estado", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(Estado)
		return ok && e.Valido()
	})

	v.RegisterStructValidation(idsUnicos, Cotizacion{})
	return v
}

// idsUnicos requires distinct prototype ids and distinct item ids across the
// whole proposal. Empty ids are already reported by "required".
func idsUnicos(sl validator.StructLevel) {
	c := sl.Current().Interface().(Cotizacion)
	protos := map[string]bool{}
	partidas := map[string]bool{}
	for i, p := range c.Prototipos {
		if p.ID != "" {
			if protos[p.ID] {
				sl.ReportError(p.ID, fmt.Sprintf("prototypes[%d].id", i), "ID", "unico", "")
			}
			protos[p.ID] = true
		}
		for j, it := range p.Partidas {
			if it.ID == "" {
				continue
			}
			if partidas[it.ID] {
				sl.ReportError(it.ID, fmt.Sprintf("prototypes[%d].budget[%d].id", i, j), "ID", "unico", "")
			}
			partidas[it.ID] = true
		}
	}
}

var mensajes = map[string]string{
	"required": "requerido",
	"estado":   "valor no permitido",
	"unico":    "id repetido",
}

func mensaje(fe validator.FieldError) string {
	if m, ok := mensajes[fe.Tag()]; ok {
		return m
	}
	switch fe.Tag() {
	case "min":
		if fe.Kind() == reflect.Slice {
			return "debe tener al menos " + fe.Param() + " elemento(s)"
		}
		return "debe ser al menos " + fe.Param()
	case "max":
		return "no puede ser mayor que " + fe.Param()
	}
	return fe.Tag()
}

// Validar checks the document invariants before it is persisted.
func (c *Cotizacion) Validar() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	campos := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		// "Cotizacion.prototypes[0].quantity" -> "prototypes[0].quantity"
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		campos[ns] = mensaje(fe)
	}
	return &ErrValidacion{Campos: campos}
}
