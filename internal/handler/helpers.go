package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"crkitchen/internal/apierror"
	"crkitchen/internal/cotizacion"
	"crkitchen/internal/infra"
	"crkitchen/internal/middleware"
	"crkitchen/internal/repository"
	"crkitchen/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// decimal.Decimal is validated as a number so that min=0, gt=0 work.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails; the
// caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	return validar(c, req)
}

// bindQuery is bindAndValidate for query-string filters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametros invalidos: "+err.Error()))
		return false
	}
	return validar(c, req)
}

func validar(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string)
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

func autor(c *gin.Context) cotizacion.Autor {
	return middleware.GetClaims(c).Autor()
}

// separarLista accepts both ?estado=A&estado=B and ?estado=A,B.
func separarLista(valores []string) []string {
	var out []string
	for _, v := range valores {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// responderError maps service and domain errors to HTTP responses.
// Anything unknown is logged and answered with a generic 500.
func responderError(c *gin.Context, err error) {
	var verr *cotizacion.ErrValidacion
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(verr.Campos))

	case errors.Is(err, repository.ErrNoEncontrado),
		errors.Is(err, cotizacion.ErrPrototipoNoEncontrado),
		errors.Is(err, cotizacion.ErrPartidaNoEncontrada),
		errors.Is(err, service.ErrVersionNoEncontrada),
		errors.Is(err, service.ErrArticuloNoEncontrado),
		errors.Is(err, service.ErrPlantillaNoEncontrada):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))

	case errors.Is(err, service.ErrConfirmacionRequerida),
		errors.Is(err, service.ErrUsuarioDuplicado):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))

	case errors.Is(err, cotizacion.ErrUltimoPrototipo),
		errors.Is(err, cotizacion.ErrIndiceFueraDeRango),
		errors.Is(err, cotizacion.ErrCantidadInvalida),
		errors.Is(err, cotizacion.ErrEstadoInvalido),
		errors.Is(err, cotizacion.ErrNumeroPagos):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))

	case errors.Is(err, service.ErrClaveIAFaltante),
		errors.Is(err, repository.ErrClaveFaltante),
		errors.Is(err, repository.ErrDocumentoVacio):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))

	case errors.Is(err, service.ErrCredenciales):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))

	case errors.Is(err, service.ErrRecursoNoPermitido):
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))

	case errors.Is(err, infra.ErrCircuitOpen):
		c.JSON(http.StatusServiceUnavailable, apierror.New("El servicio de redacción no está disponible. Intente más tarde."))
	case errors.Is(err, service.ErrColaNoDisponible):
		c.JSON(http.StatusServiceUnavailable, apierror.New(err.Error()))

	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Msg("unhandled service error")
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}

// bindOpcional is bindAndValidate for endpoints whose body may be omitted.
func bindOpcional(c *gin.Context, req interface{}) bool {
	if c.Request.ContentLength == 0 {
		return validar(c, req)
	}
	return bindAndValidate(c, req)
}
