// Package apierror defines the JSON envelope of every 4xx/5xx response.
// Handlers never return internal errors (SQL, Redis) verbatim.
package apierror

// APIError is {detail}, or {detail, fields} with a reason per field on
// validation errors.
type APIError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

const detalleValidacion = "Error de validacion"

func NewValidation(fields map[string]string) *APIError {
	if fields == nil {
		fields = map[string]string{}
	}
	return &APIError{Detail: detalleValidacion, Fields: fields}
}
