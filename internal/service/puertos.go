package service

import (
	"context"
	"errors"

	"crkitchen/internal/worker"
)

var (
	ErrConfirmacionRequerida = errors.New("hay cambios sin guardar; confirme para descartarlos")
	ErrVersionNoEncontrada   = errors.New("versión no encontrada")
	ErrArticuloNoEncontrado  = errors.New("artículo de catálogo no encontrado")
	ErrPlantillaNoEncontrada = errors.New("plantilla no encontrada")
	ErrColaNoDisponible      = errors.New("la cola de trabajos no está disponible")
	ErrRecursoNoPermitido    = errors.New("recurso no disponible por esta ruta")
	ErrCredenciales          = errors.New("credenciales invalidas")
	ErrUsuarioDuplicado      = errors.New("ya existe un usuario con ese nombre")
	ErrClaveIAFaltante       = errors.New("La API Key de Google no ha sido configurada. Por favor, añádela en la sección de Empresa.")
)

// Notificador publishes a change in a collection. infra.Notificador
// implements it over Redis pub/sub.
type Notificador interface {
	Publicar(ctx context.Context, tipo, id string) error
}

// EncoladorPDF is the part of worker.Dispatcher the services use.
type EncoladorPDF interface {
	EnqueuePDF(ctx context.Context, payload worker.PDFJobPayload) error
}

// Contador records writes per collection; nil disables metrics.
type Contador interface {
	Inc(coleccion string)
}

type sinNotificar struct{}

func (sinNotificar) Publicar(context.Context, string, string) error { return nil }
