package worker

// pdf_worker.go
// Processes rendering jobs from QueuePDF:
//  1. Load the quote document and the branding settings
//  2. Render the proposal PDF to the storage path
//  3. Optionally enqueue an email job with the PDF attached

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"crkitchen/internal/cotizacion"
	"crkitchen/internal/infra"
	"crkitchen/internal/model"
	"crkitchen/internal/repository"

	"github.com/rs/zerolog/log"
)

// PDFJobPayload is the job envelope sent to QueuePDF.
type PDFJobPayload struct {
	CotizacionID string `json:"cotizacion_id"`
	EmailCliente string `json:"email_cliente,omitempty"`
	Mensaje      string `json:"mensaje,omitempty"`
}

// Encolador is the part of Dispatcher the PDF worker needs.
type Encolador interface {
	EnqueueEmail(ctx context.Context, payload EmailJobPayload) error
}

type PDFWorker struct {
	repo           repository.DocumentoRepository
	dispatcher     Encolador
	pdfStoragePath string
}

func NewPDFWorker(repo repository.DocumentoRepository, dispatcher Encolador, pdfStoragePath string) *PDFWorker {
	return &PDFWorker{repo: repo, dispatcher: dispatcher, pdfStoragePath: pdfStoragePath}
}

func (w *PDFWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload PDFJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("pdf_worker: invalid payload")
		return nil
	}

	doc, err := w.repo.ObtenerPorID(ctx, model.RecursoCotizaciones, payload.CotizacionID)
	if errors.Is(err, repository.ErrNoEncontrado) {
		log.Warn().Str("cotizacion_id", payload.CotizacionID).Msg("pdf_worker: cotizacion not found, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("pdf_worker: load cotizacion: %w", err)
	}
	var c cotizacion.Cotizacion
	if err := json.Unmarshal(doc.Data, &c); err != nil {
		return fmt.Errorf("pdf_worker: decode cotizacion: %w", err)
	}

	marca := repository.ObtenerBranding(ctx, w.repo)
	pdfPath, err := infra.GenerarPropuestaPDF(&c, marca, w.pdfStoragePath)
	if err != nil {
		return err
	}
	log.Info().Str("pdf", pdfPath).Str("cotizacion_id", c.ID).Msg("pdf_worker: PDF generated")

	to := payload.EmailCliente
	if to == "" {
		to = c.Cliente.Email
	}
	if to == "" || w.dispatcher == nil {
		return nil
	}
	body := payload.Mensaje
	if body == "" {
		body = fmt.Sprintf("Adjunto encontrarás la propuesta %s.\nTotal: %s",
			c.Proyecto.NumeroCotizacion,
			cotizacion.FormatearMoneda(cotizacion.CalcularTotales(&c).Total, c.Moneda))
	}
	emailJob := EmailJobPayload{
		ToEmail: to,
		Subject: fmt.Sprintf("Propuesta %s: %s", c.Proyecto.NumeroCotizacion, c.Proyecto.Nombre),
		Body:    body,
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("email", to).Msg("pdf_worker: failed to enqueue email")
		return nil
	}
	log.Info().Str("email", to).Msg("pdf_worker: email job enqueued")
	return nil
}
