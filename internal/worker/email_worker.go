package worker

// email_worker.go
// Processes email jobs from QueueEmail: sends the proposal PDF to the client
// over SMTP, retrying transient failures with backoff.

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"crkitchen/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

// Enviador sends one message with an optional attachment.
type Enviador interface {
	EnviarPropuesta(to, subject, body, pdfPath string) error
}

type EmailWorker struct {
	mailer  Enviador
	backoff time.Duration
}

func NewEmailWorker(mailer Enviador) *EmailWorker {
	return &EmailWorker{mailer: mailer, backoff: time.Second}
}

func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return nil
	}

	err := withRetry(ctx, 3, w.backoff, func(attempt int) error {
		err := w.mailer.EnviarPropuesta(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
		if errors.Is(err, infra.ErrMailerNoConfigurado) {
			return permanent(err)
		}
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).Str("to", payload.ToEmail).Msg("email_worker: send failed, retrying")
		}
		return err
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return err
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: propuesta sent successfully")
	return nil
}
