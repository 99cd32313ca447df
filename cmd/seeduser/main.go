// Creates the initial administrator user if it does not exist.
// Usage: SEED_PASSWORD=... go run ./cmd/seeduser
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"crkitchen/internal/config"
	"crkitchen/internal/dto"
	"crkitchen/internal/infra"
	"crkitchen/internal/model"
	"crkitchen/internal/repository"
	"crkitchen/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	username := envOr("SEED_USERNAME", "admin")
	password := os.Getenv("SEED_PASSWORD")
	if len(password) < 8 {
		log.Fatal().Msg("SEED_PASSWORD debe tener al menos 8 caracteres")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc := service.NewAuthService(repository.NewDocumentoRepository(db), nil, cfg)
	u, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: username,
		Nombre:   envOr("SEED_NOMBRE", "Administrador"),
		Email:    os.Getenv("SEED_EMAIL"),
		Password: password,
		Rol:      model.RolAdministrador,
	})
	switch {
	case errors.Is(err, service.ErrUsuarioDuplicado):
		log.Info().Str("username", username).Msg("el usuario ya existe, nada que hacer")
	case err != nil:
		log.Fatal().Err(err).Msg("no se pudo crear el usuario")
	default:
		log.Info().Str("id", u.ID).Str("username", u.Username).Msg("usuario administrador creado")
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
