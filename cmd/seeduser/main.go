package main

import (
	"context"
	"os"
	"time"

	"github.com/Neith21/AutoRent-Leon/internal/config"
	"github.com/Neith21/AutoRent-Leon/internal/infra"
	"github.com/Neith21/AutoRent-Leon/internal/model"
	"github.com/Neith21/AutoRent-Leon/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// seeduser creates the initial administrador account. Intended for first
// deploy only; fails if the username already exists.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	username := envOr("SEED_USERNAME", "admin")
	password := envOr("SEED_PASSWORD", "autorent2026")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	repo := repository.NewUsuarioRepository(db)
	u := &model.Usuario{
		Username:     username,
		Nombre:       "Administrador",
		PasswordHash: string(hash),
		Rol:          "administrador",
		Activo:       true,
	}
	if err := repo.Create(context.Background(), u); err != nil {
		log.Fatal().Err(err).Msg("failed to create user")
	}
	log.Info().Str("username", username).Str("id", u.ID.String()).Msg("administrador created")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
