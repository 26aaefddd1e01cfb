package worker

// retraso_cron.go
// Periodic sweep that flags rentals past their agreed end date: an Activo
// rental whose fecha_fin is in the past becomes Retrasado. Retrasado
// rentals remain finalizable; the surcharge is computed at finalization.

import (
	"context"
	"time"

	"github.com/Neith21/AutoRent-Leon/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const retrasoSpec = "*/10 * * * *" // every 10 minutes

// StartRetrasoCron schedules the overdue sweep and returns the cron so the
// caller can Stop() it on shutdown. The first sweep runs immediately.
func StartRetrasoCron(ctx context.Context, repo repository.AlquilerRepository) *cron.Cron {
	c := cron.New()
	sweep := func() {
		n, err := repo.MarcarRetrasados(ctx, time.Now())
		if err != nil {
			log.Error().Err(err).Msg("retraso_cron: sweep failed")
			return
		}
		if n > 0 {
			log.Info().Int64("marcados", n).Msg("retraso_cron: rentals marked Retrasado")
		}
	}
	sweep()
	if _, err := c.AddFunc(retrasoSpec, sweep); err != nil {
		log.Error().Err(err).Msg("retraso_cron: invalid schedule")
		return c
	}
	c.Start()
	log.Info().Str("spec", retrasoSpec).Msg("retraso_cron: started")
	return c
}
