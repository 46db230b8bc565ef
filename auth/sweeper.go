package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// RunSweeper deletes expired tokens every interval until ctx is done
func (i *Issuer) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Msg("token sweeper started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("token sweeper stopped")
			return
		case <-ticker.C:
			n, err := i.deleteExpired(ctx)
			if err != nil {
				log.Error().Err(err).Msg("failed to delete expired tokens")
				continue
			}
			if n > 0 {
				log.Info().Int64("deleted", n).Msg("expired tokens purged")
			}
		}
	}
}
