package utils

import (
	"os"
	"strconv"
	"time"

	"salonqueue-backend/services"

	cron "github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// StartQueueSweeper expires stale waiting entries every night after
// closing: whoever joined the queue and never got started is marked
// no_show so the next morning opens with a clean line.
func StartQueueSweeper(queue *services.QueueService, log zerolog.Logger) *cron.Cron {
	staleAfter := 4 * time.Hour
	if env := os.Getenv("QUEUE_STALE_AFTER_HOURS"); env != "" {
		if h, err := strconv.Atoi(env); err == nil && h > 0 {
			staleAfter = time.Duration(h) * time.Hour
		}
	}

	c := cron.New()

	// Run daily at 10 PM, after closing
	c.AddFunc("0 22 * * *", func() {
		expired, err := queue.ExpireStaleWaiting(staleAfter)
		if err != nil {
			log.Error().Err(err).Msg("queue sweep failed")
			return
		}
		log.Info().Int("expired", expired).Msg("nightly queue sweep done")
	})

	c.Start()
	log.Info().Msg("queue sweeper started")
	return c
}
